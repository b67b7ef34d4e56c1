package auth

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

// Teachers reads teaching profiles with their class and subject assignments.
// The authorization core only ever reads these rows.
type Teachers interface {
	TeacherStore

	GetByIDTx(ctx context.Context, tx bun.IDB, id int64) (*Teacher, error)
	GetByUserExternalIDTx(ctx context.Context, tx bun.IDB, externalID string) (*Teacher, error)
}

type teachers struct {
	db *bun.DB
}

var _ Teachers = (*teachers)(nil)

func NewTeachersRepository(db *bun.DB) Teachers {
	return &teachers{db: db}
}

func (t *teachers) GetByID(ctx context.Context, id int64) (*Teacher, error) {
	return t.GetByIDTx(ctx, t.db, id)
}

func (t *teachers) GetByIDTx(ctx context.Context, tx bun.IDB, id int64) (*Teacher, error) {
	record := &Teacher{}

	err := tx.NewSelect().Model(record).
		Relation("Classes").
		Relation("Subjects").
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"teacher_id": id,
				})
		}
		return nil, err
	}

	return record, nil
}

// GetByUserExternalID resolves a teacher through the owning user: the local
// user row keyed by the identity-provider account id, then the teaching
// profile that user owns. This is the fallback path for accounts whose
// teacher link has not been backfilled into provider metadata yet.
func (t *teachers) GetByUserExternalID(ctx context.Context, externalID string) (*Teacher, error) {
	return t.GetByUserExternalIDTx(ctx, t.db, externalID)
}

func (t *teachers) GetByUserExternalIDTx(ctx context.Context, tx bun.IDB, externalID string) (*Teacher, error) {
	user := &User{}

	err := tx.NewSelect().Model(user).
		Column("id").
		Where("?TableAlias.external_id = ?", externalID).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"external_id": externalID,
				})
		}
		return nil, err
	}

	record := &Teacher{}

	err = tx.NewSelect().Model(record).
		Relation("Classes").
		Relation("Subjects").
		Where("?TableAlias.user_id = ?", user.ID).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"external_id": externalID,
				})
		}
		return nil, err
	}

	return record, nil
}
