package auth

import (
	"context"
	"database/sql"
	"math"
	"strconv"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
)

// TeacherStore is the slice of the data store the resolver reads. Not-found
// must stay distinguishable from transient failures; implementations report
// the former with a record-not-found error.
type TeacherStore interface {
	GetByID(ctx context.Context, id int64) (*Teacher, error)
	GetByUserExternalID(ctx context.Context, externalID string) (*Teacher, error)
}

// Resolver maps an external identity, when present, to an Actor with role
// and, for teachers, concrete scoping sets.
//
// Resolver holds no per-request state and is safe to call from concurrent
// requests.
type Resolver struct {
	provider ExternalIdentityProvider
	teachers TeacherStore
	logger   Logger
}

func NewResolver(provider ExternalIdentityProvider, teachers TeacherStore) *Resolver {
	return &Resolver{
		provider: provider,
		teachers: teachers,
		logger:   defLogger{},
	}
}

func (r *Resolver) WithLogger(logger Logger) *Resolver {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// Resolve computes the Actor for the current request. Requests without an
// external identity resolve to the unauthenticated actor without touching
// the data store. Store outages during teacher scoping propagate as a
// retryable error; granting or silently denying on infra failure would both
// be wrong.
func (r *Resolver) Resolve(ctx context.Context) (*Actor, error) {
	externalID := r.provider.CurrentExternalID(ctx)
	if externalID == "" {
		return UnauthenticatedActor(), nil
	}

	metadata := r.provider.CurrentMetadata(ctx)
	role, _ := ParseRole(metadataString(metadata, "role"))

	actor := UnauthenticatedActor()
	actor.ExternalID = externalID
	actor.Role = role
	actor.IsAdmin = role == RoleAdmin
	actor.IsTeacher = role == RoleTeacher

	if !actor.IsTeacher {
		return actor, nil
	}

	record, err := r.lookupTeacher(ctx, externalID, metadataTeacherID(metadata))
	if err != nil {
		return nil, err
	}

	if record == nil {
		// Valid state: the teacher profile link has not been backfilled yet.
		// The actor keeps the teacher role with empty scoping sets.
		return actor, nil
	}

	teacherID := record.ID
	actor.TeacherID = &teacherID

	for _, class := range record.Classes {
		if class == nil {
			continue
		}
		actor.AllowedClassIDs[strconv.FormatInt(class.ClassID, 10)] = struct{}{}
	}

	for _, subject := range record.Subjects {
		if subject == nil {
			continue
		}
		name := NormalizeSubjectName(subject.SubjectName)
		if name == "" {
			continue
		}
		actor.AllowedSubjectNames[name] = struct{}{}
	}

	return actor, nil
}

// teacherLookup is one step of the resolution chain. A nil record with a nil
// error means "not found here, try the next strategy".
type teacherLookup struct {
	name string
	run  func(ctx context.Context) (*Teacher, error)
}

// lookupTeacher tries each strategy in order: first the metadata-supplied
// teacher id, then the user record keyed by external id and its owned
// profile. The fallback exists because teacher profiles are provisioned
// asynchronously after the identity-provider account.
func (r *Resolver) lookupTeacher(ctx context.Context, externalID string, metaID *int64) (*Teacher, error) {
	var lookups []teacherLookup

	if metaID != nil {
		id := *metaID
		lookups = append(lookups, teacherLookup{
			name: "metadata-id",
			run: func(ctx context.Context) (*Teacher, error) {
				return r.teachers.GetByID(ctx, id)
			},
		})
	}

	lookups = append(lookups, teacherLookup{
		name: "owning-user",
		run: func(ctx context.Context) (*Teacher, error) {
			return r.teachers.GetByUserExternalID(ctx, externalID)
		},
	})

	for _, lookup := range lookups {
		record, err := lookup.run(ctx)
		if err == nil && record != nil {
			return record, nil
		}

		if err == nil || isRecordNotFound(err) {
			continue
		}

		r.logger.Error("teacher lookup %s failed: %v", lookup.name, err)
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "authorization store temporarily unavailable").
			WithTextCode("AUTHZ_STORE_UNAVAILABLE").
			WithCode(goerrors.CodeInternal)
	}

	return nil, nil
}

func isRecordNotFound(err error) bool {
	return repository.IsRecordNotFound(err) ||
		goerrors.IsNotFound(err) ||
		goerrors.Is(err, sql.ErrNoRows)
}

// metadataString extracts a string value from provider metadata; any other
// shape yields "".
func metadataString(metadata map[string]any, key string) string {
	if metadata == nil {
		return ""
	}
	value, ok := metadata[key].(string)
	if !ok {
		return ""
	}
	return value
}

// metadataTeacherID coerces the provider-supplied teacher id. Only finite
// integral numbers and strings that trim to an integer literal are accepted;
// anything else resolves to no id, never 0 and never an error.
func metadataTeacherID(metadata map[string]any) *int64 {
	if metadata == nil {
		return nil
	}

	switch value := metadata["teacherId"].(type) {
	case int:
		id := int64(value)
		return &id
	case int64:
		return &value
	case float64:
		if math.IsNaN(value) || math.IsInf(value, 0) || value != math.Trunc(value) {
			return nil
		}
		id := int64(value)
		return &id
	case string:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return nil
		}
		id, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return nil
		}
		return &id
	default:
		return nil
	}
}
