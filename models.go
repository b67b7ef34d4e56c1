package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserRole is the user's role
type UserRole = string

const (
	// RoleAdmin manages a school and every record in it
	RoleAdmin UserRole = "admin"
	// RoleTeacher is scoped to the classes and subjects assigned to them
	RoleTeacher UserRole = "teacher"
	// RoleStudent can see their own records
	RoleStudent UserRole = "student"
	// RoleParent can see their children's records
	RoleParent UserRole = "parent"
)

// User is the local account linked to the identity-provider account through
// ExternalID. PasswordHash holds a hex(salt):hex(key) scrypt record.
type User struct {
	bun.BaseModel  `bun:"table:users,alias:usr"`
	ID             uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	ExternalID     string     `bun:"external_id,unique" json:"external_id,omitempty"`
	Role           UserRole   `bun:"user_role,notnull" json:"user_role,omitempty"`
	FirstName      string     `bun:"first_name,notnull" json:"first_name,omitempty"`
	LastName       string     `bun:"last_name,notnull" json:"last_name,omitempty"`
	Username       string     `bun:"username,notnull,unique" json:"username,omitempty"`
	Email          string     `bun:"email,notnull,unique" json:"email,omitempty"`
	Phone          string     `bun:"phone_number" json:"phone_number,omitempty"`
	PasswordHash   string     `bun:"password_hash" json:"-"`
	SchoolID       int64      `bun:"school_id" json:"school_id,omitempty"`
	LoginAttempts  int        `bun:"login_attempts" json:"login_attempts,omitempty"`
	LoginAttemptAt *time.Time `bun:"login_attempt_at" json:"login_attempt_at,omitempty"`
	LoggedInAt     *time.Time `bun:"loggedin_at" json:"loggedin_at,omitempty"`
	CreatedAt      *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt      *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt      *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// Teacher is the teaching profile a user with RoleTeacher owns. The link is
// backfilled asynchronously after provisioning, so a teacher-role user may
// temporarily have no Teacher row.
type Teacher struct {
	bun.BaseModel `bun:"table:teachers,alias:tch"`
	ID            int64             `bun:"id,pk,autoincrement" json:"id"`
	UserID        uuid.UUID         `bun:"user_id,type:uuid" json:"user_id,omitempty"`
	SchoolID      int64             `bun:"school_id,notnull" json:"school_id,omitempty"`
	FirstName     string            `bun:"first_name" json:"first_name,omitempty"`
	LastName      string            `bun:"last_name" json:"last_name,omitempty"`
	Classes       []*TeacherClass   `bun:"rel:has-many,join:id=teacher_id" json:"classes,omitempty"`
	Subjects      []*TeacherSubject `bun:"rel:has-many,join:id=teacher_id" json:"subjects,omitempty"`
	CreatedAt     *time.Time        `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time        `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// TeacherClass assigns a class to a teacher.
type TeacherClass struct {
	bun.BaseModel `bun:"table:teacher_classes,alias:tcl"`
	ID            int64 `bun:"id,pk,autoincrement" json:"id"`
	TeacherID     int64 `bun:"teacher_id,notnull" json:"teacher_id"`
	ClassID       int64 `bun:"class_id,notnull" json:"class_id"`
}

// TeacherSubject assigns a subject to a teacher. SubjectName is stored as
// entered; consumers normalize when matching.
type TeacherSubject struct {
	bun.BaseModel `bun:"table:teacher_subjects,alias:tsb"`
	ID            int64  `bun:"id,pk,autoincrement" json:"id"`
	TeacherID     int64  `bun:"teacher_id,notnull" json:"teacher_id"`
	SubjectName   string `bun:"subject_name,notnull" json:"subject_name"`
}
