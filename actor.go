package auth

import "strings"

// Actor is the request-scoped answer to "who is calling and what may they
// touch". It is derived on every request and never persisted or cached, so
// role and assignment changes take effect immediately.
type Actor struct {
	ExternalID string   `json:"external_id,omitempty"`
	Role       UserRole `json:"role,omitempty"`
	IsAdmin    bool     `json:"is_admin"`
	IsTeacher  bool     `json:"is_teacher"`
	TeacherID  *int64   `json:"teacher_id,omitempty"`

	// Scoping sets. Empty unless Role is teacher. Empty means "no access to
	// anything scoped", never "unrestricted".
	AllowedClassIDs     map[string]struct{} `json:"allowed_class_ids,omitempty"`
	AllowedSubjectNames map[string]struct{} `json:"allowed_subject_names,omitempty"`
}

// UnauthenticatedActor is the zero-capability actor for requests without an
// established identity.
func UnauthenticatedActor() *Actor {
	return &Actor{
		AllowedClassIDs:     map[string]struct{}{},
		AllowedSubjectNames: map[string]struct{}{},
	}
}

// IsAuthenticated reports whether any external identity backs this actor.
func (a *Actor) IsAuthenticated() bool {
	return a != nil && a.ExternalID != ""
}

// CanAccessClass reports whether the actor may touch class-scoped records for
// classID. Admins pass; teachers pass only for assigned classes.
func (a *Actor) CanAccessClass(classID string) bool {
	if a == nil {
		return false
	}
	if a.IsAdmin {
		return true
	}
	_, ok := a.AllowedClassIDs[classID]
	return ok
}

// CanAccessSubject reports whether the actor may touch subject-scoped records
// for name. Matching is case-insensitive and ignores surrounding whitespace.
func (a *Actor) CanAccessSubject(name string) bool {
	if a == nil {
		return false
	}
	if a.IsAdmin {
		return true
	}
	_, ok := a.AllowedSubjectNames[NormalizeSubjectName(name)]
	return ok
}

// NormalizeSubjectName lower-cases and trims a subject name. Scoping sets
// store normalized names so downstream filters can match case-insensitively.
func NormalizeSubjectName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
