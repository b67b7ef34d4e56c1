package auth

import (
	"fmt"
	"time"
)

var _ Session = &SessionObject{}

type SessionObject struct {
	UserID         string     `json:"user_id,omitempty"`
	Email          string     `json:"email,omitempty"`
	IssuedAt       *time.Time `json:"issued_at,omitempty"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
}

func (s *SessionObject) GetUserID() string {
	return s.UserID
}

func (s *SessionObject) GetEmail() string {
	return s.Email
}

func (s *SessionObject) GetIssuedAt() *time.Time {
	return s.IssuedAt
}

func (s *SessionObject) GetExpiration() *time.Time {
	return s.ExpirationDate
}

func (s SessionObject) String() string {
	issuedAt := "<nil>"
	if s.IssuedAt != nil {
		issuedAt = s.IssuedAt.Format(time.RFC1123)
	}
	return fmt.Sprintf("user=%s email=%s iat=%s", s.UserID, s.Email, issuedAt)
}

// sessionFromPayload creates a SessionObject from a verified token payload
func sessionFromPayload(payload *SessionPayload) (*SessionObject, error) {
	if payload == nil {
		return nil, ErrUnableToDecodeSession
	}

	issuedAt := time.Unix(payload.IssuedAt, 0)
	expiresAt := time.Unix(payload.ExpiresAt, 0)

	return &SessionObject{
		UserID:         payload.UserID,
		Email:          payload.Email,
		IssuedAt:       &issuedAt,
		ExpirationDate: &expiresAt,
	}, nil
}
