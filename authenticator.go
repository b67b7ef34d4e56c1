package auth

import (
	"context"
	"reflect"
)

// Auther authenticates local credentials and mints bc_session tokens.
type Auther struct {
	provider IdentityProvider
	codec    *TokenCodec
	logger   Logger
}

// NewAuthenticator returns a new Authenticator. A missing signing key in cfg
// is a configuration fault and fails construction.
func NewAuthenticator(provider IdentityProvider, cfg Config) (*Auther, error) {
	codec, err := NewTokenCodec(cfg)
	if err != nil {
		return nil, err
	}

	return &Auther{
		provider: provider,
		codec:    codec,
		logger:   defLogger{},
	}, nil
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		s.logger = logger
		s.codec.WithLogger(logger)
	}
	return s
}

// TokenCodec returns the codec used by this Authenticator
func (s *Auther) TokenCodec() *TokenCodec {
	return s.codec
}

func (s *Auther) Login(ctx context.Context, identifier, password string) (string, error) {
	identity, err := s.provider.VerifyIdentity(ctx, identifier, password)
	if err != nil {
		s.logger.Error("Login verify identity error", "error", err)
		return "", err
	}

	if identity == nil || reflect.ValueOf(identity).IsZero() {
		s.logger.Error("Login identity is nil or zero value")
		return "", ErrIdentityNotFound
	}

	token, _, err := s.codec.Issue(identity.ID(), identity.Email())
	if err != nil {
		s.logger.Error("Login token issue error", "error", err)
		return "", err
	}

	return token, nil
}

func (s *Auther) Impersonate(ctx context.Context, identifier string) (string, error) {
	identity, err := s.provider.FindIdentityByIdentifier(ctx, identifier)
	if err != nil {
		s.logger.Error("Impersonate find identity error", "error", err)
		return "", err
	}

	if identity == nil || reflect.ValueOf(identity).IsZero() {
		s.logger.Error("Impersonate identity is nil")
		return "", ErrIdentityNotFound
	}

	token, _, err := s.codec.Issue(identity.ID(), identity.Email())
	if err != nil {
		s.logger.Error("Impersonate token issue error", "error", err)
		return "", err
	}

	return token, nil
}

// SessionFromToken verifies a bc_session token. Invalid tokens, whatever the
// reason, surface as the same decode error.
func (s Auther) SessionFromToken(raw string) (Session, error) {
	payload := s.codec.Verify(raw)
	if payload == nil {
		return nil, ErrUnableToDecodeSession
	}

	return sessionFromPayload(payload)
}

func (s *Auther) IdentityFromSession(ctx context.Context, session Session) (Identity, error) {
	identity, err := s.provider.FindIdentityByIdentifier(ctx, session.GetUserID())
	if err != nil {
		s.logger.Error("IdentityFromSession find identity by identifier: %s", err)
		return nil, err
	}

	return identity, nil
}

var _ Authenticator = (*Auther)(nil)
