package clerk

import (
	"context"

	auth "github.com/localhost300/bcmss-sub002"
)

type identityCtxKey struct{}

// SessionIdentity is the verified identity a request carries after its Clerk
// session token has been validated.
type SessionIdentity struct {
	ExternalID string
	SessionID  string
	Metadata   map[string]any
}

// WithIdentity stores the verified identity on the request context.
func WithIdentity(ctx context.Context, identity *SessionIdentity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, identity)
}

// IdentityFromContext returns the verified identity stored on the context.
func IdentityFromContext(ctx context.Context) (*SessionIdentity, bool) {
	identity, ok := ctx.Value(identityCtxKey{}).(*SessionIdentity)
	if !ok || identity == nil {
		return nil, false
	}
	return identity, true
}

// IdentityProvider resolves the current request identity from validated Clerk
// session tokens.
type IdentityProvider struct {
	validator *TokenValidator
}

var _ auth.ExternalIdentityProvider = (*IdentityProvider)(nil)

// NewIdentityProvider creates a Clerk-backed identity provider.
func NewIdentityProvider(cfg Config) (*IdentityProvider, error) {
	validator, err := NewTokenValidator(cfg)
	if err != nil {
		return nil, err
	}

	return &IdentityProvider{validator: validator}, nil
}

// Authenticate validates the raw session token and returns a context carrying
// the verified identity. The returned error is a credential failure unless
// the token could not be parsed at all.
func (p *IdentityProvider) Authenticate(ctx context.Context, token string) (context.Context, error) {
	claims, err := p.validator.Validate(token)
	if err != nil {
		return ctx, err
	}

	return WithIdentity(ctx, &SessionIdentity{
		ExternalID: claims.UserID(),
		SessionID:  claims.SessionID,
		Metadata:   claims.Metadata,
	}), nil
}

// CurrentExternalID returns the Clerk user id for the request, or an empty
// string when the request carries no verified identity.
func (p *IdentityProvider) CurrentExternalID(ctx context.Context) string {
	identity, ok := IdentityFromContext(ctx)
	if !ok {
		return ""
	}
	return identity.ExternalID
}

// CurrentMetadata returns the public metadata of the current identity. A nil
// map means the account has no metadata or the request is unauthenticated.
func (p *IdentityProvider) CurrentMetadata(ctx context.Context) map[string]any {
	identity, ok := IdentityFromContext(ctx)
	if !ok {
		return nil
	}
	return identity.Metadata
}

// Validator exposes the underlying token validator.
func (p *IdentityProvider) Validator() *TokenValidator {
	return p.validator
}
