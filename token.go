package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"
)

// DefaultTokenMaxAge is the default session lifetime in seconds (7 days).
const DefaultTokenMaxAge = 604800

// SessionPayload is the claims body of a locally issued session token. It is
// embedded opaquely in the token and never mutated; a new token is issued
// instead of patching an old one.
type SessionPayload struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	IssuedAt  int64  `json:"issuedAt"`
	ExpiresAt int64  `json:"expiresAt"`
}

// TokenCodec issues and verifies bc_session tokens. A token is
// base64url(JSON payload) + "." + base64url(HMAC-SHA256(secret, encoded payload)),
// both segments unpadded so the value survives cookie and header transport.
//
// TokenCodec has no mutable state after construction and is safe for
// concurrent use.
type TokenCodec struct {
	secret []byte
	maxAge int
	logger Logger
	now    func() time.Time
}

var _ TokenVerifier = (*TokenCodec)(nil)

// NewTokenCodec builds a codec from config. A missing signing key is a
// configuration fault and fails the constructor; the codec never signs with
// an empty secret.
func NewTokenCodec(cfg Config) (*TokenCodec, error) {
	if strings.TrimSpace(cfg.GetSigningKey()) == "" {
		return nil, ErrMissingSigningKey
	}

	maxAge := cfg.GetTokenMaxAge()
	if maxAge <= 0 {
		maxAge = DefaultTokenMaxAge
	}

	return &TokenCodec{
		secret: []byte(cfg.GetSigningKey()),
		maxAge: maxAge,
		logger: defLogger{},
		now:    time.Now,
	}, nil
}

func (c *TokenCodec) WithLogger(logger Logger) *TokenCodec {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// WithClock overrides the codec's clock. Tests use it to cross expiry
// boundaries without sleeping.
func (c *TokenCodec) WithClock(now func() time.Time) *TokenCodec {
	if now != nil {
		c.now = now
	}
	return c
}

// IssueOption mutates the payload before it is sealed.
type IssueOption func(*SessionPayload)

// WithMaxAge overrides the default token lifetime for one issuance.
func WithMaxAge(seconds int) IssueOption {
	return func(p *SessionPayload) {
		p.ExpiresAt = p.IssuedAt + int64(seconds)
	}
}

// Issue seals a payload for userID/email valid for the configured max age.
func (c *TokenCodec) Issue(userID, email string, opts ...IssueOption) (string, *SessionPayload, error) {
	if len(c.secret) == 0 {
		return "", nil, ErrMissingSigningKey
	}

	issuedAt := c.now().Unix()
	payload := &SessionPayload{
		UserID:    userID,
		Email:     email,
		IssuedAt:  issuedAt,
		ExpiresAt: issuedAt + int64(c.maxAge),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(payload)
		}
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", nil, err
	}

	encoded := base64.RawURLEncoding.EncodeToString(raw)
	return encoded + "." + c.sign(encoded), payload, nil
}

// Verify checks a token and returns its payload, or nil for any invalid
// token. Malformed, forged, and expired tokens are indistinguishable by
// design so the codec cannot be used as an oracle.
func (c *TokenCodec) Verify(token string) *SessionPayload {
	if token == "" || len(c.secret) == 0 {
		return nil
	}

	encoded, signature, found := strings.Cut(token, ".")
	if !found || encoded == "" || signature == "" {
		return nil
	}

	// hmac.Equal is constant time and reports false for unequal lengths
	// instead of failing past the comparison.
	if !hmac.Equal([]byte(signature), []byte(c.sign(encoded))) {
		return nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil
	}

	payload := &SessionPayload{}
	if err := json.Unmarshal(raw, payload); err != nil {
		return nil
	}

	if payload.UserID == "" || payload.Email == "" {
		return nil
	}

	if payload.ExpiresAt <= c.now().Unix() {
		return nil
	}

	return payload
}

func (c *TokenCodec) sign(encodedPayload string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(encodedPayload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
