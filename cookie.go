package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultCookieName is the session cookie consumed by browsers and the
// session middleware.
const DefaultCookieName = "bc_session"

// CookieBuilder renders session tokens into Set-Cookie attribute strings.
// Formatting only; the values must stay bit-exact for browser compatibility.
type CookieBuilder struct {
	name   string
	secure bool
	now    func() time.Time
}

// NewCookieBuilder builds the cookie formatter. Secure is added only for
// production deployments so dev and test can run without TLS.
func NewCookieBuilder(cfg Config) *CookieBuilder {
	name := cfg.GetCookieName()
	if name == "" {
		name = DefaultCookieName
	}

	return &CookieBuilder{
		name:   name,
		secure: cfg.IsProduction(),
		now:    time.Now,
	}
}

// WithClock overrides the builder's clock, used by tests to pin Expires.
func (b *CookieBuilder) WithClock(now func() time.Time) *CookieBuilder {
	if now != nil {
		b.now = now
	}
	return b
}

// Name returns the cookie name the builder renders.
func (b *CookieBuilder) Name() string {
	return b.name
}

// Build renders the cookie carrying token. When maxAge > 0 the cookie gets
// both Max-Age and an absolute Expires; otherwise it is a session cookie.
func (b *CookieBuilder) Build(token string, maxAge int) string {
	attrs := []string{
		fmt.Sprintf("%s=%s", b.name, token),
		"Path=/",
	}

	if maxAge > 0 {
		expires := b.now().Add(time.Duration(maxAge) * time.Second)
		attrs = append(attrs,
			fmt.Sprintf("Max-Age=%d", maxAge),
			"Expires="+expires.UTC().Format(http.TimeFormat),
		)
	}

	attrs = append(attrs, "HttpOnly", "SameSite=Lax")

	if b.secure {
		attrs = append(attrs, "Secure")
	}

	return strings.Join(attrs, "; ")
}

// Clear renders the invalidation cookie: empty value, Max-Age=0, Expires at
// the epoch, forcing immediate client-side deletion.
func (b *CookieBuilder) Clear() string {
	attrs := []string{
		fmt.Sprintf("%s=", b.name),
		"Path=/",
		"Max-Age=0",
		"Expires=" + time.Unix(0, 0).UTC().Format(http.TimeFormat),
		"HttpOnly",
		"SameSite=Lax",
	}

	if b.secure {
		attrs = append(attrs, "Secure")
	}

	return strings.Join(attrs, "; ")
}
