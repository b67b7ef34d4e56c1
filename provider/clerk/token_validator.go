package clerk

import (
	"context"
	stderrors "errors"
	"fmt"
	"log"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"

	auth "github.com/localhost300/bcmss-sub002"
)

// TokenValidator validates Clerk-issued session JWTs using the instance JWKS.
type TokenValidator struct {
	config Config
	jwks   *keyfunc.JWKS
}

// NewTokenValidator creates a new Clerk token validator. It fetches the JWKS
// eagerly so misconfigured instances fail at startup rather than on the
// first request.
func NewTokenValidator(cfg Config) (*TokenValidator, error) {
	jwksURL := cfg.jwksURL()
	if jwksURL == "" {
		return nil, fmt.Errorf("clerk: frontend API or JWKS URL is required")
	}

	refreshInterval := cfg.RefreshInterval
	if refreshInterval == 0 {
		refreshInterval = time.Hour
	}

	ctxFunc := cfg.ContextFunc
	if ctxFunc == nil {
		ctxFunc = context.Background
	}

	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		Ctx: ctxFunc(),
		RefreshErrorHandler: func(err error) {
			log.Printf("clerk: failed to do a background refresh of the JWK set: %s", err)
		},
		RefreshInterval:   refreshInterval,
		RefreshRateLimit:  time.Minute * 5,
		RefreshTimeout:    time.Second * 10,
		RefreshUnknownKID: true,
	})
	if err != nil {
		return nil, fmt.Errorf("clerk: failed to get JWK set: %w", err)
	}

	return &TokenValidator{
		config: cfg,
		jwks:   jwks,
	}, nil
}

// Validate parses and verifies a Clerk session token.
func (v *TokenValidator) Validate(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		v.jwks.Keyfunc,
		jwt.WithValidMethods([]string{"RS256"}),
	)
	if err != nil {
		return nil, normalizeValidationError(err)
	}

	if !token.Valid || claims.Subject == "" {
		return nil, auth.ErrTokenMalformed
	}

	if !v.config.isAuthorizedParty(claims.AuthorizedParty) {
		clone := auth.ErrTokenMalformed.Clone()
		return nil, clone.WithMetadata(map[string]any{
			"provider": "clerk",
			"azp":      claims.AuthorizedParty,
		})
	}

	return claims, nil
}

// Shutdown stops the background JWKS refresh.
func (v *TokenValidator) Shutdown() {
	if v.jwks != nil {
		v.jwks.EndBackground()
	}
}

func normalizeValidationError(err error) error {
	if err == nil {
		return nil
	}

	clone := auth.ErrTokenMalformed.Clone()
	if stderrors.Is(err, jwt.ErrTokenExpired) {
		clone = auth.ErrTokenExpired.Clone()
	}

	if clone == nil {
		return err
	}

	clone.Source = err
	return clone.WithMetadata(map[string]any{
		"provider": "clerk",
		"cause":    err.Error(),
	})
}
