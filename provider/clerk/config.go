package clerk

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Config holds Clerk configuration for session token validation.
type Config struct {
	// FrontendAPI is the Clerk instance frontend API host
	// (e.g., "example.clerk.accounts.dev").
	FrontendAPI string

	// JWKSURL overrides the default JWKS endpoint (optional).
	// Default: "https://{FrontendAPI}/.well-known/jwks.json".
	JWKSURL string

	// AuthorizedParties restricts the azp claim to known origins (optional).
	AuthorizedParties []string

	// RefreshInterval is how often to refresh JWKS keys in the background.
	// Default: 1 hour.
	RefreshInterval time.Duration

	// ContextFunc provides a context for the JWKS refresh goroutine.
	// Default: context.Background.
	ContextFunc func() context.Context
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig(frontendAPI string) Config {
	return Config{
		FrontendAPI:     frontendAPI,
		RefreshInterval: time.Hour,
	}
}

func (c Config) jwksURL() string {
	if c.JWKSURL != "" {
		return c.JWKSURL
	}

	host := strings.TrimSpace(c.FrontendAPI)
	if host == "" {
		return ""
	}

	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimPrefix(host, "http://")

	return fmt.Sprintf("https://%s/.well-known/jwks.json", strings.TrimSuffix(host, "/"))
}

func (c Config) isAuthorizedParty(azp string) bool {
	if len(c.AuthorizedParties) == 0 || azp == "" {
		return true
	}

	for _, party := range c.AuthorizedParties {
		if party == azp {
			return true
		}
	}

	return false
}
