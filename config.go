package auth

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// SimpleConfig is a concrete Config meant to be loaded once at process start
// and treated as read-only afterwards. Components receive it explicitly;
// nothing in this package reads the environment at call time.
type SimpleConfig struct {
	SigningKey           string `json:"signing_key"`
	CookieName           string `json:"cookie_name"`
	ContextKey           string `json:"context_key"`
	TokenMaxAge          int    `json:"token_max_age"`
	ExtendedTokenMaxAge  int    `json:"extended_token_max_age"`
	TokenLookup          string `json:"token_lookup"`
	AuthScheme           string `json:"auth_scheme"`
	RejectedRouteKey     string `json:"rejected_route_key"`
	RejectedRouteDefault string `json:"rejected_route_default"`
	Production           bool   `json:"production"`
}

var _ Config = SimpleConfig{}

// Validate will validate the configuration. A missing signing key is an
// operator-facing fault that should stop startup, not downgrade security.
func (c SimpleConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.SigningKey, validation.Required, validation.Length(16, 0)),
		validation.Field(&c.TokenMaxAge, validation.Min(0)),
		validation.Field(&c.ExtendedTokenMaxAge, validation.Min(0)),
	)
}

func (c SimpleConfig) GetSigningKey() string { return c.SigningKey }

func (c SimpleConfig) GetCookieName() string {
	if c.CookieName == "" {
		return DefaultCookieName
	}
	return c.CookieName
}

func (c SimpleConfig) GetContextKey() string {
	if c.ContextKey == "" {
		return "actor"
	}
	return c.ContextKey
}

func (c SimpleConfig) GetTokenMaxAge() int {
	if c.TokenMaxAge <= 0 {
		return DefaultTokenMaxAge
	}
	return c.TokenMaxAge
}

func (c SimpleConfig) GetExtendedTokenMaxAge() int {
	if c.ExtendedTokenMaxAge <= 0 {
		return c.GetTokenMaxAge()
	}
	return c.ExtendedTokenMaxAge
}

func (c SimpleConfig) GetTokenLookup() string {
	if c.TokenLookup == "" {
		return "cookie:" + c.GetCookieName() + ",header:Authorization"
	}
	return c.TokenLookup
}

func (c SimpleConfig) GetAuthScheme() string {
	if c.AuthScheme == "" {
		return "Bearer"
	}
	return c.AuthScheme
}

func (c SimpleConfig) GetRejectedRouteKey() string {
	if c.RejectedRouteKey == "" {
		return "rejected_route"
	}
	return c.RejectedRouteKey
}

func (c SimpleConfig) GetRejectedRouteDefault() string {
	if c.RejectedRouteDefault == "" {
		return "/"
	}
	return c.RejectedRouteDefault
}

func (c SimpleConfig) IsProduction() bool { return c.Production }
