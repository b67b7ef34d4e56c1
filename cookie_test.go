package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	auth "github.com/localhost300/bcmss-sub002"
)

func TestCookieBuilderBuild(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Development cookie", func(t *testing.T) {
		builder := auth.NewCookieBuilder(auth.SimpleConfig{}).
			WithClock(func() time.Time { return now })

		got := builder.Build("tok123", 604800)

		assert.Equal(t,
			"bc_session=tok123; Path=/; Max-Age=604800; Expires=Sat, 08 Mar 2025 12:00:00 GMT; HttpOnly; SameSite=Lax",
			got,
		)
	})

	t.Run("Production adds Secure", func(t *testing.T) {
		builder := auth.NewCookieBuilder(auth.SimpleConfig{Production: true}).
			WithClock(func() time.Time { return now })

		got := builder.Build("tok123", 3600)

		assert.Equal(t,
			"bc_session=tok123; Path=/; Max-Age=3600; Expires=Sat, 01 Mar 2025 13:00:00 GMT; HttpOnly; SameSite=Lax; Secure",
			got,
		)
	})

	t.Run("Session cookie without max age", func(t *testing.T) {
		builder := auth.NewCookieBuilder(auth.SimpleConfig{}).
			WithClock(func() time.Time { return now })

		got := builder.Build("tok123", 0)

		assert.Equal(t, "bc_session=tok123; Path=/; HttpOnly; SameSite=Lax", got)
	})

	t.Run("Custom cookie name", func(t *testing.T) {
		builder := auth.NewCookieBuilder(auth.SimpleConfig{CookieName: "session"}).
			WithClock(func() time.Time { return now })

		assert.Equal(t, "session", builder.Name())
		assert.Equal(t, "session=tok123; Path=/; HttpOnly; SameSite=Lax", builder.Build("tok123", 0))
	})
}

func TestCookieBuilderClear(t *testing.T) {
	t.Run("Development", func(t *testing.T) {
		builder := auth.NewCookieBuilder(auth.SimpleConfig{})

		assert.Equal(t,
			"bc_session=; Path=/; Max-Age=0; Expires=Thu, 01 Jan 1970 00:00:00 GMT; HttpOnly; SameSite=Lax",
			builder.Clear(),
		)
	})

	t.Run("Production", func(t *testing.T) {
		builder := auth.NewCookieBuilder(auth.SimpleConfig{Production: true})

		assert.Equal(t,
			"bc_session=; Path=/; Max-Age=0; Expires=Thu, 01 Jan 1970 00:00:00 GMT; HttpOnly; SameSite=Lax; Secure",
			builder.Clear(),
		)
	})
}
