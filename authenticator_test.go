package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auth "github.com/localhost300/bcmss-sub002"
)

// TestIdentity is a simple implementation of Identity interface for testing
type TestIdentity struct {
	id       string
	username string
	email    string
	role     string
}

func (t TestIdentity) ID() string       { return t.id }
func (t TestIdentity) Username() string { return t.username }
func (t TestIdentity) Email() string    { return t.email }
func (t TestIdentity) Role() string     { return t.role }

func TestNewAuthenticator(t *testing.T) {
	t.Run("Valid config", func(t *testing.T) {
		authenticator, err := auth.NewAuthenticator(new(MockIdentityProvider), testConfig())

		require.NoError(t, err)
		assert.NotNil(t, authenticator)
		assert.NotNil(t, authenticator.TokenCodec())
	})

	t.Run("Missing signing key", func(t *testing.T) {
		authenticator, err := auth.NewAuthenticator(new(MockIdentityProvider), auth.SimpleConfig{})

		assert.Nil(t, authenticator)
		assert.ErrorIs(t, err, auth.ErrMissingSigningKey)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	mockProvider := new(MockIdentityProvider)

	authenticator, err := auth.NewAuthenticator(mockProvider, testConfig())
	require.NoError(t, err)

	t.Run("Successful login", func(t *testing.T) {
		identity := TestIdentity{
			id:       uuid.New().String(),
			username: "testuser",
			email:    "test@example.com",
			role:     "teacher",
		}

		mockProvider.On("VerifyIdentity", ctx, "test@example.com", "password123").
			Return(identity, nil).Once()

		token, err := authenticator.Login(ctx, "test@example.com", "password123")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		// the minted token verifies and carries the identity
		payload := authenticator.TokenCodec().Verify(token)
		require.NotNil(t, payload)
		assert.Equal(t, identity.ID(), payload.UserID)
		assert.Equal(t, identity.Email(), payload.Email)
	})

	t.Run("Failed login - invalid credentials", func(t *testing.T) {
		mockProvider.On("VerifyIdentity", ctx, "bad@example.com", "wrongpassword").
			Return(nil, auth.ErrMismatchedHashAndPassword).Once()

		token, err := authenticator.Login(ctx, "bad@example.com", "wrongpassword")

		assert.ErrorIs(t, err, auth.ErrMismatchedHashAndPassword)
		assert.Empty(t, token)
	})

	t.Run("Failed login - nil identity", func(t *testing.T) {
		mockProvider.On("VerifyIdentity", ctx, "ghost@example.com", "password123").
			Return(nil, nil).Once()

		token, err := authenticator.Login(ctx, "ghost@example.com", "password123")

		assert.ErrorIs(t, err, auth.ErrIdentityNotFound)
		assert.Empty(t, token)
	})
}

func TestImpersonate(t *testing.T) {
	ctx := context.Background()
	mockProvider := new(MockIdentityProvider)

	authenticator, err := auth.NewAuthenticator(mockProvider, testConfig())
	require.NoError(t, err)

	t.Run("Successful impersonation", func(t *testing.T) {
		identity := TestIdentity{
			id:       uuid.New().String(),
			username: "adminuser",
			email:    "admin@example.com",
			role:     "admin",
		}

		mockProvider.On("FindIdentityByIdentifier", ctx, "admin@example.com").
			Return(identity, nil).Once()

		token, err := authenticator.Impersonate(ctx, "admin@example.com")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		payload := authenticator.TokenCodec().Verify(token)
		require.NotNil(t, payload)
		assert.Equal(t, identity.ID(), payload.UserID)
	})

	t.Run("Failed impersonation - identity not found", func(t *testing.T) {
		mockProvider.On("FindIdentityByIdentifier", ctx, "unknown@example.com").
			Return(nil, auth.ErrIdentityNotFound).Once()

		token, err := authenticator.Impersonate(ctx, "unknown@example.com")

		assert.Error(t, err)
		assert.Empty(t, token)
	})
}

func TestSessionFromToken(t *testing.T) {
	mockProvider := new(MockIdentityProvider)

	authenticator, err := auth.NewAuthenticator(mockProvider, testConfig())
	require.NoError(t, err)

	userID := uuid.New().String()
	token, payload, err := authenticator.TokenCodec().Issue(userID, "test@example.com")
	require.NoError(t, err)

	t.Run("Valid token", func(t *testing.T) {
		session, err := authenticator.SessionFromToken(token)

		require.NoError(t, err)
		require.NotNil(t, session)

		assert.Equal(t, userID, session.GetUserID())
		assert.Equal(t, "test@example.com", session.GetEmail())
		require.NotNil(t, session.GetIssuedAt())
		assert.Equal(t, payload.IssuedAt, session.GetIssuedAt().Unix())
		require.NotNil(t, session.GetExpiration())
		assert.Equal(t, payload.ExpiresAt, session.GetExpiration().Unix())
	})

	t.Run("Invalid token", func(t *testing.T) {
		session, err := authenticator.SessionFromToken(token + "tampered")

		assert.ErrorIs(t, err, auth.ErrUnableToDecodeSession)
		assert.Nil(t, session)
	})

	t.Run("Empty token", func(t *testing.T) {
		session, err := authenticator.SessionFromToken("")

		assert.ErrorIs(t, err, auth.ErrUnableToDecodeSession)
		assert.Nil(t, session)
	})
}

func TestIdentityFromSession(t *testing.T) {
	ctx := context.Background()
	mockProvider := new(MockIdentityProvider)

	authenticator, err := auth.NewAuthenticator(mockProvider, testConfig())
	require.NoError(t, err)

	userID := uuid.New().String()
	session := &auth.SessionObject{
		UserID: userID,
		Email:  "test@example.com",
	}

	t.Run("Identity found", func(t *testing.T) {
		identity := TestIdentity{
			id:       userID,
			username: "testuser",
			email:    "test@example.com",
			role:     "teacher",
		}

		mockProvider.On("FindIdentityByIdentifier", ctx, userID).
			Return(identity, nil).Once()

		result, err := authenticator.IdentityFromSession(ctx, session)

		assert.NoError(t, err)
		assert.Equal(t, identity.ID(), result.ID())
		assert.Equal(t, identity.Email(), result.Email())
	})

	t.Run("Identity not found", func(t *testing.T) {
		mockProvider.On("FindIdentityByIdentifier", ctx, userID).
			Return(nil, auth.ErrIdentityNotFound).Once()

		result, err := authenticator.IdentityFromSession(ctx, session)

		assert.Error(t, err)
		assert.Nil(t, result)
	})
}

func TestLoginPropagatesProviderError(t *testing.T) {
	ctx := context.Background()
	mockProvider := new(MockIdentityProvider)

	authenticator, err := auth.NewAuthenticator(mockProvider, testConfig())
	require.NoError(t, err)

	providerErr := errors.New("store unavailable")
	mockProvider.On("VerifyIdentity", ctx, "test@example.com", "password").
		Return(nil, providerErr).Once()

	token, err := authenticator.Login(ctx, "test@example.com", "password")

	assert.ErrorIs(t, err, providerErr)
	assert.Empty(t, token)
}
