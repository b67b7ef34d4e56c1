package auth

import (
	goerrors "github.com/goliatone/go-errors"
)

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = goerrors.New("identity not found", goerrors.CategoryAuth).
	WithTextCode("IDENTITY_NOT_FOUND").
	WithCode(goerrors.CodeUnauthorized)

// ErrMismatchedHashAndPassword covers every credential failure: wrong
// password, malformed stored record, bad hex. One error so callers cannot
// tell the cases apart.
var ErrMismatchedHashAndPassword = goerrors.New("mismatched hash and password", goerrors.CategoryAuth).
	WithTextCode("INVALID_CREDENTIALS").
	WithCode(goerrors.CodeUnauthorized)

// ErrTooManyLoginAttempts is returned while an account is cooling down
var ErrTooManyLoginAttempts = goerrors.New("too many login attempts", goerrors.CategoryAuth).
	WithTextCode("TOO_MANY_ATTEMPTS").
	WithCode(goerrors.CodeUnauthorized)

// ErrUnableToFindSession is the error when our request has no session token
var ErrUnableToFindSession = goerrors.New("unable to find session", goerrors.CategoryAuth).
	WithTextCode("SESSION_NOT_FOUND").
	WithCode(goerrors.CodeUnauthorized)

// ErrUnableToDecodeSession is the error for tokens that fail verification
var ErrUnableToDecodeSession = goerrors.New("unable to decode session", goerrors.CategoryAuth).
	WithTextCode("SESSION_INVALID").
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenMalformed is returned by external identity providers for tokens
// that cannot be parsed or fail signature checks
var ErrTokenMalformed = goerrors.New("token is malformed", goerrors.CategoryAuth).
	WithTextCode("TOKEN_MALFORMED").
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenExpired is returned by external identity providers for tokens
// whose validity window has passed
var ErrTokenExpired = goerrors.New("token is expired", goerrors.CategoryAuth).
	WithTextCode("TOKEN_EXPIRED").
	WithCode(goerrors.CodeUnauthorized)

// ErrMissingSigningKey is a configuration fault, not an authentication
// failure. It halts the operation instead of signing with an empty secret.
var ErrMissingSigningKey = goerrors.New("session signing key is not configured", goerrors.CategoryInternal).
	WithTextCode("MISSING_SIGNING_KEY").
	WithCode(goerrors.CodeInternal)

// ErrNotPermitted is the generic authorization failure. Deliberately carries
// no detail about which scope check rejected the request.
var ErrNotPermitted = goerrors.New("not permitted", goerrors.CategoryAuthz).
	WithTextCode("NOT_PERMITTED").
	WithCode(goerrors.CodeForbidden)

// ErrAuthzStoreUnavailable marks a transient data store failure during a
// privileged determination. Retryable; never collapsed into "not found".
var ErrAuthzStoreUnavailable = goerrors.New("authorization store temporarily unavailable", goerrors.CategoryInternal).
	WithTextCode("AUTHZ_STORE_UNAVAILABLE").
	WithCode(goerrors.CodeInternal)

// IsCredentialError reports whether err is one of the indistinguishable
// credential failures that should surface as a generic 401.
func IsCredentialError(err error) bool {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.Category == goerrors.CategoryAuth
}

// IsAuthzStoreError reports whether err marks a transient authorization
// store failure, which callers should treat as retryable.
func IsAuthzStoreError(err error) bool {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == "AUTHZ_STORE_UNAVAILABLE"
}
