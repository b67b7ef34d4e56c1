// Package clerk validates Clerk session JWTs against the instance JWKS and
// exposes the verified identity to the authorization layer.
package clerk
