// Package auth holds the identity a session runs as.
//
// Token acquisition happens elsewhere; StaticSession simply carries an access
// token that was already issued, its provider and an optional request signer.
// Google tokens are JWTs, so their expiry can be read (without verification)
// to warn before the service rejects them.
package auth
