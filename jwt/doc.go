// Package jwt wraps access-token creation and parsing for authgate.
//
// Access tokens are HS256-signed and carry the user identity (subject,
// email, role, plan) plus a device-fingerprint digest and a random jti, so
// two tokens minted from identical inputs are never equal.
//
// # What this package must NOT do
//
//   - Mint refresh tokens (those are opaque and come from internal/).
//   - Hold mutable state after NewManager.
package jwt
