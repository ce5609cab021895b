// Package internal contains helper utilities that are intentionally private
// to authgate, including secure random token generation and device
// fingerprint hashing.
//
// # Sub-packages
//
//   - audit — structured audit events and Sink implementations
//   - metrics — lock-free counters behind the engine snapshot API
//   - rate — the attempt-counter policy core (store contract + limiter)
//
// # What this package must NOT do
//
//   - Export types that appear in the public authgate API.
//   - Be imported by any package outside the authgate module.
package internal
