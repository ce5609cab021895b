// Package authgate provides the authentication core for a web application:
// credential verification, adaptive brute-force lockout, session token
// issuance, and audit event emission.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// authgate is the public surface. It exposes [Engine], [Builder], [Config],
// the store contracts ([AccountStore], [AttemptStore]), and value types
// (Session, TokenPair, AuditEvent). Policy evaluation, audit dispatch, and
// metrics accounting live under internal/ and are never exported directly.
//
// The engine holds no per-request state of its own. Failed-attempt counters
// live in the [AttemptStore]; accounts live in the [AccountStore]; issued
// tokens live at the client trust boundary behind a [TokenSink]. A login or
// signup call is a pure coordination pass over those collaborators.
//
// # Lockout policy
//
// Failed logins are counted per (client IP, identifier) pair inside a fixed
// 15-minute window. After 5 failures within the window the pair is locked:
// further logins are rejected before the account store is consulted. The two
// attempts before the lock carry a remaining-attempts warning. Counters reset
// on successful login or window expiry; expiry is checked lazily, there is no
// sweeper.
package authgate
