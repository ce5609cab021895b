// Package rate implements the adaptive failed-login policy: a per
// (client IP, identifier) attempt counter evaluated against a fixed window
// and tiered thresholds (allow, warn, lock).
//
// # Window semantics
//
// A record's window opens at its first failed attempt and spans a fixed
// duration. A record whose window has expired counts as zero; expiry is
// checked lazily on read, and the backing store restarts the window on the
// next increment. There is no sweeping timer.
//
// # What this package must NOT do
//
//   - Talk to a concrete backing store (implementations of [AttemptStore]
//     live under store/).
//   - Be imported outside the authgate module.
package rate
