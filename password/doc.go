// Package password provides argon2id hashing and verification in PHC
// string format. Verification compares digests with constant-time
// semantics; a mismatch and a malformed hash are both reported without
// leaking which byte diverged.
package password
