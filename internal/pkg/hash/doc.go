// Package hash provides one-way hashing used for voter credentials and
// opaque token digests.
//
// Bcrypt is used for passwords; HMAC-SHA256 for deterministic digests of
// session and reset tokens so the plaintext never reaches the database.
package hash
