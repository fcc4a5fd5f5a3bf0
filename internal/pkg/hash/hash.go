package hash

// Hash abstracts a one-way hashing scheme.
type Hash interface {
	// Hash produces a digest for the given plaintext.
	Hash(plaintext string) ([]byte, error)
	// Verify reports whether plaintext matches the hashed value.
	Verify(hashed, plaintext string) bool
}
