// Package uid provides ID generation: snowflake int64 identifiers for
// database rows and UUID strings for opaque tokens.
package uid

// NumberID generates int64 identifiers.
type NumberID interface {
	Generate() int64
}

// StringID generates string identifiers.
type StringID interface {
	Generate() string
}
