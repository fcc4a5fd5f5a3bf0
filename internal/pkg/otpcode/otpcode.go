package otpcode

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Length is the number of digits in a generated code.
const Length = 6

var codeSpace = big.NewInt(1_000_000)

// Generator produces one-time verification codes.
type Generator interface {
	// Generate returns a new code.
	Generate() string
}

// Numeric generates fixed-length numeric codes from a cryptographically
// secure source, uniformly distributed over [0, 999999].
type Numeric struct{}

// NewNumeric returns a Numeric code generator.
func NewNumeric() *Numeric {
	return &Numeric{}
}

// Generate returns a 6-digit zero-padded code such as "042917".
//
// crypto/rand.Int is rejection-sampled, so every value in the space is
// equally likely and codes are not predictable from prior outputs.
func (*Numeric) Generate() string {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		// crypto/rand failing means the platform entropy source is broken;
		// there is no safe fallback for a security code.
		panic(fmt.Sprintf("otpcode: entropy source unavailable: %v", err))
	}

	return fmt.Sprintf("%06d", n.Int64())
}
