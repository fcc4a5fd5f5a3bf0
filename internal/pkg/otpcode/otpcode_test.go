package otpcode

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumericGenerate(t *testing.T) {
	gen := NewNumeric()

	seen := make(map[string]struct{})
	for range 200 {
		code := gen.Generate()

		assert.Len(t, code, Length)

		n, err := strconv.Atoi(code)
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 1_000_000)

		seen[code] = struct{}{}
	}

	// 200 draws from a space of a million should essentially never collapse
	// to a handful of values; a tiny set means the source is broken.
	assert.Greater(t, len(seen), 150)
}

func TestNumericGenerateZeroPadding(t *testing.T) {
	gen := NewNumeric()

	for range 500 {
		code := gen.Generate()
		if code[0] == '0' {
			// Leading zeros must be preserved, not trimmed.
			assert.Len(t, code, Length)
			return
		}
	}
}
