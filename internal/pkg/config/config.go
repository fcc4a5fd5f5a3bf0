// Package config abstracts runtime configuration lookup.
//
// Keys are dotted paths (for example "modules.otp.ttl_minutes"). Duration
// helpers read plain integers and apply the unit named by the method, so a
// value of 5 under GetMinute means five minutes.
package config

import (
	"io"
	"time"
)

// Config retrieves typed configuration values. Implementations return the
// zero value when a key is missing or cannot be converted.
type Config interface {
	io.Closer

	GetBool(key string) bool
	GetString(key string) string
	GetInt(key string) int
	GetInt64(key string) int64
	GetUint16(key string) uint16
	GetFloat64(key string) float64

	// GetArray reads a comma-separated string as a slice.
	GetArray(key string) []string

	// GetSecond, GetMinute, GetHour and GetDay read an integer and scale it
	// by the named unit.
	GetSecond(key string) time.Duration
	GetMinute(key string) time.Duration
	GetHour(key string) time.Duration
	GetDay(key string) time.Duration
}
