// Package otpcode generates short-lived numeric verification codes.
//
// Codes are random (not derived from a secret or counter), so possession of
// previous codes reveals nothing about future ones. Persistence, expiry and
// attempt accounting live with the caller.
package otpcode
