// Package clock abstracts the current time behind an interface so that
// expiry and lockout logic can be tested deterministically.
package clock
