package entity

import "time"

// Voter is the slice of an account the casting guard needs.
type Voter struct {
	ID          int64
	Email       string
	FullName    string
	Active      bool
	Verified    bool
	LockedUntil *time.Time
}

// Locked reports whether a lockout is in effect at the given instant.
func (v Voter) Locked(now time.Time) bool {
	return v.LockedUntil != nil && now.Before(*v.LockedUntil)
}
