package entity

import "time"

// User is a registered voter or administrator.
type User struct {
	ID             int64
	Email          string
	FullName       string
	Password       string
	VoterID        string
	Role           Role
	Status         Status
	FailedAttempts int32
	LockedUntil    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Locked reports whether a lockout is in effect at the given instant. An
// elapsed lockout counts as unlocked even before the counters are reset.
func (u User) Locked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}
