package entity

import "time"

// Verification is a single issued one-time code for an (email, purpose) pair.
//
// At most one verification per pair is valid at a time: issuing a new code
// marks every previous unexpired code as used in the same transaction.
type Verification struct {
	ID          int64
	Email       string
	Code        string
	Purpose     Purpose
	Attempts    int32
	MaxAttempts int32
	Used        bool
	UsedAt      *time.Time
	ExpiresAt   time.Time
	CreatedAt   time.Time
}

// Expired reports whether the code is past its expiry at the given instant.
func (v Verification) Expired(now time.Time) bool {
	return !now.Before(v.ExpiresAt)
}

// Exhausted reports whether the attempt budget is spent.
func (v Verification) Exhausted() bool {
	return v.Attempts >= v.MaxAttempts
}

// IssueStats summarizes verification volume for the admin dashboard.
type IssueStats struct {
	TotalIssued  int64
	TotalActive  int64
	TotalUsed    int64
	TotalExpired int64
	IssuedToday  int64
}
