package entity

// Role drives authorization policy decisions.
type Role int16

const (
	RoleUnknown Role = 0
	RoleVoter   Role = 1
	RoleAdmin   Role = 2
)

func (r Role) String() string {
	switch r {
	case RoleVoter:
		return "voter"
	case RoleAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// Status is the account lifecycle state.
type Status int16

const (
	StatusUnknown     Status = 0
	StatusPending     Status = 1
	StatusActive      Status = 2
	StatusDeactivated Status = 3
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusActive:
		return "Active"
	case StatusDeactivated:
		return "Deactivated"
	default:
		return "Unknown"
	}
}
