package entity

// Purpose identifies what flow a verification code belongs to. Codes issued
// for one purpose never validate another.
type Purpose int16

const (
	PurposeUnknown       Purpose = 0
	PurposeRegistration  Purpose = 1
	PurposeLogin         Purpose = 2
	PurposePasswordReset Purpose = 3
	PurposeVoteCasting   Purpose = 4
)

func (p Purpose) String() string {
	switch p {
	case PurposeRegistration:
		return "Registration"
	case PurposeLogin:
		return "Login"
	case PurposePasswordReset:
		return "PasswordReset"
	case PurposeVoteCasting:
		return "VoteCasting"
	default:
		return "Unknown"
	}
}

// ParsePurpose maps the wire form ("Registration", "Login", ...) back to a
// Purpose. Unrecognized values map to PurposeUnknown.
func ParsePurpose(s string) Purpose {
	switch s {
	case "Registration":
		return PurposeRegistration
	case "Login":
		return PurposeLogin
	case "PasswordReset":
		return PurposePasswordReset
	case "VoteCasting":
		return PurposeVoteCasting
	default:
		return PurposeUnknown
	}
}

func (p Purpose) IsUnknown() bool {
	switch p {
	case PurposeRegistration, PurposeLogin, PurposePasswordReset, PurposeVoteCasting:
		return false
	default:
		return true
	}
}

// Outcome is the result of a validation attempt. Exactly one outcome is
// produced per attempt; only OutcomeValid consumes the code successfully.
type Outcome int16

const (
	OutcomeValid Outcome = iota + 1
	OutcomeInvalidCode
	OutcomeExpired
	OutcomeAlreadyUsed
	OutcomeMaxAttemptsExceeded
	OutcomeNotFound
)

func (o Outcome) String() string {
	switch o {
	case OutcomeValid:
		return "VALID"
	case OutcomeInvalidCode:
		return "INVALID_CODE"
	case OutcomeExpired:
		return "EXPIRED"
	case OutcomeAlreadyUsed:
		return "ALREADY_USED"
	case OutcomeMaxAttemptsExceeded:
		return "MAX_ATTEMPTS_EXCEEDED"
	case OutcomeNotFound:
		return "NOT_FOUND"
	default:
		return "UNKNOWN"
	}
}

// OK reports whether the attempt succeeded.
func (o Outcome) OK() bool {
	return o == OutcomeValid
}
