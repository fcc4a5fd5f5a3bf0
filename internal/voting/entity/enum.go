package entity

// BallotStatus is the lifecycle state of a committed ballot.
type BallotStatus int16

const (
	BallotStatusUnknown   BallotStatus = 0
	BallotStatusCast      BallotStatus = 1
	BallotStatusVerified  BallotStatus = 2
	BallotStatusFlagged   BallotStatus = 3
	BallotStatusCancelled BallotStatus = 4
)

func (b BallotStatus) String() string {
	switch b {
	case BallotStatusCast:
		return "Cast"
	case BallotStatusVerified:
		return "Verified"
	case BallotStatusFlagged:
		return "Flagged"
	case BallotStatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}
