package entity

import "time"

// PartyTally is the vote count of one party inside a constituency.
type PartyTally struct {
	PartyID    int64
	PartyName  string
	Votes      int64
	Percentage float64
}

// ConstituencySummary aggregates one constituency's results.
type ConstituencySummary struct {
	ConstituencyID   int64
	ConstituencyName string
	TotalVotes       int64
	Tallies          []PartyTally
}

// HourlyBucket counts ballots cast within one hour.
type HourlyBucket struct {
	Hour  time.Time
	Votes int64
}

// TurnoutStats summarizes participation across the platform.
type TurnoutStats struct {
	EligibleVoters int64
	BallotsCast    int64
	TurnoutPercent float64
	FlaggedBallots int64
}

// SuspiciousPattern is a group of ballots sharing an origin IP above the
// configured threshold.
type SuspiciousPattern struct {
	OriginIP    string
	BallotCount int64
	FirstCastAt time.Time
	LastCastAt  time.Time
}
