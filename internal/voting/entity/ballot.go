package entity

import "time"

// Ballot is one committed vote. The voter reference carries a UNIQUE
// constraint in storage; that constraint, not the precondition checks, is
// what guarantees one ballot per voter.
type Ballot struct {
	ID              int64
	VoterID         int64
	ConstituencyID  int64
	CandidateID     int64
	PartyID         int64
	SessionToken    string
	TransactionRef  string
	OriginIP        string
	ClientSignature string
	Status          BallotStatus
	CastAt          time.Time
}

// HistoryItem is one anonymised entry of a voter's history: when and where a
// ballot was cast, never for whom.
type HistoryItem struct {
	ConstituencyName string
	TransactionRef   string
	Status           BallotStatus
	CastAt           time.Time
}
