package entity

import "time"

// Constituency is a voting district. Deactivated constituencies reject new
// ballots but keep their history.
type Constituency struct {
	ID        int64
	Name      string
	Code      string
	Active    bool
	CreatedAt time.Time
}

// Party is a registered political party.
type Party struct {
	ID           int64
	Name         string
	Abbreviation string
	SymbolKey    string
	Active       bool
	CreatedAt    time.Time
}

// Candidate stands in exactly one constituency for one party.
type Candidate struct {
	ID             int64
	ConstituencyID int64
	PartyID        int64
	FullName       string
	PhotoKey       string
	Active         bool
	CreatedAt      time.Time
}
