package inbound

type CastVoteRequest struct {
	ConstituencyID  int64  `json:"constituency_id,string"`
	CandidateID     int64  `json:"candidate_id,string"`
	Code            string `json:"code"`
	ClientSignature string `json:"client_signature,omitempty"`
}

type CastVoteResponse struct {
	TransactionRef string `json:"transaction_ref"`
	CastAt         int64  `json:"cast_at"`
}

type EligibilityResponse struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
}

type HistoryItem struct {
	ConstituencyName string `json:"constituency_name"`
	TransactionRef   string `json:"transaction_ref"`
	Status           string `json:"status"`
	CastAt           int64  `json:"cast_at"`
}

type HistoryResponse struct {
	Items []HistoryItem `json:"items"`
}

type PartyTally struct {
	PartyID    int64   `json:"party_id,string"`
	PartyName  string  `json:"party_name"`
	Votes      int64   `json:"votes"`
	Percentage float64 `json:"percentage"`
}

type ResultsResponse struct {
	ConstituencyID int64        `json:"constituency_id,string"`
	TotalVotes     int64        `json:"total_votes"`
	Tallies        []PartyTally `json:"tallies"`
}

type ConstituencySummary struct {
	ConstituencyID   int64        `json:"constituency_id,string"`
	ConstituencyName string       `json:"constituency_name"`
	TotalVotes       int64        `json:"total_votes"`
	Tallies          []PartyTally `json:"tallies"`
}

type SummariesResponse struct {
	Constituencies []ConstituencySummary `json:"constituencies"`
}

type HourlyBucket struct {
	Hour  int64 `json:"hour"`
	Votes int64 `json:"votes"`
}

type HourlyDistributionResponse struct {
	Buckets []HourlyBucket `json:"buckets"`
}

type TurnoutResponse struct {
	EligibleVoters int64   `json:"eligible_voters"`
	BallotsCast    int64   `json:"ballots_cast"`
	TurnoutPercent float64 `json:"turnout_percent"`
	FlaggedBallots int64   `json:"flagged_ballots"`
}

type SuspiciousPattern struct {
	OriginIP    string `json:"origin_ip"`
	BallotCount int64  `json:"ballot_count"`
	FirstCastAt int64  `json:"first_cast_at"`
	LastCastAt  int64  `json:"last_cast_at"`
}

type SuspiciousPatternsResponse struct {
	Patterns []SuspiciousPattern `json:"patterns"`
}

type ConstituencyCreateRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type ConstituencySetActiveRequest struct {
	Active bool `json:"active"`
}

type Constituency struct {
	ID     int64  `json:"id,string"`
	Name   string `json:"name"`
	Code   string `json:"code"`
	Active bool   `json:"active"`
}

type ConstituencyListResponse struct {
	Constituencies []Constituency `json:"constituencies"`
}

type PartyCreateRequest struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

type PartySetActiveRequest struct {
	Active bool `json:"active"`
}

type Party struct {
	ID           int64  `json:"id,string"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	SymbolKey    string `json:"symbol_key,omitempty"`
	Active       bool   `json:"active"`
}

type PartyListResponse struct {
	Parties []Party `json:"parties"`
}

type CandidateCreateRequest struct {
	ConstituencyID int64  `json:"constituency_id,string"`
	PartyID        int64  `json:"party_id,string"`
	FullName       string `json:"full_name"`
}

type CandidateSetActiveRequest struct {
	Active bool `json:"active"`
}

type Candidate struct {
	ID             int64  `json:"id,string"`
	ConstituencyID int64  `json:"constituency_id,string"`
	PartyID        int64  `json:"party_id,string"`
	FullName       string `json:"full_name"`
	PhotoKey       string `json:"photo_key,omitempty"`
	Active         bool   `json:"active"`
}

type CandidateListResponse struct {
	Candidates []Candidate `json:"candidates"`
}
