package inbound

type IssueRequest struct {
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
}

type IssueResponse struct {
	ExpiresAt         int64  `json:"expires_at"`
	ResendAvailableAt int64  `json:"resend_available_at"`
	Code              string `json:"code,omitempty"`
}

type ValidateRequest struct {
	Email   string `json:"email"`
	Code    string `json:"code"`
	Purpose string `json:"purpose"`
}

type ValidateResponse struct {
	Outcome      string `json:"outcome"`
	Valid        bool   `json:"valid"`
	AttemptsLeft int32  `json:"attempts_left,omitempty"`
}

type CanRequestResponse struct {
	Allowed           bool   `json:"allowed"`
	Reason            string `json:"reason,omitempty"`
	RetryAfterSeconds int64  `json:"retry_after_seconds,omitempty"`
}

type RemainingTimeResponse struct {
	Active           bool  `json:"active"`
	RemainingSeconds int64 `json:"remaining_seconds"`
	ExpiresAt        int64 `json:"expires_at,omitempty"`
}

type StatsResponse struct {
	TotalIssued  int64 `json:"total_issued"`
	TotalActive  int64 `json:"total_active"`
	TotalUsed    int64 `json:"total_used"`
	TotalExpired int64 `json:"total_expired"`
	IssuedToday  int64 `json:"issued_today"`
}
