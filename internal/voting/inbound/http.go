package inbound

import (
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/router"
	"github.com/VENUHARGI/OnlineVoting/internal/voting/entity"
	"github.com/VENUHARGI/OnlineVoting/internal/voting/usecase"
)

// HTTPEndpoint exposes HTTP handlers for voting, results and the admin
// catalog.
type HTTPEndpoint struct {
	uc uc
}

// CastVote commits the authenticated voter's ballot.
// @Summary Cast vote
// @Description Validates the voting code, checks eligibility and commits the ballot exactly once.
// @Tags Voting
// @Accept json
// @Produce json
// @Param request body CastVoteRequest true "Cast payload"
// @Success 200 {object} router.successResponse{data=CastVoteResponse} "Ballot receipt"
// @Failure 401 {object} router.errorResponse "Rejected voting code"
// @Failure 409 {object} router.errorResponse "Already voted"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/votes [post]
func (h *HTTPEndpoint) CastVote(r *router.Request) (any, error) {
	var req CastVoteRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.CastVote(r.Context(), usecase.CastVoteInput{
		ConstituencyID:  req.ConstituencyID,
		CandidateID:     req.CandidateID,
		Code:            req.Code,
		OriginIP:        r.RemoteAddr,
		ClientSignature: req.ClientSignature,
	})
	if err != nil {
		return nil, err
	}

	return CastVoteResponse{
		TransactionRef: resp.TransactionRef,
		CastAt:         resp.CastAt.Unix(),
	}, nil
}

// CheckEligibility reports whether the voter could cast a ballot right now.
func (h *HTTPEndpoint) CheckEligibility(r *router.Request) (any, error) {
	resp, err := h.uc.CheckEligibility(r.Context())
	if err != nil {
		return nil, err
	}

	return EligibilityResponse{
		Eligible: resp.Eligible,
		Reason:   resp.Reason,
	}, nil
}

// History returns the voter's anonymised ballot history.
func (h *HTTPEndpoint) History(r *router.Request) (any, error) {
	resp, err := h.uc.History(r.Context())
	if err != nil {
		return nil, err
	}

	items := make([]HistoryItem, 0, len(resp.Items))
	for _, it := range resp.Items {
		items = append(items, HistoryItem{
			ConstituencyName: it.ConstituencyName,
			TransactionRef:   it.TransactionRef,
			Status:           it.Status,
			CastAt:           it.CastAt.Unix(),
		})
	}

	return HistoryResponse{Items: items}, nil
}

// Results returns per-party tallies for one constituency.
func (h *HTTPEndpoint) Results(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.Results(r.Context(), usecase.ResultsInput{ConstituencyID: id})
	if err != nil {
		return nil, err
	}

	return ResultsResponse{
		ConstituencyID: resp.ConstituencyID,
		TotalVotes:     resp.TotalVotes,
		Tallies:        mapTallies(resp.Tallies),
	}, nil
}

// Summaries returns results across all constituencies.
func (h *HTTPEndpoint) Summaries(r *router.Request) (any, error) {
	resp, err := h.uc.Summaries(r.Context())
	if err != nil {
		return nil, err
	}

	out := make([]ConstituencySummary, 0, len(resp.Constituencies))
	for _, c := range resp.Constituencies {
		out = append(out, ConstituencySummary{
			ConstituencyID:   c.ConstituencyID,
			ConstituencyName: c.ConstituencyName,
			TotalVotes:       c.TotalVotes,
			Tallies:          mapTallies(c.Tallies),
		})
	}

	return SummariesResponse{Constituencies: out}, nil
}

// HourlyDistribution returns ballots per hour for a trailing window.
func (h *HTTPEndpoint) HourlyDistribution(r *router.Request) (any, error) {
	hours, _ := r.GetQueryInt32("hours")

	resp, err := h.uc.HourlyDistribution(r.Context(), usecase.HourlyDistributionInput{SinceHours: hours})
	if err != nil {
		return nil, err
	}

	buckets := make([]HourlyBucket, 0, len(resp.Buckets))
	for _, b := range resp.Buckets {
		buckets = append(buckets, HourlyBucket{Hour: b.Hour.Unix(), Votes: b.Votes})
	}

	return HourlyDistributionResponse{Buckets: buckets}, nil
}

// Turnout summarizes participation.
func (h *HTTPEndpoint) Turnout(r *router.Request) (any, error) {
	resp, err := h.uc.Turnout(r.Context())
	if err != nil {
		return nil, err
	}

	return TurnoutResponse{
		EligibleVoters: resp.EligibleVoters,
		BallotsCast:    resp.BallotsCast,
		TurnoutPercent: resp.TurnoutPercent,
		FlaggedBallots: resp.FlaggedBallots,
	}, nil
}

// SuspiciousPatterns lists origin IPs above the ballot-count threshold.
func (h *HTTPEndpoint) SuspiciousPatterns(r *router.Request) (any, error) {
	resp, err := h.uc.SuspiciousPatterns(r.Context())
	if err != nil {
		return nil, err
	}

	patterns := make([]SuspiciousPattern, 0, len(resp.Patterns))
	for _, p := range resp.Patterns {
		patterns = append(patterns, SuspiciousPattern{
			OriginIP:    p.OriginIP,
			BallotCount: p.BallotCount,
			FirstCastAt: p.FirstCastAt.Unix(),
			LastCastAt:  p.LastCastAt.Unix(),
		})
	}

	return SuspiciousPatternsResponse{Patterns: patterns}, nil
}

// FlagBallot marks a ballot for review.
func (h *HTTPEndpoint) FlagBallot(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	return nil, h.uc.FlagBallot(r.Context(), usecase.FlagBallotInput{BallotID: id})
}

// ConstituencyCreate registers a voting district.
func (h *HTTPEndpoint) ConstituencyCreate(r *router.Request) (any, error) {
	var req ConstituencyCreateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.ConstituencyCreate(r.Context(), usecase.ConstituencyCreateInput{
		Name: req.Name,
		Code: req.Code,
	})
}

// ConstituencySetActive toggles a constituency's activation flag.
func (h *HTTPEndpoint) ConstituencySetActive(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req ConstituencySetActiveRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.ConstituencySetActive(r.Context(), usecase.ConstituencySetActiveInput{
		ConstituencyID: id,
		Active:         req.Active,
	})
}

// ConstituencyList lists constituencies.
func (h *HTTPEndpoint) ConstituencyList(r *router.Request) (any, error) {
	include := r.GetQuery("include_inactive") == "true"

	resp, err := h.uc.ConstituencyList(r.Context(), usecase.ConstituencyListInput{IncludeInactive: include})
	if err != nil {
		return nil, err
	}

	out := make([]Constituency, 0, len(resp.Constituencies))
	for _, c := range resp.Constituencies {
		out = append(out, Constituency{ID: c.ID, Name: c.Name, Code: c.Code, Active: c.Active})
	}

	return ConstituencyListResponse{Constituencies: out}, nil
}

// PartyCreate registers a party.
func (h *HTTPEndpoint) PartyCreate(r *router.Request) (any, error) {
	var req PartyCreateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.PartyCreate(r.Context(), usecase.PartyCreateInput{
		Name:         req.Name,
		Abbreviation: req.Abbreviation,
	})
}

// PartySetActive toggles a party's activation flag.
func (h *HTTPEndpoint) PartySetActive(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req PartySetActiveRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.PartySetActive(r.Context(), usecase.PartySetActiveInput{
		PartyID: id,
		Active:  req.Active,
	})
}

// PartyUploadSymbol stores the party symbol image.
func (h *HTTPEndpoint) PartyUploadSymbol(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	file, err := r.StreamSingleFile("symbol")
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	return nil, h.uc.PartyUploadSymbol(r.Context(), usecase.PartyUploadSymbolInput{
		PartyID:  id,
		FileName: r.GetQuery("filename"),
		Body:     file,
	})
}

// PartyList lists parties.
func (h *HTTPEndpoint) PartyList(r *router.Request) (any, error) {
	include := r.GetQuery("include_inactive") == "true"

	resp, err := h.uc.PartyList(r.Context(), usecase.PartyListInput{IncludeInactive: include})
	if err != nil {
		return nil, err
	}

	out := make([]Party, 0, len(resp.Parties))
	for _, p := range resp.Parties {
		out = append(out, Party{
			ID:           p.ID,
			Name:         p.Name,
			Abbreviation: p.Abbreviation,
			SymbolKey:    p.SymbolKey,
			Active:       p.Active,
		})
	}

	return PartyListResponse{Parties: out}, nil
}

// CandidateCreate registers a candidate in a constituency for a party.
func (h *HTTPEndpoint) CandidateCreate(r *router.Request) (any, error) {
	var req CandidateCreateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.CandidateCreate(r.Context(), usecase.CandidateCreateInput{
		ConstituencyID: req.ConstituencyID,
		PartyID:        req.PartyID,
		FullName:       req.FullName,
	})
}

// CandidateSetActive toggles a candidate's activation flag.
func (h *HTTPEndpoint) CandidateSetActive(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req CandidateSetActiveRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.CandidateSetActive(r.Context(), usecase.CandidateSetActiveInput{
		CandidateID: id,
		Active:      req.Active,
	})
}

// CandidateUploadPhoto stores the candidate photo.
func (h *HTTPEndpoint) CandidateUploadPhoto(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	file, err := r.StreamSingleFile("photo")
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	return nil, h.uc.CandidateUploadPhoto(r.Context(), usecase.CandidateUploadPhotoInput{
		CandidateID: id,
		FileName:    r.GetQuery("filename"),
		Body:        file,
	})
}

// CandidateList lists the active candidates in a constituency.
func (h *HTTPEndpoint) CandidateList(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.CandidateList(r.Context(), usecase.CandidateListInput{ConstituencyID: id})
	if err != nil {
		return nil, err
	}

	out := make([]Candidate, 0, len(resp.Candidates))
	for _, c := range resp.Candidates {
		out = append(out, Candidate{
			ID:             c.ID,
			ConstituencyID: c.ConstituencyID,
			PartyID:        c.PartyID,
			FullName:       c.FullName,
			PhotoKey:       c.PhotoKey,
			Active:         c.Active,
		})
	}

	return CandidateListResponse{Candidates: out}, nil
}

func mapTallies(in []entity.PartyTally) []PartyTally {
	out := make([]PartyTally, 0, len(in))
	for _, t := range in {
		out = append(out, PartyTally{
			PartyID:    t.PartyID,
			PartyName:  t.PartyName,
			Votes:      t.Votes,
			Percentage: t.Percentage,
		})
	}
	return out
}
