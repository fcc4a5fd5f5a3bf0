package inbound

import (
	"github.com/VENUHARGI/OnlineVoting/internal/otp/entity"
	"github.com/VENUHARGI/OnlineVoting/internal/otp/usecase"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for the verification code engine.
type HTTPEndpoint struct {
	uc uc
}

// Issue requests a new verification code for an email and purpose.
// @Summary Issue verification code
// @Description Generates a one-time code, invalidates any previous active code for the pair and emails the new one.
// @Tags Verification
// @Accept json
// @Produce json
// @Param request body IssueRequest true "Issue payload"
// @Success 200 {object} router.successResponse{data=IssueResponse} "Issued"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 429 {object} router.errorResponse "Cooldown or rate cap"
// @Router /api/v1/verifications [post]
func (h *HTTPEndpoint) Issue(r *router.Request) (any, error) {
	var req IssueRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Issue(r.Context(), usecase.IssueInput{
		Email:   req.Email,
		Purpose: entity.ParsePurpose(req.Purpose),
	})
	if err != nil {
		return nil, err
	}

	return IssueResponse{
		ExpiresAt:         resp.ExpiresAt.Unix(),
		ResendAvailableAt: resp.ResendAvailableAt.Unix(),
		Code:              resp.Code,
	}, nil
}

// Validate checks a submitted code.
// @Summary Validate verification code
// @Description Checks the code against the active verification and consumes it on success.
// @Tags Verification
// @Accept json
// @Produce json
// @Param request body ValidateRequest true "Validate payload"
// @Success 200 {object} router.successResponse{data=ValidateResponse} "Validation outcome"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/verifications/validate [post]
func (h *HTTPEndpoint) Validate(r *router.Request) (any, error) {
	var req ValidateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Validate(r.Context(), usecase.ValidateInput{
		Email:   req.Email,
		Code:    req.Code,
		Purpose: entity.ParsePurpose(req.Purpose),
	})
	if err != nil {
		return nil, err
	}

	return ValidateResponse{
		Outcome:      resp.Outcome.String(),
		Valid:        resp.Outcome.OK(),
		AttemptsLeft: resp.AttemptsLeft,
	}, nil
}

// CanRequest reports whether a new code would be issued right now.
func (h *HTTPEndpoint) CanRequest(r *router.Request) (any, error) {
	resp, err := h.uc.CanRequest(r.Context(), usecase.CanRequestInput{
		Email:   r.GetQuery("email"),
		Purpose: entity.ParsePurpose(r.GetQuery("purpose")),
	})
	if err != nil {
		return nil, err
	}

	return CanRequestResponse{
		Allowed:           resp.Allowed,
		Reason:            resp.Reason,
		RetryAfterSeconds: int64(resp.RetryAfter.Seconds()),
	}, nil
}

// RemainingTime reports how long the active code stays valid.
func (h *HTTPEndpoint) RemainingTime(r *router.Request) (any, error) {
	resp, err := h.uc.RemainingTime(r.Context(), usecase.RemainingTimeInput{
		Email:   r.GetQuery("email"),
		Purpose: entity.ParsePurpose(r.GetQuery("purpose")),
	})
	if err != nil {
		return nil, err
	}

	out := RemainingTimeResponse{
		Active:           resp.Active,
		RemainingSeconds: int64(resp.Remaining.Seconds()),
	}
	if resp.Active {
		out.ExpiresAt = resp.ExpiresAt.Unix()
	}
	return out, nil
}

// Stats returns verification volume for the admin dashboard.
// @Summary Verification statistics
// @Tags Verification, Admin
// @Produce json
// @Success 200 {object} router.successResponse{data=StatsResponse} "Aggregates"
// @Router /api/v1/admin/verifications/stats [get]
func (h *HTTPEndpoint) Stats(r *router.Request) (any, error) {
	resp, err := h.uc.Stats(r.Context())
	if err != nil {
		return nil, err
	}

	return StatsResponse{
		TotalIssued:  resp.TotalIssued,
		TotalActive:  resp.TotalActive,
		TotalUsed:    resp.TotalUsed,
		TotalExpired: resp.TotalExpired,
		IssuedToday:  resp.IssuedToday,
	}, nil
}
