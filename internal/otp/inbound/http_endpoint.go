package inbound

import (
	"context"

	"github.com/VENUHARGI/OnlineVoting/internal/otp/entity"
	"github.com/VENUHARGI/OnlineVoting/internal/otp/usecase"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/router"
)

type uc interface {
	Issue(ctx context.Context, in usecase.IssueInput) (*usecase.IssueOutput, error)
	Validate(ctx context.Context, in usecase.ValidateInput) (*usecase.ValidateOutput, error)
	CanRequest(ctx context.Context, in usecase.CanRequestInput) (*usecase.CanRequestOutput, error)
	RemainingTime(ctx context.Context, in usecase.RemainingTimeInput) (*usecase.RemainingTimeOutput, error)
	Stats(ctx context.Context) (*entity.IssueStats, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Verification codes
	r.POST("/api/v1/verifications", end.Issue)
	r.POST("/api/v1/verifications/validate", end.Validate)
	r.GET("/api/v1/verifications/can-request", end.CanRequest)
	r.GET("/api/v1/verifications/remaining-time", end.RemainingTime)

	// Admin (need authenticated & authorization)
	r.GET("/api/v1/admin/verifications/stats", end.Stats)
}
