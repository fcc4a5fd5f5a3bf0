package inbound

import (
	"context"

	"github.com/VENUHARGI/OnlineVoting/internal/pkg/router"
	"github.com/VENUHARGI/OnlineVoting/internal/voting/entity"
	"github.com/VENUHARGI/OnlineVoting/internal/voting/usecase"
)

type uc interface {
	CastVote(ctx context.Context, in usecase.CastVoteInput) (*usecase.CastVoteOutput, error)
	CheckEligibility(ctx context.Context) (*usecase.EligibilityOutput, error)
	History(ctx context.Context) (*usecase.HistoryOutput, error)

	Results(ctx context.Context, in usecase.ResultsInput) (*usecase.ResultsOutput, error)
	Summaries(ctx context.Context) (*usecase.SummariesOutput, error)
	HourlyDistribution(ctx context.Context, in usecase.HourlyDistributionInput) (*usecase.HourlyDistributionOutput, error)
	Turnout(ctx context.Context) (*entity.TurnoutStats, error)
	SuspiciousPatterns(ctx context.Context) (*usecase.SuspiciousPatternsOutput, error)
	FlagBallot(ctx context.Context, in usecase.FlagBallotInput) error

	ConstituencyCreate(ctx context.Context, in usecase.ConstituencyCreateInput) error
	ConstituencySetActive(ctx context.Context, in usecase.ConstituencySetActiveInput) error
	ConstituencyList(ctx context.Context, in usecase.ConstituencyListInput) (*usecase.ConstituencyListOutput, error)
	PartyCreate(ctx context.Context, in usecase.PartyCreateInput) error
	PartySetActive(ctx context.Context, in usecase.PartySetActiveInput) error
	PartyUploadSymbol(ctx context.Context, in usecase.PartyUploadSymbolInput) error
	PartyList(ctx context.Context, in usecase.PartyListInput) (*usecase.PartyListOutput, error)
	CandidateCreate(ctx context.Context, in usecase.CandidateCreateInput) error
	CandidateSetActive(ctx context.Context, in usecase.CandidateSetActiveInput) error
	CandidateUploadPhoto(ctx context.Context, in usecase.CandidateUploadPhotoInput) error
	CandidateList(ctx context.Context, in usecase.CandidateListInput) (*usecase.CandidateListOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Voting (need authenticated)
	r.POST("/api/v1/votes", end.CastVote)
	r.GET("/api/v1/votes/eligibility", end.CheckEligibility)
	r.GET("/api/v1/votes/history", end.History)

	// Public catalog & results
	r.GET("/api/v1/constituencies", end.ConstituencyList)
	r.GET("/api/v1/constituencies/:id/candidates", end.CandidateList)
	r.GET("/api/v1/parties", end.PartyList)
	r.GET("/api/v1/results/constituencies/:id", end.Results)
	r.GET("/api/v1/results/summaries", end.Summaries)

	// Admin (need authenticated & authorization)
	r.GET("/api/v1/admin/results/hourly", end.HourlyDistribution)
	r.GET("/api/v1/admin/results/turnout", end.Turnout)
	r.GET("/api/v1/admin/results/suspicious", end.SuspiciousPatterns)
	r.POST("/api/v1/admin/ballots/:id/flag", end.FlagBallot)
	r.POST("/api/v1/admin/constituencies", end.ConstituencyCreate)
	r.PATCH("/api/v1/admin/constituencies/:id/active", end.ConstituencySetActive)
	r.POST("/api/v1/admin/parties", end.PartyCreate)
	r.PATCH("/api/v1/admin/parties/:id/active", end.PartySetActive)
	r.PUT("/api/v1/admin/parties/:id/symbol", end.PartyUploadSymbol)
	r.POST("/api/v1/admin/candidates", end.CandidateCreate)
	r.PATCH("/api/v1/admin/candidates/:id/active", end.CandidateSetActive)
	r.PUT("/api/v1/admin/candidates/:id/photo", end.CandidateUploadPhoto)
}
