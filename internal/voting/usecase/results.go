package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/samber/lo"

	"github.com/VENUHARGI/OnlineVoting/internal/pkg/goerror"
	"github.com/VENUHARGI/OnlineVoting/internal/voting/entity"
)

type ResultsInput struct {
	ConstituencyID int64 `validate:"required"`
}

type ResultsOutput struct {
	ConstituencyID int64
	TotalVotes     int64
	Tallies        []entity.PartyTally
}

// Results returns per-party tallies for one constituency with percentages.
func (s *Usecase) Results(ctx context.Context, in ResultsInput) (*ResultsOutput, error) {
	ctx, span := s.startSpan(ctx, "Results")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if _, err := s.repoDB.GetConstituency(ctx, in.ConstituencyID); err != nil {
		return nil, goerror.NewBusiness("constituency not found", goerror.CodeNotFound)
	}

	tallies, err := s.repoDB.TalliesByConstituency(ctx, in.ConstituencyID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo tally constituency", "constituency_id", in.ConstituencyID, "error", err)
		return nil, goerror.NewServer(err)
	}

	total := lo.SumBy(tallies, func(t entity.PartyTally) int64 { return t.Votes })
	tallies = lo.Map(tallies, func(t entity.PartyTally, _ int) entity.PartyTally {
		if total > 0 {
			t.Percentage = float64(t.Votes) * 100 / float64(total)
		}
		return t
	})

	return &ResultsOutput{
		ConstituencyID: in.ConstituencyID,
		TotalVotes:     total,
		Tallies:        tallies,
	}, nil
}

type SummariesOutput struct {
	Constituencies []entity.ConstituencySummary
}

// Summaries returns results across all constituencies.
func (s *Usecase) Summaries(ctx context.Context) (*SummariesOutput, error) {
	ctx, span := s.startSpan(ctx, "Summaries")
	defer span.End()

	summaries, err := s.repoDB.ListConstituencySummaries(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo summarize constituencies", "error", err)
		return nil, goerror.NewServer(err)
	}

	summaries = lo.Map(summaries, func(c entity.ConstituencySummary, _ int) entity.ConstituencySummary {
		c.Tallies = lo.Map(c.Tallies, func(t entity.PartyTally, _ int) entity.PartyTally {
			if c.TotalVotes > 0 {
				t.Percentage = float64(t.Votes) * 100 / float64(c.TotalVotes)
			}
			return t
		})
		return c
	})

	return &SummariesOutput{Constituencies: summaries}, nil
}

type HourlyDistributionInput struct {
	SinceHours int32
}

type HourlyDistributionOutput struct {
	Buckets []entity.HourlyBucket
}

// HourlyDistribution returns ballots per hour for the trailing window
// (default 24 hours).
func (s *Usecase) HourlyDistribution(ctx context.Context, in HourlyDistributionInput) (*HourlyDistributionOutput, error) {
	ctx, span := s.startSpan(ctx, "HourlyDistribution")
	defer span.End()

	hours := in.SinceHours
	if hours <= 0 || hours > 24*7 {
		hours = 24
	}
	since := s.clock.Now().Add(-time.Duration(hours) * time.Hour)

	buckets, err := s.repoDB.HourlyDistribution(ctx, since)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo bucket ballots hourly", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &HourlyDistributionOutput{Buckets: buckets}, nil
}

// Turnout summarizes participation for the admin dashboard.
func (s *Usecase) Turnout(ctx context.Context) (*entity.TurnoutStats, error) {
	ctx, span := s.startSpan(ctx, "Turnout")
	defer span.End()

	stats, err := s.repoDB.Turnout(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo aggregate turnout", "error", err)
		return nil, goerror.NewServer(err)
	}

	if stats.EligibleVoters > 0 {
		stats.TurnoutPercent = float64(stats.BallotsCast) * 100 / float64(stats.EligibleVoters)
	}

	return stats, nil
}

type SuspiciousPatternsOutput struct {
	Patterns []entity.SuspiciousPattern
}

// SuspiciousPatterns lists origin IPs whose ballot count exceeds the
// configured threshold.
func (s *Usecase) SuspiciousPatterns(ctx context.Context) (*SuspiciousPatternsOutput, error) {
	ctx, span := s.startSpan(ctx, "SuspiciousPatterns")
	defer span.End()

	patterns, err := s.repoDB.SuspiciousIPs(ctx, s.suspiciousThreshold())
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo query suspicious patterns", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &SuspiciousPatternsOutput{Patterns: patterns}, nil
}

type FlagBallotInput struct {
	BallotID int64 `validate:"required"`
}

// FlagBallot marks a ballot for review. Flagged ballots stay counted until
// cancelled.
func (s *Usecase) FlagBallot(ctx context.Context, in FlagBallotInput) error {
	ctx, span := s.startSpan(ctx, "FlagBallot")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if err := s.repoDB.FlagBallot(ctx, in.BallotID); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("ballot not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to repo flag ballot", "ballot_id", in.BallotID, "error", err)
		return goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "ballot flagged for review", "ballot_id", in.BallotID)
	return nil
}
