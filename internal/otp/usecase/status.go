package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/VENUHARGI/OnlineVoting/internal/otp/entity"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/goerror"
)

type CanRequestInput struct {
	Email   string `validate:"required,email"`
	Purpose entity.Purpose
}

type CanRequestOutput struct {
	Allowed bool
	// Reason explains a denial; empty when Allowed.
	Reason string
	// RetryAfter is how long to wait before the next request is accepted.
	// Zero when Allowed or when the daily cap makes a retry time meaningless.
	RetryAfter time.Duration
}

// CanRequest reports whether a new code would be issued for the pair right
// now, without issuing one. It mirrors the checks Issue performs.
func (s *Usecase) CanRequest(ctx context.Context, in CanRequestInput) (*CanRequestOutput, error) {
	ctx, span := s.startSpan(ctx, "CanRequest")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}
	if in.Purpose.IsUnknown() {
		return nil, goerror.NewInvalidFormat("unknown verification purpose")
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	now := s.clock.Now()

	active, err := s.repoDB.GetActive(ctx, email, in.Purpose, now)
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get active verification", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}
	if active != nil {
		if wait := active.CreatedAt.Add(s.resendCooldown()).Sub(now); wait > 0 {
			return &CanRequestOutput{
				Reason:     "resend cooldown active",
				RetryAfter: wait,
			}, nil
		}
	}

	hourly, err := s.repoCache.PeekIssued(ctx, email, windowHour)
	if err != nil {
		slog.WarnContext(ctx, "verification hourly counter unavailable", "email", email, "error", err)
		return &CanRequestOutput{Allowed: true}, nil
	}
	if hourly >= s.maxPerHour() {
		return &CanRequestOutput{
			Reason:     "hourly limit reached",
			RetryAfter: time.Hour,
		}, nil
	}

	daily, err := s.repoCache.PeekIssued(ctx, email, windowDay)
	if err != nil {
		slog.WarnContext(ctx, "verification daily counter unavailable", "email", email, "error", err)
		return &CanRequestOutput{Allowed: true}, nil
	}
	if daily >= s.maxPerDay() {
		return &CanRequestOutput{Reason: "daily limit reached"}, nil
	}

	return &CanRequestOutput{Allowed: true}, nil
}

type RemainingTimeInput struct {
	Email   string `validate:"required,email"`
	Purpose entity.Purpose
}

type RemainingTimeOutput struct {
	Active    bool
	Remaining time.Duration
	ExpiresAt time.Time
}

// RemainingTime reports how long the currently active code for the pair stays
// valid. Active is false when no usable code exists.
func (s *Usecase) RemainingTime(ctx context.Context, in RemainingTimeInput) (*RemainingTimeOutput, error) {
	ctx, span := s.startSpan(ctx, "RemainingTime")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}
	if in.Purpose.IsUnknown() {
		return nil, goerror.NewInvalidFormat("unknown verification purpose")
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	now := s.clock.Now()

	active, err := s.repoDB.GetActive(ctx, email, in.Purpose, now)
	if errors.Is(err, goerror.ErrNotFound) {
		return &RemainingTimeOutput{}, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get active verification", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &RemainingTimeOutput{
		Active:    true,
		Remaining: active.ExpiresAt.Sub(now),
		ExpiresAt: active.ExpiresAt,
	}, nil
}

// Stats aggregates verification volume for the admin dashboard.
func (s *Usecase) Stats(ctx context.Context) (*entity.IssueStats, error) {
	ctx, span := s.startSpan(ctx, "Stats")
	defer span.End()

	stats, err := s.repoDB.Stats(ctx, s.clock.Now())
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo aggregate verification stats", "error", err)
		return nil, goerror.NewServer(err)
	}

	return stats, nil
}
