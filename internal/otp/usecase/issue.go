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

const (
	windowHour = "hour"
	windowDay  = "day"
)

type IssueInput struct {
	Email   string `validate:"required,email"`
	Purpose entity.Purpose
}

type IssueOutput struct {
	ExpiresAt         time.Time
	ResendAvailableAt time.Time

	// Code is populated only when modules.otp.echo_code is enabled, which is
	// meant for local development without a mail sink.
	Code string
}

// Issue generates a new verification code for the (email, purpose) pair.
// Any previously active code for the pair stops being usable the moment the
// new one is stored.
func (s *Usecase) Issue(ctx context.Context, in IssueInput) (*IssueOutput, error) {
	ctx, span := s.startSpan(ctx, "Issue")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}
	if in.Purpose.IsUnknown() {
		return nil, goerror.NewInvalidFormat("unknown verification purpose")
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	now := s.clock.Now()

	if err := s.ensureCooldownPassed(ctx, email, in.Purpose, now); err != nil {
		return nil, err
	}
	if err := s.ensureRateCaps(ctx, email); err != nil {
		return nil, err
	}

	code := s.codegen.Generate()

	v := entity.Verification{
		ID:          s.uid.Generate(),
		Email:       email,
		Code:        code,
		Purpose:     in.Purpose,
		MaxAttempts: s.maxAttempts(),
		ExpiresAt:   now.Add(s.ttl()),
		CreatedAt:   now,
	}

	if err := s.repoDB.CreateInvalidatingPrevious(ctx, v); err != nil {
		slog.ErrorContext(ctx, "failed to repo create verification", "email", email, "purpose", in.Purpose.String(), "error", err)
		return nil, goerror.NewServer(err)
	}

	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := s.repoMessaging.PublishCodeIssued(ctx, CodeIssuedEvent{
			Email:     email,
			Code:      code,
			Purpose:   in.Purpose,
			ExpiresAt: v.ExpiresAt,
		}); err != nil {
			slog.ErrorContext(ctx, "failed to publish code issued event", "email", email, "purpose", in.Purpose.String(), "error", err)
			return err
		}
		return nil
	})

	out := &IssueOutput{
		ExpiresAt:         v.ExpiresAt,
		ResendAvailableAt: now.Add(s.resendCooldown()),
	}
	if s.cfg.GetBool("modules.otp.echo_code") {
		out.Code = code
	}

	return out, nil
}

// ensureCooldownPassed blocks a resend only while a still-valid code is
// younger than the cooldown. Once the code is consumed or expires a fresh
// issue goes through immediately.
func (s *Usecase) ensureCooldownPassed(ctx context.Context, email string, purpose entity.Purpose, now time.Time) error {
	active, err := s.repoDB.GetActive(ctx, email, purpose, now)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get active verification", "email", email, "error", err)
		return goerror.NewServer(err)
	}

	if wait := active.CreatedAt.Add(s.resendCooldown()).Sub(now); wait > 0 {
		slog.WarnContext(ctx, "verification resend requested during cooldown", "email", email, "purpose", purpose.String(), "wait", wait.String())
		return goerror.NewBusiness("please wait before requesting a new code", goerror.CodeTooManyRequest)
	}

	return nil
}

// ensureRateCaps enforces the hourly and daily issue caps per email. Counter
// failures do not block issuance; losing a request is worse than briefly
// exceeding a cap.
func (s *Usecase) ensureRateCaps(ctx context.Context, email string) error {
	hourly, err := s.repoCache.CountIssued(ctx, email, windowHour, time.Hour)
	if err != nil {
		slog.WarnContext(ctx, "verification hourly counter unavailable", "email", email, "error", err)
		return nil
	}
	if hourly > s.maxPerHour() {
		slog.WarnContext(ctx, "verification hourly cap reached", "email", email, "count", hourly)
		return goerror.NewBusiness("too many verification codes requested, try again later", goerror.CodeTooManyRequest)
	}

	daily, err := s.repoCache.CountIssued(ctx, email, windowDay, 24*time.Hour)
	if err != nil {
		slog.WarnContext(ctx, "verification daily counter unavailable", "email", email, "error", err)
		return nil
	}
	if daily > s.maxPerDay() {
		slog.WarnContext(ctx, "verification daily cap reached", "email", email, "count", daily)
		return goerror.NewBusiness("daily verification code limit reached", goerror.CodeTooManyRequest)
	}

	return nil
}
