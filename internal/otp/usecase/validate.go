package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"strings"

	"github.com/VENUHARGI/OnlineVoting/internal/otp/entity"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/goerror"
)

type ValidateInput struct {
	Email   string `validate:"required,email"`
	Code    string `validate:"required,otpcode"`
	Purpose entity.Purpose
}

type ValidateOutput struct {
	Outcome entity.Outcome
	// AttemptsLeft is the remaining attempt budget after this attempt. It is
	// only meaningful for OutcomeInvalidCode.
	AttemptsLeft int32
}

// Validate checks a submitted code against the active verification for the
// (email, purpose) pair and consumes it on success. Every attempt, successful
// or not, is recorded; once the attempt budget is spent the code is retired
// even if the right code arrives later.
func (s *Usecase) Validate(ctx context.Context, in ValidateInput) (*ValidateOutput, error) {
	ctx, span := s.startSpan(ctx, "Validate")
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
		return s.classifyMissing(ctx, email, in.Code, in.Purpose)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get active verification", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if active.Exhausted() {
		if err := s.repoDB.MarkUsed(ctx, active.ID, now); err != nil {
			slog.ErrorContext(ctx, "failed to repo retire exhausted verification", "email", email, "error", err)
			return nil, goerror.NewServer(err)
		}
		slog.WarnContext(ctx, "verification attempt budget already spent", "email", email, "purpose", in.Purpose.String())
		return &ValidateOutput{Outcome: entity.OutcomeMaxAttemptsExceeded}, nil
	}

	if subtle.ConstantTimeCompare([]byte(active.Code), []byte(in.Code)) != 1 {
		attempts := active.Attempts + 1
		exhausted := attempts >= active.MaxAttempts
		if err := s.repoDB.RecordAttempt(ctx, active.ID, exhausted, now); err != nil {
			slog.ErrorContext(ctx, "failed to repo record verification attempt", "email", email, "error", err)
			return nil, goerror.NewServer(err)
		}

		slog.WarnContext(ctx, "verification code mismatch", "email", email, "purpose", in.Purpose.String(), "attempts", attempts)
		if exhausted {
			return &ValidateOutput{Outcome: entity.OutcomeMaxAttemptsExceeded}, nil
		}
		return &ValidateOutput{
			Outcome:      entity.OutcomeInvalidCode,
			AttemptsLeft: active.MaxAttempts - attempts,
		}, nil
	}

	if err := s.repoDB.MarkUsed(ctx, active.ID, now); err != nil {
		slog.ErrorContext(ctx, "failed to repo consume verification", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "verification code accepted", "email", email, "purpose", in.Purpose.String())

	return &ValidateOutput{Outcome: entity.OutcomeValid}, nil
}

// classifyMissing distinguishes why no active code exists. Only the latest
// record holding the submitted code can explain the failure as EXPIRED or
// ALREADY_USED; any other code was simply never issued. Expiry wins over
// consumption so a code retired after its deadline still reports EXPIRED.
func (s *Usecase) classifyMissing(ctx context.Context, email, code string, purpose entity.Purpose) (*ValidateOutput, error) {
	latest, err := s.repoDB.GetLatest(ctx, email, purpose)
	if errors.Is(err, goerror.ErrNotFound) {
		return &ValidateOutput{Outcome: entity.OutcomeNotFound}, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get latest verification", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if subtle.ConstantTimeCompare([]byte(latest.Code), []byte(code)) != 1 {
		return &ValidateOutput{Outcome: entity.OutcomeNotFound}, nil
	}
	if latest.Expired(s.clock.Now()) {
		return &ValidateOutput{Outcome: entity.OutcomeExpired}, nil
	}
	if latest.Used {
		return &ValidateOutput{Outcome: entity.OutcomeAlreadyUsed}, nil
	}

	return &ValidateOutput{Outcome: entity.OutcomeNotFound}, nil
}
