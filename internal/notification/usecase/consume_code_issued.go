package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	otpentity "github.com/VENUHARGI/OnlineVoting/internal/otp/entity"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/mail"
)

type ConsumeCodeIssuedInput struct {
	Email     string `validate:"required,email"`
	Code      string `validate:"required,otpcode"`
	Purpose   string `validate:"required"`
	ExpiresAt time.Time
}

const codeIssuedHTMLTemplate = `<p>Hello,</p>
<p>Your {{.flow}} code is:</p>
<p style="font-size:24px;letter-spacing:4px;"><strong>{{.code}}</strong></p>
<p>It expires in {{.minutes}} minutes. If you did not request it, ignore this email.</p>
<p>{{.platform_name}} &middot; {{.year}} &middot; {{.support_email}}</p>`

// ConsumeCodeIssued emails a freshly issued verification code to the voter.
// Malformed payloads are logged and dropped rather than requeued; they will
// never become valid.
func (s *Usecase) ConsumeCodeIssued(ctx context.Context, in ConsumeCodeIssuedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeCodeIssued")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "dropping malformed code issued event", "error", err)
		return nil
	}

	purpose := otpentity.ParsePurpose(in.Purpose)

	if !in.ExpiresAt.After(s.clock.Now()) {
		slog.WarnContext(ctx, "code already expired before delivery", "purpose", in.Purpose)
		return nil
	}
	minutes := int(in.ExpiresAt.Sub(s.clock.Now()).Minutes())
	if minutes < 1 {
		minutes = 1
	}

	data := s.baseEmailTemplateData()
	data["flow"] = purposeFlowName(purpose)
	data["code"] = in.Code
	data["minutes"] = minutes

	htmlBody, err := s.renderTemplate("code_issued", codeIssuedHTMLTemplate, data)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render code issued template", "error", err)
		return nil
	}

	msg := mail.Message{
		To:       []string{in.Email},
		Subject:  purposeSubject(purpose),
		TextBody: fmt.Sprintf("Your %s code is %s. It expires in %d minutes.", data["flow"], in.Code, minutes),
		HTMLBody: htmlBody,
	}

	if err := s.sendWithRetry(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "failed to send verification code email", "purpose", in.Purpose, "error", err)
		return err
	}

	slog.InfoContext(ctx, "verification code email sent", "purpose", in.Purpose)
	return nil
}

func purposeSubject(p otpentity.Purpose) string {
	switch p {
	case otpentity.PurposeRegistration:
		return "Confirm your registration"
	case otpentity.PurposeLogin:
		return "Your login code"
	case otpentity.PurposePasswordReset:
		return "Reset your password"
	case otpentity.PurposeVoteCasting:
		return "Your voting code"
	default:
		return "Your verification code"
	}
}

func purposeFlowName(p otpentity.Purpose) string {
	switch p {
	case otpentity.PurposeRegistration:
		return "registration"
	case otpentity.PurposeLogin:
		return "login"
	case otpentity.PurposePasswordReset:
		return "password reset"
	case otpentity.PurposeVoteCasting:
		return "vote casting"
	default:
		return "verification"
	}
}
