package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/VENUHARGI/OnlineVoting/internal/pkg/mail"
)

type ConsumeVoteReceiptInput struct {
	Email            string `validate:"required,email"`
	TransactionRef   string `validate:"required"`
	ConstituencyName string
	CastAt           time.Time
}

const voteReceiptHTMLTemplate = `<p>Hello,</p>
<p>Your ballot was recorded{{if .constituency}} in <strong>{{.constituency}}</strong>{{end}} on {{.cast_at}}.</p>
<p>Receipt reference: <strong>{{.transaction_ref}}</strong></p>
<p>This receipt confirms participation only. It does not reveal your choice.</p>
<p>{{.platform_name}} &middot; {{.year}} &middot; {{.support_email}}</p>`

// ConsumeVoteReceipt emails a participation receipt after a ballot commits.
func (s *Usecase) ConsumeVoteReceipt(ctx context.Context, in ConsumeVoteReceiptInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeVoteReceipt")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "dropping malformed vote receipt event", "error", err)
		return nil
	}

	data := s.baseEmailTemplateData()
	data["constituency"] = in.ConstituencyName
	data["transaction_ref"] = in.TransactionRef
	data["cast_at"] = in.CastAt.UTC().Format(time.RFC1123)

	htmlBody, err := s.renderTemplate("vote_receipt", voteReceiptHTMLTemplate, data)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render vote receipt template", "error", err)
		return nil
	}

	msg := mail.Message{
		To:       []string{in.Email},
		Subject:  "Your vote receipt",
		TextBody: fmt.Sprintf("Your ballot was recorded. Receipt reference: %s.", in.TransactionRef),
		HTMLBody: htmlBody,
	}

	if err := s.sendWithRetry(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "failed to send vote receipt email", "transaction_ref", in.TransactionRef, "error", err)
		return err
	}

	slog.InfoContext(ctx, "vote receipt email sent", "transaction_ref", in.TransactionRef)
	return nil
}
