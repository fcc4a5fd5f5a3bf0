package inbound

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/VENUHARGI/OnlineVoting/internal/notification/usecase"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/instrument"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/messaging"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/uid"
	"github.com/VENUHARGI/OnlineVoting/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type uc interface {
	ConsumeCodeIssued(ctx context.Context, in usecase.ConsumeCodeIssuedInput) error
	ConsumeVoteReceipt(ctx context.Context, in usecase.ConsumeVoteReceiptInput) error
}

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	for i := range headers {
		if headers[i].Key == keyOfCorrelationID {
			return instrument.SetCorrelationID(ctx, string(headers[i].Value))
		}
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) CodeIssuedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "CodeIssuedNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: verification code issued")

	var payload event.CodeIssuedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of code issued", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeCodeIssued(ctx, usecase.ConsumeCodeIssuedInput{
		Email:     payload.Email,
		Code:      payload.Code,
		Purpose:   payload.Purpose,
		ExpiresAt: time.Unix(payload.ExpiresAt, 0),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume code issued", "error", err)
		return err
	}

	return nil
}

func (h *MQHandler) VoteReceiptNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "VoteReceiptNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: vote receipt issued")

	var payload event.VoteReceiptMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of vote receipt", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeVoteReceipt(ctx, usecase.ConsumeVoteReceiptInput{
		Email:            payload.Email,
		TransactionRef:   payload.TransactionRef,
		ConstituencyName: payload.ConstituencyName,
		CastAt:           time.Unix(payload.CastAt, 0),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume vote receipt", "transaction_ref", payload.TransactionRef, "error", err)
		return err
	}

	return nil
}
