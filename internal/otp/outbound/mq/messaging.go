package mq

import (
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel/codes"

	"github.com/VENUHARGI/OnlineVoting/internal/otp/usecase"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/instrument"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/messaging"
	"github.com/VENUHARGI/OnlineVoting/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishCodeIssued(ctx context.Context, msg usecase.CodeIssuedEvent) error {
	ctx, span := m.ins.Tracer("otp.outbound.mq").Start(ctx, "PublishCodeIssued")
	defer span.End()

	body, err := json.Marshal(event.CodeIssuedMessage{
		Email:     msg.Email,
		Code:      msg.Code,
		Purpose:   msg.Purpose.String(),
		ExpiresAt: msg.ExpiresAt.Unix(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.CodeIssuedDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
