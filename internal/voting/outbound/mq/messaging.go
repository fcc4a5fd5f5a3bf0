package mq

import (
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel/codes"

	"github.com/VENUHARGI/OnlineVoting/internal/pkg/instrument"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/messaging"
	"github.com/VENUHARGI/OnlineVoting/internal/shared/event"
	"github.com/VENUHARGI/OnlineVoting/internal/voting/usecase"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishVoteReceipt(ctx context.Context, msg usecase.VoteReceiptEvent) error {
	ctx, span := m.ins.Tracer("voting.outbound.mq").Start(ctx, "PublishVoteReceipt")
	defer span.End()

	body, err := json.Marshal(event.VoteReceiptMessage{
		Email:            msg.Email,
		TransactionRef:   msg.TransactionRef,
		ConstituencyName: msg.ConstituencyName,
		CastAt:           msg.CastAt.Unix(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.VoteReceiptDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
