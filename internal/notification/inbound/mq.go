package inbound

import (
	"context"
	"log/slog"
	"slices"

	"github.com/VENUHARGI/OnlineVoting/internal/pkg/config"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/goroutine"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/instrument"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/messaging"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/uid"
	"github.com/VENUHARGI/OnlineVoting/internal/shared/event"
)

func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	messenger messaging.Messaging,
	uuid uid.StringID,
	uc uc,
	ins instrument.Instrumentation,
) {
	mqHandler := &MQHandler{uc: uc, uuid: uuid, ins: ins}

	enableConsumerNames := cfg.GetArray("modules.notification.consumer_names")

	var consumers = []struct {
		name    string
		topic   string // destination where publisher sent message
		handler messaging.Handler
	}{
		{
			name:    event.CodeIssuedConsumerNotification,
			topic:   event.CodeIssuedDestination,
			handler: mqHandler.CodeIssuedNotification,
		},
		{
			name:    event.VoteReceiptConsumerNotification,
			topic:   event.VoteReceiptDestination,
			handler: mqHandler.VoteReceiptNotification,
		},
	}

	for _, consumer := range consumers {
		if len(enableConsumerNames) > 0 && slices.Contains(enableConsumerNames, consumer.name) {
			routine.Go(ctx, func(pCtx context.Context) error {
				slog.InfoContext(ctx, "Running job for handling consumer", "consumer", consumer.name)
				return messenger.Consume(pCtx,
					consumer.topic,
					consumer.handler,
					messaging.WithChannel(consumer.name),
					messaging.WithQueueGroup(consumer.name),
					messaging.WithGroup(consumer.name),
					messaging.WithAutoAck(true),
					messaging.WithConcurrency(10),
					messaging.WithMaxInFlight(10),
				)
			})
		}
	}
}
