// Package notification consumes platform events and delivers the matching
// emails: verification codes and vote receipts.
package notification

import (
	"context"

	"github.com/VENUHARGI/OnlineVoting/internal/notification/inbound"
	"github.com/VENUHARGI/OnlineVoting/internal/notification/outbound/email"
	"github.com/VENUHARGI/OnlineVoting/internal/notification/usecase"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/clock"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/config"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/goroutine"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/instrument"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/mail"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/messaging"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/uid"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/validator"
)

type Dependency struct {
	// ConsumerContext outlives requests; consumers stop when it is cancelled.
	ConsumerContext context.Context `validate:"required"`

	Mail       mail.Mail                  `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	Goroutine  *goroutine.Manager         `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	repoMail := email.New(dep.Mail, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoMail:   repoMail,
		Config:     dep.Config,
		Clock:      dep.Clock,
		Validator:  dep.Validator,
		Instrument: dep.Instrument,
	})

	inbound.RegisterMQConsumer(
		dep.ConsumerContext,
		dep.Config,
		dep.Goroutine,
		dep.Messaging,
		dep.UUID,
		uc,
		dep.Instrument,
	)

	return nil
}
