// Package voting wires the vote casting guard, results queries and the
// election catalog.
package voting

import (
	"github.com/jackc/pgx/v5/pgxpool"

	otpusecase "github.com/VENUHARGI/OnlineVoting/internal/otp/usecase"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/clock"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/config"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/goroutine"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/hash"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/idempotency"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/instrument"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/messaging"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/router"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/storage"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/uid"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/validator"
	"github.com/VENUHARGI/OnlineVoting/internal/voting/inbound"
	"github.com/VENUHARGI/OnlineVoting/internal/voting/outbound/db"
	"github.com/VENUHARGI/OnlineVoting/internal/voting/outbound/mq"
	"github.com/VENUHARGI/OnlineVoting/internal/voting/usecase"
)

type Dependency struct {
	DBConn      *pgxpool.Pool              `validate:"required"`
	Messaging   messaging.Messaging        `validate:"required"`
	CodeEngine  *otpusecase.Usecase        `validate:"required"`
	Idempotency idempotency.Idempotency    `validate:"required"`
	Storage     storage.Storage            `validate:"required"`
	Signer      hash.Hash                  `validate:"required"`
	Goroutine   *goroutine.Manager         `validate:"required"`
	Router      *router.Router             `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	UID         uid.NumberID               `validate:"required"`
	UUID        uid.StringID               `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	repoDB := db.NewDB(dep.DBConn, dep.Instrument)
	repoMQ := mq.NewMessaging(dep.Messaging, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        repoDB,
		RepoMessaging: repoMQ,
		CodeEngine:    dep.CodeEngine,
		Idempotency:   dep.Idempotency,
		Storage:       dep.Storage,
		Signer:        dep.Signer,
		Validator:     dep.Validator,
		Config:        dep.Config,
		UID:           dep.UID,
		UUID:          dep.UUID,
		Clock:         dep.Clock,
		Instrument:    dep.Instrument,
		Goroutine:     dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
