// Package otp wires the verification code engine: storage, counters,
// messaging, HTTP endpoints and the background sweeper.
package otp

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/VENUHARGI/OnlineVoting/internal/otp/inbound"
	"github.com/VENUHARGI/OnlineVoting/internal/otp/outbound/cache"
	"github.com/VENUHARGI/OnlineVoting/internal/otp/outbound/db"
	"github.com/VENUHARGI/OnlineVoting/internal/otp/outbound/mq"
	"github.com/VENUHARGI/OnlineVoting/internal/otp/usecase"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/clock"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/config"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/goroutine"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/instrument"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/messaging"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/otpcode"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/router"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/uid"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/validator"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	CacheConn  *redis.Client              `validate:"required"`
	Goroutine  *goroutine.Manager         `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	Codegen    otpcode.Generator          `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`

	// SweeperContext bounds the background sweeper; canceling it stops the
	// loop during shutdown.
	SweeperContext context.Context `validate:"required"`
}

// New wires the module and returns the engine so other modules can issue and
// validate codes in process.
func New(dep Dependency) (*usecase.Usecase, error) {
	if err := dep.Validator.Validate(dep); err != nil {
		return nil, err
	}

	repoDB := db.NewDB(dep.DBConn, dep.Instrument)
	repoCache := cache.NewCache(dep.CacheConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        repoDB,
		RepoCache:     repoCache,
		RepoMessaging: repoMsg,
		Validator:     dep.Validator,
		Config:        dep.Config,
		Codegen:       dep.Codegen,
		UID:           dep.UID,
		Clock:         dep.Clock,
		Instrument:    dep.Instrument,
		Goroutine:     dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	dep.Goroutine.Go(dep.SweeperContext, uc.RunSweeper)

	return uc, nil
}
