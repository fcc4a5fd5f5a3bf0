// Package identity wires account workflows: registration, two-step login with
// lockout, password management, profile and admin user management.
package identity

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/VENUHARGI/OnlineVoting/internal/identity/inbound"
	"github.com/VENUHARGI/OnlineVoting/internal/identity/outbound/db"
	"github.com/VENUHARGI/OnlineVoting/internal/identity/usecase"
	otpusecase "github.com/VENUHARGI/OnlineVoting/internal/otp/usecase"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/clock"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/config"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/goroutine"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/hash"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/instrument"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/jwt"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/router"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/uid"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/validator"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	CodeEngine *otpusecase.Usecase        `validate:"required"`
	Goroutine  *goroutine.Manager         `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	Bcrypt     hash.Hash                  `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	JWT        jwt.JWT                    `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	repoDB := db.NewDB(dep.DBConn, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:     repoDB,
		CodeEngine: dep.CodeEngine,
		Validator:  dep.Validator,
		Config:     dep.Config,
		Bcrypt:     dep.Bcrypt,
		UID:        dep.UID,
		UUID:       dep.UUID,
		Clock:      dep.Clock,
		JWT:        dep.JWT,
		Instrument: dep.Instrument,
		Goroutine:  dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
