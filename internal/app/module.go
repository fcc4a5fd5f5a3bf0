package app

import (
	"log/slog"
	"os"

	"github.com/VENUHARGI/OnlineVoting/internal/identity"
	"github.com/VENUHARGI/OnlineVoting/internal/notification"
	"github.com/VENUHARGI/OnlineVoting/internal/otp"
	otpusecase "github.com/VENUHARGI/OnlineVoting/internal/otp/usecase"
	"github.com/VENUHARGI/OnlineVoting/internal/voting"
)

func (a *App) initModules() {
	var codeEngine *otpusecase.Usecase

	if a.config.GetBool("modules.otp.enabled") {
		engine, err := otp.New(otp.Dependency{
			DBConn:         a.dbConn,
			CacheConn:      a.cacheConn,
			Goroutine:      a.goroutine,
			Router:         a.router,
			Messaging:      a.messaging,
			Config:         a.config,
			Instrument:     a.ins,
			Codegen:        a.codegen,
			UID:            a.uid,
			Clock:          a.clock,
			Validator:      a.validator,
			SweeperContext: a.ctx,
		})
		if err != nil {
			slog.Error("failed to init module otp", "error", err)
			os.Exit(1)
		}
		codeEngine = engine
	}

	if a.config.GetBool("modules.identity.enabled") {
		if codeEngine == nil {
			slog.Error("module identity requires module otp to be enabled")
			os.Exit(1)
		}

		err := identity.New(identity.Dependency{
			DBConn:     a.dbConn,
			CodeEngine: codeEngine,
			Goroutine:  a.goroutine,
			Router:     a.router,
			Config:     a.config,
			Instrument: a.ins,
			Bcrypt:     a.bcrypt,
			UID:        a.uid,
			UUID:       a.uuid,
			Clock:      a.clock,
			JWT:        a.jwt,
			Validator:  a.validator,
		})
		if err != nil {
			slog.Error("failed to init module identity", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.voting.enabled") {
		if codeEngine == nil {
			slog.Error("module voting requires module otp to be enabled")
			os.Exit(1)
		}

		err := voting.New(voting.Dependency{
			DBConn:      a.dbConn,
			Messaging:   a.messaging,
			CodeEngine:  codeEngine,
			Idempotency: a.idemp,
			Storage:     a.storage,
			Signer:      a.hmac,
			Goroutine:   a.goroutine,
			Router:      a.router,
			Config:      a.config,
			Instrument:  a.ins,
			UID:         a.uid,
			UUID:        a.uuid,
			Clock:       a.clock,
			Validator:   a.validator,
		})
		if err != nil {
			slog.Error("failed to init module voting", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.notification.enabled") {
		err := notification.New(notification.Dependency{
			ConsumerContext: a.ctx,
			Mail:            a.mail,
			Messaging:       a.messaging,
			Goroutine:       a.goroutine,
			Config:          a.config,
			Instrument:      a.ins,
			UUID:            a.uuid,
			Clock:           a.clock,
			Validator:       a.validator,
		})
		if err != nil {
			slog.Error("failed to init module notification", "error", err)
			os.Exit(1)
		}
	}
}
