package inbound

import (
	"context"

	"github.com/VENUHARGI/OnlineVoting/internal/identity/usecase"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/router"
)

type uc interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.RegisterOutput, error)
	RegisterVerify(ctx context.Context, in usecase.RegisterVerifyInput) error
	RegisterResend(ctx context.Context, in usecase.RegisterResendInput) error

	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	LoginVerify(ctx context.Context, in usecase.LoginVerifyInput) (*usecase.LoginVerifyOutput, error)

	PasswordForgot(ctx context.Context, in usecase.PasswordForgotInput) error
	PasswordReset(ctx context.Context, in usecase.PasswordResetInput) error
	PasswordChange(ctx context.Context, in usecase.PasswordChangeInput) error

	Profile(ctx context.Context) (*usecase.ProfileOutput, error)
	ProfileUpdate(ctx context.Context, in usecase.ProfileUpdateInput) error

	UserList(ctx context.Context, in usecase.UserListInput) (*usecase.UserListOutput, error)
	UserUnlock(ctx context.Context, in usecase.UserUnlockInput) error
	UserDeactivate(ctx context.Context, in usecase.UserDeactivateInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Registration
	r.POST("/api/v1/identity/register", end.Register)
	r.POST("/api/v1/identity/register/verify", end.RegisterVerify)
	r.POST("/api/v1/identity/register/resend", end.RegisterResend)

	// Two-step login
	r.POST("/api/v1/identity/login", end.Login)
	r.POST("/api/v1/identity/login/verify", end.LoginVerify)

	// Password Management
	r.POST("/api/v1/identity/password/forgot", end.PasswordForgot)
	r.POST("/api/v1/identity/password/reset", end.PasswordReset)
	r.POST("/api/v1/identity/password/change", end.PasswordChange) // need authenticated

	// User Profile (need authenticated)
	r.GET("/api/v1/identity/profile", end.Profile)
	r.PUT("/api/v1/identity/profile", end.ProfileUpdate)

	// Admin (need authenticated & authorization)
	r.GET("/api/v1/admin/users", end.UserList)
	r.POST("/api/v1/admin/users/:id/unlock", end.UserUnlock)
	r.POST("/api/v1/admin/users/:id/deactivate", end.UserDeactivate)
}
