package inbound

import (
	"github.com/VENUHARGI/OnlineVoting/internal/identity/usecase"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for account workflows.
type HTTPEndpoint struct {
	uc uc
}

// Register creates a pending account and sends a registration code.
// @Summary Register account
// @Description Creates a pending voter account and emails a verification code.
// @Tags Identity
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration payload"
// @Success 200 {object} router.successResponse{data=RegisterResponse} "Code sent"
// @Failure 409 {object} router.errorResponse "Email already registered"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/identity/register [post]
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Register(r.Context(), usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		return nil, err
	}

	return RegisterResponse{CodeExpiresAt: resp.CodeExpiresAt.Unix()}, nil
}

// RegisterVerify activates a pending account.
func (h *HTTPEndpoint) RegisterVerify(r *router.Request) (any, error) {
	var req RegisterVerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	err := h.uc.RegisterVerify(r.Context(), usecase.RegisterVerifyInput{
		Email: req.Email,
		Code:  req.Code,
	})
	return nil, err
}

// RegisterResend sends a fresh registration code.
func (h *HTTPEndpoint) RegisterResend(r *router.Request) (any, error) {
	var req RegisterResendRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	err := h.uc.RegisterResend(r.Context(), usecase.RegisterResendInput{Email: req.Email})
	return nil, err
}

// Login checks credentials and sends a login code.
// @Summary Begin login
// @Description Verifies email and password, then emails a login code. Repeated wrong passwords lock the account.
// @Tags Identity, Authentication
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} router.successResponse{data=LoginResponse} "Code sent"
// @Failure 401 {object} router.errorResponse "Invalid credentials"
// @Failure 423 {object} router.errorResponse "Account locked"
// @Router /api/v1/identity/login [post]
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return LoginResponse{
		CodeExpiresAt:     resp.CodeExpiresAt.Unix(),
		ResendAvailableAt: resp.ResendAvailableAt.Unix(),
	}, nil
}

// LoginVerify completes login and returns the access token.
func (h *HTTPEndpoint) LoginVerify(r *router.Request) (any, error) {
	var req LoginVerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.LoginVerify(r.Context(), usecase.LoginVerifyInput{
		Email: req.Email,
		Code:  req.Code,
	})
	if err != nil {
		return nil, err
	}

	return LoginVerifyResponse{
		AccessToken: resp.AccessToken,
		Role:        resp.Role,
	}, nil
}

// PasswordForgot sends a password reset code.
func (h *HTTPEndpoint) PasswordForgot(r *router.Request) (any, error) {
	var req PasswordForgotRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	err := h.uc.PasswordForgot(r.Context(), usecase.PasswordForgotInput{Email: req.Email})
	return nil, err
}

// PasswordReset replaces the password after code validation.
func (h *HTTPEndpoint) PasswordReset(r *router.Request) (any, error) {
	var req PasswordResetRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	err := h.uc.PasswordReset(r.Context(), usecase.PasswordResetInput{
		Email:       req.Email,
		Code:        req.Code,
		NewPassword: req.NewPassword,
	})
	return nil, err
}

// PasswordChange replaces the password of the authenticated user.
func (h *HTTPEndpoint) PasswordChange(r *router.Request) (any, error) {
	var req PasswordChangeRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	err := h.uc.PasswordChange(r.Context(), usecase.PasswordChangeInput{
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	return nil, err
}

// Profile returns the authenticated user's account details.
func (h *HTTPEndpoint) Profile(r *router.Request) (any, error) {
	resp, err := h.uc.Profile(r.Context())
	if err != nil {
		return nil, err
	}

	return ProfileResponse{
		UserID:    resp.UserID,
		Email:     resp.Email,
		FullName:  resp.FullName,
		VoterID:   resp.VoterID,
		Role:      resp.Role,
		Status:    resp.Status,
		CreatedAt: resp.CreatedAt.Unix(),
	}, nil
}

// ProfileUpdate changes the display name.
func (h *HTTPEndpoint) ProfileUpdate(r *router.Request) (any, error) {
	var req ProfileUpdateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	err := h.uc.ProfileUpdate(r.Context(), usecase.ProfileUpdateInput{FullName: req.FullName})
	return nil, err
}

// UserList pages through accounts for the admin console.
func (h *HTTPEndpoint) UserList(r *router.Request) (any, error) {
	limit, _ := r.GetQueryInt32("limit")
	offset, _ := r.GetQueryInt32("offset")

	resp, err := h.uc.UserList(r.Context(), usecase.UserListInput{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}

	items := make([]UserListItem, 0, len(resp.Users))
	for _, u := range resp.Users {
		items = append(items, UserListItem{
			UserID:         u.UserID,
			Email:          u.Email,
			FullName:       u.FullName,
			VoterID:        u.VoterID,
			Role:           u.Role,
			Status:         u.Status,
			FailedAttempts: u.FailedAttempts,
			LockedUntil:    u.LockedUntil,
			CreatedAt:      u.CreatedAt.Unix(),
		})
	}

	return UserListResponse{Users: items, Total: resp.Total}, nil
}

// UserUnlock clears a lockout ahead of its expiry.
func (h *HTTPEndpoint) UserUnlock(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	return nil, h.uc.UserUnlock(r.Context(), usecase.UserUnlockInput{UserID: id})
}

// UserDeactivate disables an account.
func (h *HTTPEndpoint) UserDeactivate(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	return nil, h.uc.UserDeactivate(r.Context(), usecase.UserDeactivateInput{UserID: id})
}
