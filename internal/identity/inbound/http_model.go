package inbound

import "time"

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type RegisterResponse struct {
	CodeExpiresAt int64 `json:"code_expires_at"`
}

type RegisterVerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type RegisterResendRequest struct {
	Email string `json:"email"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	CodeExpiresAt     int64 `json:"code_expires_at"`
	ResendAvailableAt int64 `json:"resend_available_at"`
}

type LoginVerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type LoginVerifyResponse struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
}

type PasswordForgotRequest struct {
	Email string `json:"email"`
}

type PasswordResetRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

type PasswordChangeRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type ProfileResponse struct {
	UserID    int64  `json:"user_id,string"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	VoterID   string `json:"voter_id"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
}

type ProfileUpdateRequest struct {
	FullName string `json:"full_name"`
}

type UserListItem struct {
	UserID         int64      `json:"user_id,string"`
	Email          string     `json:"email"`
	FullName       string     `json:"full_name"`
	VoterID        string     `json:"voter_id"`
	Role           string     `json:"role"`
	Status         string     `json:"status"`
	FailedAttempts int32      `json:"failed_attempts"`
	LockedUntil    *time.Time `json:"locked_until,omitempty"`
	CreatedAt      int64      `json:"created_at"`
}

type UserListResponse struct {
	Users []UserListItem `json:"users"`
	Total int64          `json:"total"`
}
