package dto

// Mail events published by the user service and consumed by the mail worker.

const (
	EventVerifyEmail   = "user.verify_email"
	EventResetPassword = "user.reset_password"
)

type VerifyEmailEvent struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

type ResetPasswordEvent struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}
