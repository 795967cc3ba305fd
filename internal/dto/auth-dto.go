package dto

type RegisterRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type VerifyEmailRequest struct {
	EmailToken string `json:"email_token" validate:"required,len=64,hexadecimal"`
	Password   string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type FindPasswordRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	ResetPasswordToken string `json:"reset_password_token" validate:"required,len=64,hexadecimal"`
	NewPassword        string `json:"new_password" validate:"required,min=6"`
}

// AuthClaims is what the auth middleware stores in fiber locals after
// verifying an access token.
type AuthClaims struct {
	UserID uint    `json:"user_id"`
	Expiry float64 `json:"expiry"`
	Iat    float64 `json:"iat"`
}
