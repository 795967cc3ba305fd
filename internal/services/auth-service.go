package services

import (
	"errors"
	"strings"
	"time"

	"github.com/campusboard/board-service/internal/apperrors"
	"github.com/campusboard/board-service/internal/domain"
	"github.com/campusboard/board-service/internal/dto"
	"github.com/campusboard/board-service/internal/helper"
	"github.com/campusboard/board-service/internal/helper/utils"
	"github.com/campusboard/board-service/internal/interfaces"
	"github.com/campusboard/board-service/internal/repository"
	"github.com/campusboard/board-service/pkg/logger"
	"gorm.io/gorm"
)

const (
	// 32 random bytes, hex-encoded to 64 characters.
	tokenBytes = 32
	tokenTTL   = time.Hour
)

// AuthService owns the credential and token lifecycle: pending registration,
// email verification, login with a single active session, and the
// password-reset flow. Each operation is one read-check-write against a
// single user record.
type AuthService interface {
	Register(input dto.RegisterRequest) error
	VerifyEmail(input dto.VerifyEmailRequest) error
	Login(input dto.LoginRequest) (*dto.TokenPair, error)
	Logout(refreshToken string) error
	FindPassword(input dto.FindPasswordRequest) error
	ResetPassword(input dto.ResetPasswordRequest) error
}

type authService struct {
	repo repository.UserRepository
	mail interfaces.MailSender
	auth helper.Auth

	// injectable for expiry tests
	now func() time.Time
}

func NewAuthService(repo repository.UserRepository, mail interfaces.MailSender, auth helper.Auth) AuthService {
	return &authService{
		repo: repo,
		mail: mail,
		auth: auth,
		now:  time.Now,
	}
}

// Register creates a pending record and emails a verification link. An
// expired pending record for the same email is superseded: deleted, then
// re-created with a fresh token.
func (s *authService) Register(input dto.RegisterRequest) error {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(strings.ToLower(input.Email))

	existing, err := s.repo.FindUserByEmail(email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.Wrap(apperrors.ErrServer, err)
	}

	if existing != nil {
		if existing.PendingVerification() {
			if s.now().Before(*existing.EmailTokenExpiry) {
				return apperrors.ErrDuplicatePendingRegistration
			}
			// Stale pending record; clear it so the unique email is free.
			if err := s.repo.RemoveUser(existing); err != nil {
				return apperrors.Wrap(apperrors.ErrServer, err)
			}
		} else {
			return apperrors.ErrEmailAlreadyRegistered
		}
	}

	token, err := utils.RandomToken(tokenBytes)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrServer, err)
	}
	expiry := s.now().Add(tokenTTL)

	user := &domain.User{
		Name:             name,
		Email:            email,
		Password:         "",
		Role:             domain.RoleStudent,
		EmailToken:       &token,
		EmailTokenExpiry: &expiry,
	}

	if _, err := s.repo.CreateUser(user); err != nil {
		// A concurrent registration won the unique email index.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrDuplicatePendingRegistration
		}
		return apperrors.Wrap(apperrors.ErrServer, err)
	}

	// Best effort: a send failure leaves the pending record in place. The
	// caller sees a server error and the record expires in an hour anyway.
	if err := s.mail.SendVerifyEmail(user.ID, email, token, expiry); err != nil {
		logger.S().Errorw("verification mail not sent", "user_id", user.ID, "error", err)
		return apperrors.Wrap(apperrors.ErrServer, err)
	}

	return nil
}

// VerifyEmail is the pending-to-active transition: the password is set and
// the token pair is cleared in one save.
func (s *authService) VerifyEmail(input dto.VerifyEmailRequest) error {
	user, err := s.repo.FindUserByEmailToken(input.EmailToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrInvalidToken
		}
		return apperrors.Wrap(apperrors.ErrServer, err)
	}

	if user.EmailTokenExpiry == nil || s.now().After(*user.EmailTokenExpiry) {
		// Left in place on purpose; re-registering cleans it up.
		return apperrors.ErrTokenExpired
	}

	hashed, err := s.auth.HashPassword(input.Password)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrServer, err)
	}

	user.Password = hashed
	user.EmailToken = nil
	user.EmailTokenExpiry = nil

	if err := s.repo.SaveUser(user); err != nil {
		return apperrors.Wrap(apperrors.ErrServer, err)
	}
	return nil
}

// Login issues an access/refresh pair. The pending checks are ordered:
// still-pending before pending-expired, so the two states map to distinct
// errors off the same expiry field.
func (s *authService) Login(input dto.LoginRequest) (*dto.TokenPair, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))

	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrServer, err)
	}

	if user.EmailTokenExpiry != nil {
		if s.now().Before(*user.EmailTokenExpiry) {
			return nil, apperrors.ErrEmailNotVerified
		}
		return nil, apperrors.ErrVerificationExpired
	}

	if err := s.auth.VerifyPassword(input.Password, user.Password); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.RefreshToken != nil {
		return nil, apperrors.ErrSessionAlreadyActive
	}

	accessToken, err := s.auth.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrServer, err)
	}
	refreshToken, err := s.auth.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrServer, err)
	}

	// Conditional claim: the session slot is taken only if it is still
	// free, so two concurrent logins cannot both succeed.
	claimed, err := s.repo.ClaimSession(user.ID, refreshToken)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrServer, err)
	}
	if !claimed {
		return nil, apperrors.ErrSessionAlreadyActive
	}

	return &dto.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Logout invalidates the active session identified by its refresh token.
func (s *authService) Logout(refreshToken string) error {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return apperrors.ErrInvalidToken
	}

	released, err := s.repo.ReleaseSession(refreshToken)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrServer, err)
	}
	if !released {
		return apperrors.ErrInvalidToken
	}
	return nil
}

// FindPassword stores a fresh reset token on an active user and emails the
// reset link. A prior reset token is overwritten unconditionally.
func (s *authService) FindPassword(input dto.FindPasswordRequest) error {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(strings.ToLower(input.Email))

	user, err := s.repo.FindUserByNameAndEmail(name, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.Wrap(apperrors.ErrServer, err)
	}

	token, err := utils.RandomToken(tokenBytes)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrServer, err)
	}
	expiry := s.now().Add(tokenTTL)

	user.ResetPasswordToken = &token
	user.ResetPasswordExpiry = &expiry

	if err := s.repo.SaveUser(user); err != nil {
		return apperrors.Wrap(apperrors.ErrServer, err)
	}

	if err := s.mail.SendResetPasswordEmail(user.ID, email, token, expiry); err != nil {
		logger.S().Errorw("reset mail not sent", "user_id", user.ID, "error", err)
		return apperrors.Wrap(apperrors.ErrServer, err)
	}

	return nil
}

// ResetPassword replaces the credential and clears both reset fields.
func (s *authService) ResetPassword(input dto.ResetPasswordRequest) error {
	user, err := s.repo.FindUserByResetToken(input.ResetPasswordToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrInvalidToken
		}
		return apperrors.Wrap(apperrors.ErrServer, err)
	}

	if user.ResetPasswordExpiry == nil || s.now().After(*user.ResetPasswordExpiry) {
		return apperrors.ErrTokenExpired
	}

	hashed, err := s.auth.HashPassword(input.NewPassword)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrServer, err)
	}

	user.Password = hashed
	user.ResetPasswordToken = nil
	user.ResetPasswordExpiry = nil

	if err := s.repo.SaveUser(user); err != nil {
		return apperrors.Wrap(apperrors.ErrServer, err)
	}
	return nil
}
