package repository

import (
	"errors"

	"github.com/campusboard/board-service/internal/domain"
	"github.com/campusboard/board-service/pkg/logger"
	"gorm.io/gorm"
)

// UserRepository is keyed on the fields the auth flows look up by. Not-found
// is reported as gorm.ErrRecordNotFound so callers can branch on it.
type UserRepository interface {
	CreateUser(user *domain.User) (*domain.User, error)
	SaveUser(user *domain.User) error
	RemoveUser(user *domain.User) error

	FindUserByID(userID uint) (*domain.User, error)
	FindUserByEmail(email string) (*domain.User, error)
	FindUserByNameAndEmail(name, email string) (*domain.User, error)
	FindUserByEmailToken(token string) (*domain.User, error)
	FindUserByResetToken(token string) (*domain.User, error)

	// ClaimSession sets the refresh token only when no session is active.
	// It reports false when another session already holds the slot, making
	// the single-session invariant race-free under concurrent logins.
	ClaimSession(userID uint, refreshToken string) (bool, error)

	// ReleaseSession clears the refresh token when it matches exactly.
	// It reports false when no record holds that token.
	ReleaseSession(refreshToken string) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("nil user")
	}

	if err := r.db.Create(user).Error; err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			logger.S().Errorw("create user failed", "email", user.Email, "error", err)
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) SaveUser(user *domain.User) error {
	if user == nil {
		return errors.New("nil user")
	}

	if err := r.db.Save(user).Error; err != nil {
		logger.S().Errorw("save user failed", "user_id", user.ID, "error", err)
		return err
	}
	return nil
}

func (r *userRepository) RemoveUser(user *domain.User) error {
	if user == nil {
		return errors.New("nil user")
	}

	if err := r.db.Delete(user).Error; err != nil {
		logger.S().Errorw("remove user failed", "user_id", user.ID, "error", err)
		return err
	}
	return nil
}

func (r *userRepository) FindUserByID(userID uint) (*domain.User, error) {
	user := &domain.User{}
	if err := r.db.First(user, userID).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) FindUserByEmail(email string) (*domain.User, error) {
	user := &domain.User{}
	if err := r.db.First(user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) FindUserByNameAndEmail(name, email string) (*domain.User, error) {
	user := &domain.User{}
	if err := r.db.First(user, "name = ? AND email = ?", name, email).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) FindUserByEmailToken(token string) (*domain.User, error) {
	user := &domain.User{}
	if err := r.db.First(user, "email_token = ?", token).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) FindUserByResetToken(token string) (*domain.User, error) {
	user := &domain.User{}
	if err := r.db.First(user, "reset_password_token = ?", token).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) ClaimSession(userID uint, refreshToken string) (bool, error) {
	res := r.db.Model(&domain.User{}).
		Where("id = ? AND refresh_token IS NULL", userID).
		Update("refresh_token", refreshToken)
	if res.Error != nil {
		logger.S().Errorw("claim session failed", "user_id", userID, "error", res.Error)
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *userRepository) ReleaseSession(refreshToken string) (bool, error) {
	res := r.db.Model(&domain.User{}).
		Where("refresh_token = ?", refreshToken).
		Update("refresh_token", nil)
	if res.Error != nil {
		logger.S().Errorw("release session failed", "error", res.Error)
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
