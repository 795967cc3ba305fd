package domain

import "time"

type RoleType string

const (
	RoleStudent RoleType = "STUDENT"
	RoleTeacher RoleType = "TEACHER"
	RoleAdmin   RoleType = "ADMIN"
)

// User is either pending verification (EmailToken+EmailTokenExpiry set,
// Password empty) or active (Password set, both token fields null). A token
// field and its expiry are always set or cleared together.
//
// No soft delete: a stale pending record must be hard-deleted so its email is
// free for re-registration under the unique index.
type User struct {
	ID       uint     `gorm:"primaryKey" json:"id"`
	Name     string   `gorm:"not null" json:"name"`
	Email    string   `gorm:"uniqueIndex;not null" json:"email"`
	Password string   `json:"-"`
	Role     RoleType `gorm:"type:varchar(20);not null;default:STUDENT" json:"role"`

	EmailToken       *string    `gorm:"uniqueIndex" json:"-"`
	EmailTokenExpiry *time.Time `json:"-"`

	ResetPasswordToken  *string    `gorm:"uniqueIndex" json:"-"`
	ResetPasswordExpiry *time.Time `json:"-"`

	RefreshToken *string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PendingVerification reports whether the record is still in the pending
// state, expired or not.
func (u *User) PendingVerification() bool {
	return u.EmailToken != nil && u.EmailTokenExpiry != nil
}
