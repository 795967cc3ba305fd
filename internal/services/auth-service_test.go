package services

import (
	"errors"
	"testing"
	"time"

	"github.com/campusboard/board-service/internal/apperrors"
	"github.com/campusboard/board-service/internal/domain"
	"github.com/campusboard/board-service/internal/dto"
	"github.com/campusboard/board-service/internal/helper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// memUserRepo behaves like the real store: lookups return copies, mutations
// only land via SaveUser / CreateUser, email is unique, ClaimSession is
// conditional.
type memUserRepo struct {
	nextID uint
	users  map[uint]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{nextID: 1, users: map[uint]*domain.User{}}
}

func copyUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

func (r *memUserRepo) CreateUser(user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, gorm.ErrDuplicatedKey
		}
	}
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = copyUser(user)
	return user, nil
}

func (r *memUserRepo) SaveUser(user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.users[user.ID] = copyUser(user)
	return nil
}

func (r *memUserRepo) RemoveUser(user *domain.User) error {
	delete(r.users, user.ID)
	return nil
}

func (r *memUserRepo) findOne(match func(*domain.User) bool) (*domain.User, error) {
	for _, u := range r.users {
		if match(u) {
			return copyUser(u), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) FindUserByID(userID uint) (*domain.User, error) {
	return r.findOne(func(u *domain.User) bool { return u.ID == userID })
}

func (r *memUserRepo) FindUserByEmail(email string) (*domain.User, error) {
	return r.findOne(func(u *domain.User) bool { return u.Email == email })
}

func (r *memUserRepo) FindUserByNameAndEmail(name, email string) (*domain.User, error) {
	return r.findOne(func(u *domain.User) bool { return u.Name == name && u.Email == email })
}

func (r *memUserRepo) FindUserByEmailToken(token string) (*domain.User, error) {
	return r.findOne(func(u *domain.User) bool {
		return u.EmailToken != nil && *u.EmailToken == token
	})
}

func (r *memUserRepo) FindUserByResetToken(token string) (*domain.User, error) {
	return r.findOne(func(u *domain.User) bool {
		return u.ResetPasswordToken != nil && *u.ResetPasswordToken == token
	})
}

func (r *memUserRepo) ClaimSession(userID uint, refreshToken string) (bool, error) {
	u, ok := r.users[userID]
	if !ok {
		return false, nil
	}
	if u.RefreshToken != nil {
		return false, nil
	}
	u.RefreshToken = &refreshToken
	return true, nil
}

func (r *memUserRepo) ReleaseSession(refreshToken string) (bool, error) {
	for _, u := range r.users {
		if u.RefreshToken != nil && *u.RefreshToken == refreshToken {
			u.RefreshToken = nil
			return true, nil
		}
	}
	return false, nil
}

type stubMailSender struct {
	verifySent []string
	resetSent  []string
	failWith   error
}

func (m *stubMailSender) SendVerifyEmail(userID uint, email, token string, expiresAt time.Time) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.verifySent = append(m.verifySent, token)
	return nil
}

func (m *stubMailSender) SendResetPasswordEmail(userID uint, email, token string, expiresAt time.Time) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.resetSent = append(m.resetSent, token)
	return nil
}

type authFixture struct {
	repo *memUserRepo
	mail *stubMailSender
	svc  *authService
	now  time.Time
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	repo := newMemUserRepo()
	mail := &stubMailSender{}
	svc := NewAuthService(repo, mail, helper.SetupAuth("access-secret", "refresh-secret")).(*authService)

	f := &authFixture{
		repo: repo,
		mail: mail,
		svc:  svc,
		now:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	svc.now = func() time.Time { return f.now }
	return f
}

func (f *authFixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func (f *authFixture) register(t *testing.T, name, email string) string {
	t.Helper()
	require.NoError(t, f.svc.Register(dto.RegisterRequest{Name: name, Email: email}))
	return f.mail.verifySent[len(f.mail.verifySent)-1]
}

func TestRegisterSendsVerificationMail(t *testing.T) {
	f := newAuthFixture(t)

	token := f.register(t, "Alice", "a@x.com")
	assert.Len(t, token, 64)

	user, err := f.repo.FindUserByEmail("a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, domain.RoleStudent, user.Role)
	assert.Empty(t, user.Password)
	require.NotNil(t, user.EmailToken)
	require.NotNil(t, user.EmailTokenExpiry)
	assert.Equal(t, token, *user.EmailToken)
	assert.Equal(t, f.now.Add(time.Hour), *user.EmailTokenExpiry)
}

func TestRegisterDuplicatePending(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "Alice", "a@x.com")

	err := f.svc.Register(dto.RegisterRequest{Name: "Alice", Email: "a@x.com"})
	assert.True(t, apperrors.Is(err, apperrors.ErrDuplicatePendingRegistration))

	err = f.svc.Register(dto.RegisterRequest{Name: "Alice", Email: "a@x.com"})
	assert.True(t, apperrors.Is(err, apperrors.ErrDuplicatePendingRegistration))

	// no second record
	assert.Len(t, f.repo.users, 1)
	assert.Len(t, f.mail.verifySent, 1)
}

func TestRegisterSupersedesExpiredPending(t *testing.T) {
	f := newAuthFixture(t)
	firstToken := f.register(t, "Alice", "a@x.com")
	stale, err := f.repo.FindUserByEmail("a@x.com")
	require.NoError(t, err)

	f.advance(time.Hour + time.Minute)
	secondToken := f.register(t, "Alice", "a@x.com")

	assert.NotEqual(t, firstToken, secondToken)
	assert.Len(t, f.repo.users, 1)

	fresh, err := f.repo.FindUserByEmail("a@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, stale.ID, fresh.ID)
	assert.Equal(t, secondToken, *fresh.EmailToken)
	assert.Equal(t, f.now.Add(time.Hour), *fresh.EmailTokenExpiry)
}

func TestRegisterActiveEmail(t *testing.T) {
	f := newAuthFixture(t)
	token := f.register(t, "Alice", "a@x.com")
	require.NoError(t, f.svc.VerifyEmail(dto.VerifyEmailRequest{EmailToken: token, Password: "pw1secret"}))

	err := f.svc.Register(dto.RegisterRequest{Name: "Alice", Email: "a@x.com"})
	assert.True(t, apperrors.Is(err, apperrors.ErrEmailAlreadyRegistered))
}

func TestRegisterMailFailureKeepsRecord(t *testing.T) {
	f := newAuthFixture(t)
	f.mail.failWith = errors.New("smtp down")

	err := f.svc.Register(dto.RegisterRequest{Name: "Alice", Email: "a@x.com"})
	assert.True(t, apperrors.Is(err, apperrors.ErrServer))

	// Known best-effort behavior: the pending record stays behind.
	_, err = f.repo.FindUserByEmail("a@x.com")
	assert.NoError(t, err)
}

func TestVerifyEmailInvalidToken(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "Alice", "a@x.com")

	err := f.svc.VerifyEmail(dto.VerifyEmailRequest{EmailToken: "deadbeef", Password: "pw1secret"})
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidToken))
}

func TestVerifyEmailExpiredLeavesRecordPending(t *testing.T) {
	f := newAuthFixture(t)
	token := f.register(t, "Alice", "a@x.com")

	f.advance(2 * time.Hour)
	err := f.svc.VerifyEmail(dto.VerifyEmailRequest{EmailToken: token, Password: "pw1secret"})
	assert.True(t, apperrors.Is(err, apperrors.ErrTokenExpired))

	user, findErr := f.repo.FindUserByEmail("a@x.com")
	require.NoError(t, findErr)
	assert.Empty(t, user.Password)
	assert.True(t, user.PendingVerification())
}

func TestVerifyEmailActivates(t *testing.T) {
	f := newAuthFixture(t)
	token := f.register(t, "Alice", "a@x.com")

	require.NoError(t, f.svc.VerifyEmail(dto.VerifyEmailRequest{EmailToken: token, Password: "pw1secret"}))

	user, err := f.repo.FindUserByEmail("a@x.com")
	require.NoError(t, err)
	assert.Nil(t, user.EmailToken)
	assert.Nil(t, user.EmailTokenExpiry)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("pw1secret")))
}

func TestLoginUnknownUser(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Login(dto.LoginRequest{Email: "nobody@x.com", Password: "pw"})
	assert.True(t, apperrors.Is(err, apperrors.ErrUserNotFound))
}

func TestLoginPendingStates(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "Alice", "a@x.com")

	// still pending: not verified yet
	_, err := f.svc.Login(dto.LoginRequest{Email: "a@x.com", Password: "pw1secret"})
	assert.True(t, apperrors.Is(err, apperrors.ErrEmailNotVerified))

	// pending expired: distinct error off the same field
	f.advance(2 * time.Hour)
	_, err = f.svc.Login(dto.LoginRequest{Email: "a@x.com", Password: "pw1secret"})
	assert.True(t, apperrors.Is(err, apperrors.ErrVerificationExpired))
}

func TestLoginWrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	token := f.register(t, "Alice", "a@x.com")
	require.NoError(t, f.svc.VerifyEmail(dto.VerifyEmailRequest{EmailToken: token, Password: "pw1secret"}))

	_, err := f.svc.Login(dto.LoginRequest{Email: "a@x.com", Password: "wrong"})
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidCredentials))
}

func TestLoginSingleSession(t *testing.T) {
	f := newAuthFixture(t)
	token := f.register(t, "Alice", "a@x.com")
	require.NoError(t, f.svc.VerifyEmail(dto.VerifyEmailRequest{EmailToken: token, Password: "pw1secret"}))

	pair, err := f.svc.Login(dto.LoginRequest{Email: "a@x.com", Password: "pw1secret"})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	_, err = f.svc.Login(dto.LoginRequest{Email: "a@x.com", Password: "pw1secret"})
	assert.True(t, apperrors.Is(err, apperrors.ErrSessionAlreadyActive))
}

func TestLogoutFreesSession(t *testing.T) {
	f := newAuthFixture(t)
	token := f.register(t, "Alice", "a@x.com")
	require.NoError(t, f.svc.VerifyEmail(dto.VerifyEmailRequest{EmailToken: token, Password: "pw1secret"}))

	pair, err := f.svc.Login(dto.LoginRequest{Email: "a@x.com", Password: "pw1secret"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(pair.RefreshToken))

	_, err = f.svc.Login(dto.LoginRequest{Email: "a@x.com", Password: "pw1secret"})
	assert.NoError(t, err)
}

func TestLogoutUnknownToken(t *testing.T) {
	f := newAuthFixture(t)

	err := f.svc.Logout("not-a-session")
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidToken))
}

func TestFindPasswordUnknownUser(t *testing.T) {
	f := newAuthFixture(t)

	err := f.svc.FindPassword(dto.FindPasswordRequest{Name: "Nobody", Email: "n@x.com"})
	assert.True(t, apperrors.Is(err, apperrors.ErrUserNotFound))
}

func TestFindPasswordOverwritesPriorToken(t *testing.T) {
	f := newAuthFixture(t)
	token := f.register(t, "Alice", "a@x.com")
	require.NoError(t, f.svc.VerifyEmail(dto.VerifyEmailRequest{EmailToken: token, Password: "pw1secret"}))

	require.NoError(t, f.svc.FindPassword(dto.FindPasswordRequest{Name: "Alice", Email: "a@x.com"}))
	first := f.mail.resetSent[0]

	// No already-pending guard: a second request replaces the token.
	require.NoError(t, f.svc.FindPassword(dto.FindPasswordRequest{Name: "Alice", Email: "a@x.com"}))
	second := f.mail.resetSent[1]
	assert.NotEqual(t, first, second)

	_, err := f.repo.FindUserByResetToken(first)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	user, err := f.repo.FindUserByResetToken(second)
	require.NoError(t, err)
	assert.Equal(t, f.now.Add(time.Hour), *user.ResetPasswordExpiry)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	f := newAuthFixture(t)
	token := f.register(t, "Alice", "a@x.com")
	require.NoError(t, f.svc.VerifyEmail(dto.VerifyEmailRequest{EmailToken: token, Password: "pw1secret"}))
	require.NoError(t, f.svc.FindPassword(dto.FindPasswordRequest{Name: "Alice", Email: "a@x.com"}))
	resetToken := f.mail.resetSent[0]

	f.advance(2 * time.Hour)
	err := f.svc.ResetPassword(dto.ResetPasswordRequest{ResetPasswordToken: resetToken, NewPassword: "pw2secret"})
	assert.True(t, apperrors.Is(err, apperrors.ErrTokenExpired))

	// Password unchanged.
	user, findErr := f.repo.FindUserByEmail("a@x.com")
	require.NoError(t, findErr)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("pw1secret")))
}

func TestResetPasswordReplacesCredential(t *testing.T) {
	f := newAuthFixture(t)
	token := f.register(t, "Alice", "a@x.com")
	require.NoError(t, f.svc.VerifyEmail(dto.VerifyEmailRequest{EmailToken: token, Password: "pw1secret"}))
	require.NoError(t, f.svc.FindPassword(dto.FindPasswordRequest{Name: "Alice", Email: "a@x.com"}))
	resetToken := f.mail.resetSent[0]

	require.NoError(t, f.svc.ResetPassword(dto.ResetPasswordRequest{ResetPasswordToken: resetToken, NewPassword: "pw2secret"}))

	user, err := f.repo.FindUserByEmail("a@x.com")
	require.NoError(t, err)
	assert.Nil(t, user.ResetPasswordToken)
	assert.Nil(t, user.ResetPasswordExpiry)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("pw2secret")))

	// Reused token is gone.
	err = f.svc.ResetPassword(dto.ResetPasswordRequest{ResetPasswordToken: resetToken, NewPassword: "pw3secret"})
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidToken))
}

func TestFullLifecycle(t *testing.T) {
	f := newAuthFixture(t)

	token := f.register(t, "Alice", "a@x.com")
	require.NoError(t, f.svc.VerifyEmail(dto.VerifyEmailRequest{EmailToken: token, Password: "pw1secret"}))

	pair, err := f.svc.Login(dto.LoginRequest{Email: "a@x.com", Password: "pw1secret"})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	_, err = f.svc.Login(dto.LoginRequest{Email: "a@x.com", Password: "pw1secret"})
	assert.True(t, apperrors.Is(err, apperrors.ErrSessionAlreadyActive))
}
