package interfaces

import "time"

// MailSender notifies a user with a link-bearing email. Implementations may
// deliver directly over SMTP or hand the job to the mail worker via the
// broker; either way a returned error means the notification did not go out.
type MailSender interface {
	SendVerifyEmail(userID uint, email, token string, expiresAt time.Time) error
	SendResetPasswordEmail(userID uint, email, token string, expiresAt time.Time) error
}
