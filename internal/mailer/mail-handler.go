package mailer

import (
	"encoding/json"
	"fmt"

	"github.com/campusboard/board-service/internal/dto"
)

// Sender is the slice of MailService the handler needs; split out so tests
// can record deliveries instead of dialing SMTP.
type Sender interface {
	SendVerifyEmail(to, token string) error
	SendResetPasswordEmail(to, token string) error
}

// MailHandler routes consumed mail events to the sender by event key.
type MailHandler struct {
	sender Sender
}

func NewMailHandler(sender Sender) *MailHandler {
	return &MailHandler{sender: sender}
}

func (h *MailHandler) HandleMessage(key, value string) error {
	switch key {
	case dto.EventVerifyEmail:
		var ev dto.VerifyEmailEvent
		if err := json.Unmarshal([]byte(value), &ev); err != nil {
			return fmt.Errorf("bad verify event payload: %w", err)
		}
		return h.sender.SendVerifyEmail(ev.Email, ev.Token)

	case dto.EventResetPassword:
		var ev dto.ResetPasswordEvent
		if err := json.Unmarshal([]byte(value), &ev); err != nil {
			return fmt.Errorf("bad reset event payload: %w", err)
		}
		return h.sender.SendResetPasswordEmail(ev.Email, ev.Token)

	default:
		return fmt.Errorf("unknown mail event key %q", key)
	}
}
