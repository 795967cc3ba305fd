package queue

import (
	"encoding/json"
	"time"

	"github.com/campusboard/board-service/internal/dto"
	"github.com/campusboard/board-service/internal/interfaces"
)

// MailPublisher implements interfaces.MailSender by publishing mail events
// for the mail worker. The event key selects the template on the consumer
// side.
type MailPublisher struct {
	producer interfaces.ProducerHandler
}

func NewMailPublisher(producer interfaces.ProducerHandler) *MailPublisher {
	return &MailPublisher{producer: producer}
}

func (p *MailPublisher) SendVerifyEmail(userID uint, email, token string, expiresAt time.Time) error {
	payload, err := json.Marshal(dto.VerifyEmailEvent{
		UserID:    userID,
		Email:     email,
		Token:     token,
		ExpiresAt: expiresAt.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	return p.producer.PublishMessage([]byte(dto.EventVerifyEmail), payload)
}

func (p *MailPublisher) SendResetPasswordEmail(userID uint, email, token string, expiresAt time.Time) error {
	payload, err := json.Marshal(dto.ResetPasswordEvent{
		UserID:    userID,
		Email:     email,
		Token:     token,
		ExpiresAt: expiresAt.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	return p.producer.PublishMessage([]byte(dto.EventResetPassword), payload)
}
