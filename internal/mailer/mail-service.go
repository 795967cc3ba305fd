package mailer

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"net/url"
	"strings"
	"time"

	"github.com/campusboard/board-service/pkg/logger"
)

const verifyTemplate = `<html><body>
<p>Welcome to Campus Board!</p>
<p>Click the link below to verify your email and set your password:</p>
<p><a href="{{.Link}}">{{.Link}}</a></p>
<p>The link expires in one hour.</p>
</body></html>`

const resetTemplate = `<html><body>
<p>A password reset was requested for your Campus Board account.</p>
<p>Click the link below to choose a new password:</p>
<p><a href="{{.Link}}">{{.Link}}</a></p>
<p>The link expires in one hour. If you did not request this, ignore this mail.</p>
</body></html>`

// MailService delivers verification and reset mail over SMTP with STARTTLS.
type MailService struct {
	smtpHost     string
	smtpPort     string
	smtpUser     string
	smtpPassword string
	mailFrom     string
	mailFromName string

	verifyBaseURL string
	resetBaseURL  string

	verifyTmpl *template.Template
	resetTmpl  *template.Template
}

func NewMailService(
	smtpHost, smtpPort, smtpUser, smtpPassword string,
	mailFrom, mailFromName string,
	verifyBaseURL, resetBaseURL string,
) *MailService {
	return &MailService{
		smtpHost:      smtpHost,
		smtpPort:      smtpPort,
		smtpUser:      smtpUser,
		smtpPassword:  smtpPassword,
		mailFrom:      mailFrom,
		mailFromName:  mailFromName,
		verifyBaseURL: verifyBaseURL,
		resetBaseURL:  resetBaseURL,
		verifyTmpl:    template.Must(template.New("verify").Parse(verifyTemplate)),
		resetTmpl:     template.Must(template.New("reset").Parse(resetTemplate)),
	}
}

func (s *MailService) SendVerifyEmail(to, token string) error {
	link := fmt.Sprintf("%s/%s", strings.TrimRight(s.verifyBaseURL, "/"), url.PathEscape(token))
	return s.send(to, "Verify your email", s.verifyTmpl, link)
}

func (s *MailService) SendResetPasswordEmail(to, token string) error {
	link := fmt.Sprintf("%s/%s", strings.TrimRight(s.resetBaseURL, "/"), url.PathEscape(token))
	return s.send(to, "Reset your password", s.resetTmpl, link)
}

func (s *MailService) send(to, subject string, tmpl *template.Template, link string) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]string{"Link": link}); err != nil {
		return err
	}

	fromHeader := fmt.Sprintf("%s <%s>", s.mailFromName, s.mailFrom)

	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", fromHeader),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		buf.String(),
	}, "\r\n")

	if err := s.sendSMTPWithTimeout(to, []byte(msg)); err != nil {
		return err
	}

	logger.S().Infow("mail sent", "to", to, "subject", subject)
	return nil
}

func (s *MailService) sendSMTPWithTimeout(to string, msg []byte) error {
	addr := net.JoinHostPort(s.smtpHost, s.smtpPort)

	conn, err := net.DialTimeout("tcp", addr, 8*time.Second)
	if err != nil {
		return err
	}
	// Deadline covers the whole SMTP conversation.
	_ = conn.SetDeadline(time.Now().Add(15 * time.Second))

	c, err := smtp.NewClient(conn, s.smtpHost)
	if err != nil {
		return err
	}
	defer func() { _ = c.Quit() }()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: s.smtpHost}); err != nil {
			return err
		}
	}

	if s.smtpUser != "" {
		auth := smtp.PlainAuth("", s.smtpUser, s.smtpPassword, s.smtpHost)
		if err := c.Auth(auth); err != nil {
			return err
		}
	}

	if err := c.Mail(s.mailFrom); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
