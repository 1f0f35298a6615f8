package notify

import (
	"context"
	"fmt"
	"net/smtp"

	log "github.com/sirupsen/logrus"
)

// SMTPMailer sends verification codes through a plain SMTP relay.
type SMTPMailer struct {
	Addr string // host:port
	From string
}

func NewSMTPMailer(addr, from string) *SMTPMailer { return &SMTPMailer{Addr: addr, From: from} }

func (m *SMTPMailer) SendVerificationCode(_ context.Context, email, code string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Your verification code\r\n\r\nYour verification code is %s\r\n",
		m.From, email, code)
	return smtp.SendMail(m.Addr, nil, m.From, []string{email}, []byte(msg))
}

// LogMailer is the dev mailer: it writes the code to the log instead of
// delivering it. Used when no SMTP relay is configured.
type LogMailer struct{}

func (LogMailer) SendVerificationCode(_ context.Context, email, code string) error {
	log.WithFields(log.Fields{"email": email, "code": code}).Info("verification code issued")
	return nil
}
