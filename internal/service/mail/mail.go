// Package mail sends notification email over SMTP.
package mail

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"
)

// Sender delivers a plain-text message to one recipient.
type Sender interface {
	Send(to, subject, body string) error
}

// SMTPSender sends mail through a single SMTP relay using PLAIN auth.
type SMTPSender struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

// NewSMTPSender creates an SMTP sender.
func NewSMTPSender(host, port, user, pass, from string) *SMTPSender {
	return &SMTPSender{Host: host, Port: port, User: user, Pass: pass, From: from}
}

// Send delivers one message. Fails fast when no host is configured so
// callers can treat mail as optional.
func (s *SMTPSender) Send(to, subject, body string) error {
	if s.Host == "" {
		return errors.New("SMTP host is not configured")
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	msg.WriteString(body)

	var auth smtp.Auth
	if s.User != "" {
		auth = smtp.PlainAuth("", s.User, s.Pass, s.Host)
	}

	return smtp.SendMail(s.Host+":"+s.Port, auth, s.From, []string{to}, []byte(msg.String()))
}
