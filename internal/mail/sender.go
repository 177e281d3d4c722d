package mail

import (
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

// Sender delivers a single plain-text email.
type Sender interface {
	Send(to, subject, body string) error
}

// SMTPSender speaks to a plain SMTP relay. Auth is optional: with an
// empty user it connects unauthenticated (mailhog, local postfix).
type SMTPSender struct {
	Addr string // host:port
	From string
	User string
	Pass string
}

func (s *SMTPSender) Send(to, subject, body string) error {
	var auth smtp.Auth
	if s.User != "" {
		host := s.Addr
		if i := strings.LastIndex(host, ":"); i >= 0 {
			host = host[:i]
		}
		auth = smtp.PlainAuth("", s.User, s.Pass, host)
	}

	msg := strings.Join([]string{
		"From: " + s.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(s.Addr, auth, s.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}

// LogSender writes the message to the log instead of the wire. Used when
// no SMTP relay is configured.
type LogSender struct {
	Log *zap.Logger
}

func (s *LogSender) Send(to, subject, body string) error {
	s.Log.Info("mail (dry run)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body))
	return nil
}
