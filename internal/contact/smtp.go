package contact

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTP mails submissions to the owner's inbox.
type SMTP struct {
	Host string
	Port string
	User string
	Pass string
	To   string

	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTP(host, port, user, pass, to string) *SMTP {
	return &SMTP{Host: host, Port: port, User: user, Pass: pass, To: to, sendMail: smtp.SendMail}
}

func (s *SMTP) Send(_ context.Context, m Message) error {
	if s.User == "" || s.Pass == "" {
		return errors.New("SMTP credentials not configured")
	}

	auth := smtp.PlainAuth("", s.User, s.Pass, s.Host)
	if err := s.sendMail(s.Host+":"+s.Port, auth, s.User, []string{s.To}, s.compose(m)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

func (s *SMTP) compose(m Message) []byte {
	subject := fmt.Sprintf("Portfolio Contact: %s", headerSafe(m.Name))
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, m.Name, m.Email, m.Body)

	return []byte("To: " + s.To + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + s.User + "\r\n" +
		"Reply-To: " + headerSafe(m.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")
}

// headerSafe drops line breaks so visitor input cannot add headers.
func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
