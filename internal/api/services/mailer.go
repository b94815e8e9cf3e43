package services

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/wneessen/go-mail"
)

var (
	ErrMailAuth      = errors.New("mail authentication failed")
	ErrMailTimeout   = errors.New("mail delivery timed out")
	ErrMailTransport = errors.New("mail delivery failed")
)

const mailTimeout = 15 * time.Second

// Mailer sends outbound notification mail over authenticated SMTP.
// Credentials come from configuration only, never from source.
type Mailer struct {
	client *mail.Client
	from   string
}

func NewMailer(host string, port int, username, password, from string) (*Mailer, error) {
	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSSLPort(false),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(username),
		mail.WithPassword(password),
		mail.WithTimeout(mailTimeout),
	)
	if err != nil {
		return nil, err
	}
	return &Mailer{client: client, from: from}, nil
}

// Send delivers one plain-text message. Reply-to is optional. Failures are
// classified into the auth/timeout/transport taxonomy so callers can show
// an accurate, non-fatal message.
func (m *Mailer) Send(ctx context.Context, to, subject, body, replyTo string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	if replyTo != "" {
		if err := msg.ReplyTo(replyTo); err != nil {
			return err
		}
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return classifyMailError(err)
	}
	return nil
}

func classifyMailError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrMailTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrMailTimeout
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "535") || strings.Contains(msg, "auth") {
		return ErrMailAuth
	}
	return ErrMailTransport
}
