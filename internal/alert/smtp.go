package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/rileyhilliard/vitals/internal/config"
	"github.com/rileyhilliard/vitals/internal/errors"
)

// DefaultSMTPTimeout bounds the whole SMTP conversation.
const DefaultSMTPTimeout = 30 * time.Second

// SMTPSender submits messages to a relay using STARTTLS and PLAIN auth.
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	timeout  time.Duration
}

// NewSMTPSender creates a sender from the email configuration.
func NewSMTPSender(email *config.EmailConfig) *SMTPSender {
	port := email.SMTPPort
	if port == 0 {
		port = config.DefaultSMTPPort
	}
	return &SMTPSender{
		host:     email.SMTPServer,
		port:     port,
		username: email.Username,
		password: email.Password,
		timeout:  DefaultSMTPTimeout,
	}
}

// Send delivers msg. The connection is upgraded with STARTTLS before
// credentials are sent; a relay that doesn't offer it is an error.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m, err := buildMsg(msg)
	if err != nil {
		return err
	}

	opts := []mail.Option{
		mail.WithPort(s.port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTimeout(s.timeout),
	}
	if s.username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.username),
			mail.WithPassword(s.password),
		)
	}

	client, err := mail.NewClient(s.host, opts...)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrAlert,
			fmt.Sprintf("Couldn't set up SMTP client for %s:%d", s.host, s.port),
			"Check email.smtp_server and email.smtp_port in the config file.")
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return errors.WrapWithCode(err, errors.ErrAlert,
			fmt.Sprintf("Couldn't deliver alert through %s:%d", s.host, s.port),
			"Check the relay address, that it supports STARTTLS, and the SMTP credentials.")
	}
	return nil
}

func buildMsg(msg Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrAlert,
			fmt.Sprintf("Invalid sender address '%s'", msg.From),
			"Set email.from to a valid address.")
	}
	if len(msg.To) == 0 {
		return nil, errors.New(errors.ErrAlert, "Alert has no recipients",
			"Set email.to to one or more comma-separated addresses.")
	}
	if err := m.To(msg.To...); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrAlert,
			"Invalid recipient address",
			"Set email.to to one or more comma-separated addresses.")
	}
	m.Subject(msg.Subject)
	m.SetDate()
	m.SetBodyString(mail.TypeTextPlain, msg.Body)
	return m, nil
}

var _ Sender = (*SMTPSender)(nil)
