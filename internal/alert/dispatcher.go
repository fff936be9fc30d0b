package alert

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rileyhilliard/vitals/internal/config"
	"github.com/rileyhilliard/vitals/internal/errors"
	"github.com/rileyhilliard/vitals/internal/logger"
	"github.com/rileyhilliard/vitals/internal/monitor"
	"github.com/rileyhilliard/vitals/internal/ui"
)

// Sender delivers a composed message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Dispatcher turns a server's issues into an email.
type Dispatcher struct {
	email  *config.EmailConfig
	sender Sender
	out    io.Writer
	log    logger.Logger
	now    func() time.Time
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithSender replaces the SMTP sender.
func WithSender(s Sender) Option {
	return func(d *Dispatcher) { d.sender = s }
}

// WithOutput sets where status lines are written. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(d *Dispatcher) { d.out = w }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l logger.Logger) Option {
	return func(d *Dispatcher) { d.log = l }
}

// WithClock overrides the time source used in the message body.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) { d.now = now }
}

// NewDispatcher creates a Dispatcher. email may be nil, in which case every
// alert is skipped with a note.
func NewDispatcher(email *config.EmailConfig, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		email: email,
		out:   os.Stdout,
		log:   logger.Noop(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.sender == nil && email != nil {
		d.sender = NewSMTPSender(email)
	}
	return d
}

// SendAlert emails the issues for serverName. It never fails: a missing
// email configuration or a delivery error is reported on the output.
func (d *Dispatcher) SendAlert(ctx context.Context, serverName string, issues []monitor.Result) {
	if d.email == nil {
		fmt.Fprintln(d.out, ui.RenderNote("No email config - skipping alert"))
		return
	}

	msg := Message{
		From:    d.email.From,
		To:      d.email.Recipients(),
		Subject: Subject(serverName),
		Body:    Body(serverName, issues, d.now()),
	}

	d.log.Debug("sending alert for %s to %v via %s:%d", serverName, msg.To, d.email.SMTPServer, d.email.SMTPPort)
	if err := d.sender.Send(ctx, msg); err != nil {
		d.log.Error("alert for %s not delivered: %v", serverName, err)
		fmt.Fprintln(d.out, ui.RenderFailure("Failed to send alert: "+errors.Brief(err)))
		return
	}

	fmt.Fprintln(d.out, ui.RenderNote("Alert sent to "+d.email.To))
}

var _ monitor.Alerter = (*Dispatcher)(nil)
