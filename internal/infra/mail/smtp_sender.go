package mail

import (
	"context"
	"crypto/tls"
	"log/slog"
	"net"
	"time"

	"contactbook/config"
	"contactbook/internal/domain/service"
	"contactbook/internal/errors"

	"github.com/google/uuid"
	gomail "github.com/wneessen/go-mail"
)

const dialTimeout = 15 * time.Second

// SMTPSender renders messages and delivers them to an SMTP relay.
type SMTPSender struct {
	cfg      config.SMTPConfig
	options  []gomail.Option
	renderer *Renderer
	logger   *slog.Logger
}

var _ service.MailSender = (*SMTPSender)(nil)

func NewSMTPSender(cfg config.SMTPConfig, renderer *Renderer, logger *slog.Logger) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, errors.New("smtp host is required")
	}
	if cfg.From == "" {
		return nil, errors.New("smtp from address is required")
	}

	return &SMTPSender{
		cfg:      cfg,
		options:  clientOptions(cfg),
		renderer: renderer,
		logger:   logger,
	}, nil
}

// clientOptions maps the relay settings onto go-mail. SSL dials TLS directly,
// StartTLS requires the upgrade, and with neither the session stays plain.
func clientOptions(cfg config.SMTPConfig) []gomail.Option {
	opts := []gomail.Option{
		gomail.WithTimeout(dialTimeout),
		gomail.WithTLSConfig(&tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}),
	}
	if cfg.Port > 0 {
		opts = append(opts, gomail.WithPort(cfg.Port))
	}

	switch {
	case cfg.SSL:
		opts = append(opts, gomail.WithSSL())
	case cfg.StartTLS:
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	default:
		opts = append(opts, gomail.WithTLSPolicy(gomail.NoTLS))
	}

	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	return opts
}

// Send renders msg and delivers it. Failures worth retrying are reported by IsTransient.
func (s *SMTPSender) Send(ctx context.Context, msg *service.MailMessage) error {
	body, err := s.renderer.Render(msg.Template, msg.Variables)
	if err != nil {
		return err
	}

	m, err := s.newMessage(msg.Recipient, msg.Subject, body)
	if err != nil {
		return err
	}

	// One client per send: the worker delivers concurrently and go-mail
	// clients hold a single connection.
	client, err := gomail.NewClient(s.cfg.Host, s.options...)
	if err != nil {
		return errors.Wrap(err, "create smtp client")
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return errors.Wrapf(err, "deliver via %s", s.cfg.Host)
	}

	s.logger.Info("Mail sent",
		slog.String("template", msg.Template),
		slog.String("request_id", msg.RequestID),
	)

	return nil
}

func (s *SMTPSender) Close() error {
	return nil
}

func (s *SMTPSender) newMessage(to, subject, htmlBody string) (*gomail.Msg, error) {
	m := gomail.NewMsg()
	if err := m.FromFormat(s.cfg.FromName, s.cfg.From); err != nil {
		return nil, errors.Wrapf(err, "invalid sender %q", s.cfg.From)
	}
	if err := m.To(to); err != nil {
		return nil, errors.Wrapf(err, "invalid recipient %q", to)
	}
	m.Subject(subject)
	m.SetDate()
	m.SetMessageIDWithValue(uuid.NewString() + "@" + s.cfg.Host)
	m.SetBodyString(gomail.TypeTextHTML, htmlBody)

	return m, nil
}

// IsTransient reports whether a Send failure may succeed on retry: relay
// replies go-mail marks temporary (4xx), network failures and deadlines.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var sendErr *gomail.SendError
	if errors.As(err, &sendErr) && sendErr.IsTemp() {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return errors.Is(err, context.DeadlineExceeded)
}
