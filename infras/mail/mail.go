package mail

//go:generate go run go.uber.org/mock/mockgen -source=./mail.go -destination=./mocks/mail_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/shared/constant"

	"github.com/rs/zerolog/log"
	goMail "github.com/wneessen/go-mail"
)

const otelAttrRecipient = "recipient"

var ErrNotConfigured = errors.New("smtp host is not configured")

type Email struct {
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, email Email) error
}

type smtpMailer struct {
	config *config.Config
	otel   otel.Otel
}

func New(cfg *config.Config, ot otel.Otel) Mailer {
	return &smtpMailer{
		config: cfg,
		otel:   ot,
	}
}

func (m *smtpMailer) Send(ctx context.Context, email Email) (err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelMailScopeName, constant.OtelMailScopeName+".Send")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelAttrRecipient, email.To)

	smtpCfg := m.config.External.SMTP
	if smtpCfg.Host == "" {
		return ErrNotConfigured
	}

	msg, err := buildMessage(smtpCfg.From, email)
	if err != nil {
		return err
	}

	opts := []goMail.Option{
		goMail.WithPort(smtpCfg.Port),
		goMail.WithTLSPortPolicy(goMail.TLSOpportunistic),
	}

	if smtpCfg.Username != "" {
		opts = append(opts,
			goMail.WithSMTPAuth(goMail.SMTPAuthPlain),
			goMail.WithUsername(smtpCfg.Username),
			goMail.WithPassword(smtpCfg.Password),
		)
	}

	client, err := goMail.NewClient(smtpCfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}

	if err = client.DialAndSendWithContext(ctx, msg); err != nil {
		log.Error().Err(err).Str("to", email.To).Msg("failed to send email")

		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Info().Str("to", email.To).Str("subject", email.Subject).Msg("email sent")

	return nil
}

func buildMessage(from string, email Email) (*goMail.Msg, error) {
	msg := goMail.NewMsg()

	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}

	if err := msg.To(email.To); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}

	msg.Subject(email.Subject)
	msg.SetBodyString(goMail.TypeTextPlain, email.Body)

	return msg, nil
}
