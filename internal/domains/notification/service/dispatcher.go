package service

//go:generate go run go.uber.org/mock/mockgen -source=./dispatcher.go -destination=../mocks/dispatcher_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/mail"
	"hotel/infras/metrics"
	"hotel/infras/otel"
	"hotel/internal/domains/notification/model"
	"hotel/internal/domains/notification/model/dto"
	"hotel/internal/domains/notification/repository"
	"hotel/shared/constant"
	"hotel/shared/validator"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

const channelEmail = "email"

// Dispatcher delivers notification events consumed from the broker.
type Dispatcher interface {
	Handle(ctx context.Context, message kafkaGo.Message) error
	Run(ctx context.Context) error
}

type dispatcherImpl struct {
	repo    repository.Notification
	mailer  mail.Mailer
	kafka   kafka.Client
	cfg     *config.Config
	otel    otel.Otel
	metrics *metrics.Metrics
}

func NewDispatcher(repo repository.Notification, mailer mail.Mailer, kafka kafka.Client, cfg *config.Config, otel otel.Otel, metrics *metrics.Metrics) Dispatcher {
	return &dispatcherImpl{
		repo:    repo,
		mailer:  mailer,
		kafka:   kafka,
		cfg:     cfg,
		otel:    otel,
		metrics: metrics,
	}
}

// Run consumes the notification topic until ctx is cancelled.
func (d *dispatcherImpl) Run(ctx context.Context) error {
	log.Info().Str("topic", d.cfg.Kafka.Topics.Notification).Msg("notification dispatcher started")

	if err := d.kafka.Consume(ctx, d.cfg.Kafka.ConsumerGroup, d.cfg.Kafka.Topics.Notification, d.Handle); err != nil {
		return fmt.Errorf("failed to consume notifications: %w", err)
	}

	return nil
}

// Handle sends one notification and records it. Undecodable events and failed deliveries
// are logged and acknowledged. An event already recorded is not mailed again, and once the
// mail is out the record write is retried until it lands or ctx is done.
func (d *dispatcherImpl) Handle(ctx context.Context, message kafkaGo.Message) (err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".notification.Handle")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req, err := kafka.Decode[dto.NotificationRequest](message)
	if err != nil {
		d.metrics.RecordNotification(channelEmail, metrics.OutcomeRejected)
		log.Error().Err(err).Str("key", string(message.Key)).Msg("dropping undecodable notification")

		return nil
	}

	if err = validator.ValidateStruct(&req); err != nil {
		d.metrics.RecordNotification(channelEmail, metrics.OutcomeRejected)
		log.Error().Err(err).Str("reference", req.BookingReference).Msg("dropping invalid notification")

		return nil
	}

	notification := req.ToModel()

	delivered, err := d.repo.Exist(ctx, repository.Delivered(notification))
	if err != nil {
		log.Error().Err(err).Str("reference", req.BookingReference).Msg("failed to check notification")

		return fmt.Errorf("failed to check notification: %w", err)
	}

	if delivered {
		d.metrics.RecordNotification(channelEmail, metrics.OutcomeDuplicate)
		log.Info().Str("reference", req.BookingReference).Str("recipient", req.Recipient).Msg("notification already delivered")

		return nil
	}

	if err = d.mailer.Send(ctx, req.ToEmail()); err != nil {
		d.metrics.RecordNotification(channelEmail, metrics.OutcomeFailure)
		log.Error().Err(err).Str("reference", req.BookingReference).Str("recipient", req.Recipient).Msg("failed to deliver notification")

		return nil
	}

	d.metrics.RecordNotification(channelEmail, metrics.OutcomeSuccess)

	if err = d.store(ctx, notification); err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}

	log.Info().Str("reference", req.BookingReference).Str("recipient", req.Recipient).Msg("notification delivered")

	return nil
}

func (d *dispatcherImpl) store(ctx context.Context, notification model.Notification) error {
	_, err := backoff.Retry(ctx,
		func() (struct{}, error) {
			return struct{}{}, d.repo.Insert(ctx, notification)
		},
		backoff.WithBackOff(kafka.Backoff(d.cfg)),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, wait time.Duration) {
			log.Error().Err(err).Str("reference", notification.BookingReference).Dur("retry_in", wait).Msg("failed to store notification, retrying")
		}),
	)

	return err //nolint:wrapcheck
}
