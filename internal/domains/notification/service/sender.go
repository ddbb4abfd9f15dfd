package service

//go:generate go run go.uber.org/mock/mockgen -source=./sender.go -destination=../mocks/sender_mock.go -package=mocks

import (
	"context"
	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/metrics"
	"hotel/infras/otel"
	"hotel/internal/domains/notification/model/dto"
	"hotel/shared/constant"

	"github.com/rs/zerolog/log"
)

const channelKafka = "kafka"

// Sender hands notifications off for delivery. Send never blocks on the broker and never fails the caller.
type Sender interface {
	Send(ctx context.Context, req dto.NotificationRequest)
}

type senderImpl struct {
	kafka   kafka.Client
	cfg     *config.Config
	otel    otel.Otel
	metrics *metrics.Metrics
}

func NewSender(kafka kafka.Client, cfg *config.Config, otel otel.Otel, metrics *metrics.Metrics) Sender {
	return &senderImpl{
		kafka:   kafka,
		cfg:     cfg,
		otel:    otel,
		metrics: metrics,
	}
}

func (s *senderImpl) Send(ctx context.Context, req dto.NotificationRequest) {
	go func() {
		c := context.WithoutCancel(ctx)

		c, scope := s.otel.NewScope(c, constant.OtelEventScopeName, constant.OtelEventScopeName+".notification.Send")
		defer scope.End()

		req.Type = req.ChannelType()

		err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.Notification, kafka.Message{
			Key:   req.BookingReference,
			Value: req,
		})
		if err != nil {
			scope.TraceError(err)
			s.metrics.RecordNotification(channelKafka, metrics.OutcomeFailure)
			log.Error().Err(err).Str("reference", req.BookingReference).Msg("failed to publish notification")

			return
		}

		s.metrics.RecordNotification(channelKafka, metrics.OutcomeSuccess)
	}()
}
