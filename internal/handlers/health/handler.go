package health

import (
	"context"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/shared/constant"
	"hotel/transport/http/response"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	statusUp   = "up"
	statusDown = "down"

	pingTimeout = 2 * time.Second
)

type Status struct {
	Status   string `json:"status"`
	Postgres string `json:"postgres"`
	Redis    string `json:"redis"`
}

type Handler struct {
	db    *postgres.Connection
	redis *redis.Client
	otel  otel.Otel
}

func New(db *postgres.Connection, redis *redis.Client, otel otel.Otel) Handler {
	return Handler{
		db:    db,
		redis: redis,
		otel:  otel,
	}
}

// Check reports whether the database and the cache answer a ping.
// @Summary Health check
// @Description Ping Postgres and Redis.
// @Tags Health
// @Produce json
// @Success 200 {object} response.Data[Status]
// @Failure 503 {object} response.Data[Status]
// @Router /health [get]
func (handler *Handler) Check(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".HealthCheck")
	defer scope.End()

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	status := Status{Status: statusUp, Postgres: statusUp, Redis: statusUp}

	if err := handler.db.Write.PingContext(ctx); err != nil {
		log.Error().Err(err).Msg("postgres health check failed")

		status.Postgres = statusDown
		status.Status = statusDown
	}

	if err := handler.redis.Ping(ctx).Err(); err != nil {
		log.Error().Err(err).Msg("redis health check failed")

		status.Redis = statusDown
		status.Status = statusDown
	}

	code := http.StatusOK
	if status.Status == statusDown {
		code = http.StatusServiceUnavailable
	}

	scope.SetAttribute("health.status", status.Status)

	response.WithJSON(writer, code, status)
}
