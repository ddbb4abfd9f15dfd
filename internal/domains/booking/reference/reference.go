// Package reference allocates short unique booking codes.
package reference

//go:generate go run go.uber.org/mock/mockgen -source=./reference.go -destination=../mocks/reference_mock.go -package=mocks

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"hotel/infras/otel"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/repository"
	"hotel/shared/constant"
	gRepo "hotel/shared/repository"
	"hotel/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	Length      = 10
	Alphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	maxAttempts = 10
)

var ErrExhausted = errors.New("could not allocate a unique booking reference")

type Generator interface {
	Generate(ctx context.Context) (string, error)
}

type generatorImpl struct {
	repo repository.Reference
	otel otel.Otel
	code func() (string, error)
}

func New(repo repository.Reference, otel otel.Otel) Generator {
	return &generatorImpl{
		repo: repo,
		otel: otel,
		code: randomCode,
	}
}

// Generate draws codes until one is unused, then records it. A concurrent insert of the
// same code surfaces as a unique violation and counts as a collision.
func (g *generatorImpl) Generate(ctx context.Context) (ref string, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reference.Generate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		ref, err = g.code()
		if err != nil {
			return constant.Empty, fmt.Errorf("failed to draw booking reference: %w", err)
		}

		taken, err := g.repo.Exist(ctx, repository.ByReferenceNumber(ref))
		if err != nil {
			log.Error().Err(err).Msg("failed to check booking reference")

			return constant.Empty, fmt.Errorf("failed to check booking reference: %w", err)
		}

		if taken {
			log.Debug().Str("reference", ref).Int("attempt", attempt).Msg("booking reference collision")

			continue
		}

		err = g.repo.Insert(ctx, model.BookingReference{ReferenceNumber: ref, CreatedAt: timezone.Now()})
		if err == nil {
			return ref, nil
		}

		if !gRepo.IsViolation(err, constant.PqErrorCodeUniqueViolation) {
			log.Error().Err(err).Msg("failed to store booking reference")

			return constant.Empty, fmt.Errorf("failed to store booking reference: %w", err)
		}
	}

	return constant.Empty, ErrExhausted
}

func randomCode() (string, error) {
	limit := big.NewInt(int64(len(Alphabet)))
	code := make([]byte, Length)

	for i := range code {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return constant.Empty, err //nolint:wrapcheck
		}

		code[i] = Alphabet[n.Int64()]
	}

	return string(code), nil
}

