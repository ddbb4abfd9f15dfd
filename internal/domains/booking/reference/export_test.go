package reference

import (
	"hotel/infras/otel"
	"hotel/internal/domains/booking/repository"
)

// NewWithCodes returns a generator that draws codes from the given sequence.
func NewWithCodes(repo repository.Reference, otel otel.Otel, codes ...string) Generator {
	next := 0

	return &generatorImpl{
		repo: repo,
		otel: otel,
		code: func() (string, error) {
			code := codes[next%len(codes)]
			next++

			return code, nil
		},
	}
}

var RandomCode = randomCode
