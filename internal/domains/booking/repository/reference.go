package repository

//go:generate go run go.uber.org/mock/mockgen -source=./reference.go -destination=../mocks/reference_repository_mock.go -package=mocks

import (
	"context"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/booking/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"
)

// Reference stores every booking reference ever allocated.
type Reference interface {
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Insert(ctx context.Context, model model.BookingReference) error
}

type referenceImpl struct {
	gRepo.Repository[model.BookingReference]
}

func NewReference(db *postgres.Connection, otel otel.Otel) Reference {
	return &referenceImpl{
		Repository: gRepo.NewRepository[model.BookingReference](model.ReferenceEntityName, model.ReferenceTableName, model.FieldID, db, otel),
	}
}

func ByReferenceNumber(reference string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldReferenceNumber, Operator: gDto.FilterOperatorEq, Value: reference, Table: model.ReferenceTableName},
		},
	}
}
