package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/notification/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"
)

type Notification interface {
	Insert(ctx context.Context, model model.Notification) error
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Notification, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Notification]
}

func New(db *postgres.Connection, otel otel.Otel) Notification {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Notification](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// Delivered matches records of the same message already sent to the recipient for a booking.
func Delivered(notification model.Notification) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldBookingReference, Operator: gDto.FilterOperatorEq, Value: notification.BookingReference, Table: model.TableName},
			gDto.Filter{Field: model.FieldRecipient, Operator: gDto.FilterOperatorEq, Value: notification.Recipient, Table: model.TableName},
			gDto.Filter{Field: model.FieldSubject, Operator: gDto.FilterOperatorEq, Value: notification.Subject, Table: model.TableName},
		},
	}
}
