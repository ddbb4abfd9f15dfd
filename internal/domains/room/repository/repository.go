package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/room/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"
	"time"
)

const bookingsTable = "bookings"

type Room interface {
	InsertReturning(ctx context.Context, model model.Room) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	FindAvailable(ctx context.Context, checkIn, checkOut time.Time, roomType string) ([]model.Room, error)
	FindByDescription(ctx context.Context, description string) ([]model.Room, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

// FindAvailable returns rooms with no active booking overlapping [checkIn, checkOut).
// An empty roomType matches every type.
func (r *repositoryImpl) FindAvailable(ctx context.Context, checkIn, checkOut time.Time, roomType string) ([]model.Room, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.FindAvailable")
	defer scope.End()

	args := map[string]any{
		"check_in":  checkIn.Format(constant.DateOnlyFormat),
		"check_out": checkOut.Format(constant.DateOnlyFormat),
	}

	typeClause := ""
	if roomType != "" {
		typeClause = fmt.Sprintf("%s.%s = :room_type AND", model.TableName, model.FieldRoomType)
		args["room_type"] = roomType
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s NOT EXISTS (
		SELECT 1 FROM %s b
		WHERE b.room_id = %s.id
		AND b.booking_status <> 'CANCELLED'
		AND b.check_in_date < :check_out
		AND b.check_out_date > :check_in
	) ORDER BY %s.id DESC`,
		r.Columns(ctx), model.TableName, typeClause, bookingsTable, model.TableName, model.TableName)

	return r.Select(ctx, query, args) //nolint:wrapcheck
}

// FindByDescription matches the description exactly, ignoring case.
func (r *repositoryImpl) FindByDescription(ctx context.Context, description string) ([]model.Room, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.FindByDescription")
	defer scope.End()

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldDescription,
				Operator: gDto.FilterOperatorEqIgnoreCase,
				Value:    description,
				Table:    model.TableName,
			},
		},
	}

	params := gDto.QueryParams{SortBy: model.FieldID, SortDir: gDto.SortDirDesc}

	return r.GetAll(ctx, params, filter) //nolint:wrapcheck
}
