package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/booking/model"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/logger"
	gRepo "hotel/shared/repository"
	"time"

	"github.com/jmoiron/sqlx"
)

var (
	ErrRoomUnavailable = errors.New("room is already booked for the requested dates")
	ErrRoomNotFound    = errors.New("room not found")
)

const (
	argCheckIn  = "check_in"
	argCheckOut = "check_out"
)

type Booking interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	IsRoomAvailable(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (bool, error)
	Reserve(ctx context.Context, booking model.Booking) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

// IsRoomAvailable reports whether no active booking of the room overlaps [checkIn, checkOut).
func (r *repositoryImpl) IsRoomAvailable(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.IsRoomAvailable")
	defer scope.End()

	taken, err := r.Exist(ctx, Overlapping(roomID, checkIn, checkOut))
	if err != nil {
		scope.TraceError(err)

		return false, err //nolint:wrapcheck
	}

	return !taken, nil
}

// Reserve locks the room row, re-checks for overlaps and inserts the booking in one transaction.
// Overlaps found here or rejected by the exclusion constraint return ErrRoomUnavailable.
func (r *repositoryImpl) Reserve(ctx context.Context, booking model.Booking) (id int64, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Reserve")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	lockQuery := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 FOR UPDATE", roomModel.FieldID, roomModel.TableName, roomModel.FieldID)
	overlapQuery := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1 AND %s <> $2 AND %s < $3 AND %s > $4)`,
		model.TableName, model.FieldRoomID, model.FieldBookingStatus, model.FieldCheckInDate, model.FieldCheckOutDate)

	err = r.Transaction(ctx, func(tx *sqlx.Tx) error {
		var lockedID int64

		if err := tx.GetContext(ctx, &lockedID, lockQuery, booking.RoomID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrRoomNotFound
			}

			logger.ErrorWithStack(err)

			return fmt.Errorf("failed to lock room (%s): %w", model.EntityName, err)
		}

		var overlapping bool

		err := tx.GetContext(ctx, &overlapping, overlapQuery,
			booking.RoomID, model.StatusCancelled, booking.CheckOutDate, booking.CheckInDate)
		if err != nil {
			logger.ErrorWithStack(err)

			return fmt.Errorf("failed to check overlapping bookings (%s): %w", model.EntityName, err)
		}

		if overlapping {
			return ErrRoomUnavailable
		}

		id, err = r.InsertReturningTx(ctx, tx, booking)

		return err //nolint:wrapcheck
	})
	if err != nil {
		if gRepo.IsViolation(err, constant.PqErrorCodeExclusionViolation) {
			return 0, ErrRoomUnavailable
		}

		return 0, err //nolint:wrapcheck
	}

	return id, nil
}


// Overlapping matches active bookings of the room that intersect [checkIn, checkOut).
func Overlapping(roomID int64, checkIn, checkOut time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldRoomID, Operator: gDto.FilterOperatorEq, Value: roomID, Table: model.TableName},
			gDto.Filter{Field: model.FieldBookingStatus, Operator: gDto.FilterOperatorNotEq, Value: model.StatusCancelled, Table: model.TableName},
			gDto.Filter{
				ArgName:  argCheckOut,
				Field:    model.FieldCheckInDate,
				Operator: gDto.FilterOperatorLess,
				Value:    checkOut.Format(constant.DateOnlyFormat),
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  argCheckIn,
				Field:    model.FieldCheckOutDate,
				Operator: gDto.FilterOperatorGreater,
				Value:    checkIn.Format(constant.DateOnlyFormat),
				Table:    model.TableName,
			},
		},
	}
}

func ByReference(reference string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldBookingReference, Operator: gDto.FilterOperatorEq, Value: reference, Table: model.TableName},
		},
	}
}

func ByUser(userID int64) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldUserID, Operator: gDto.FilterOperatorEq, Value: userID, Table: model.TableName},
		},
	}
}
