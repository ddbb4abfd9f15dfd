package dto

import (
	"hotel/internal/domains/booking/model"
	roomDto "hotel/internal/domains/room/model/dto"
	userDto "hotel/internal/domains/user/model/dto"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"
	"time"

	"github.com/shopspring/decimal"
)

const (
	MsgBookingCreated = "booking created successfully"
	MsgBookingUpdated = "Booking updated successfully"
)

type CreateBookingRequest struct {
	RoomID       int64  `json:"room_id"        validate:"required,min=1"`
	CheckInDate  string `json:"check_in_date"  validate:"required,datetime=2006-01-02"`
	CheckOutDate string `json:"check_out_date" validate:"required,datetime=2006-01-02"`
}

// Stay carries the parsed dates of a create request.
type Stay struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func ToModel(userID, roomID int64, stay Stay, total decimal.Decimal, reference, user string) model.Booking {
	now := timezone.Now()

	return model.Booking{
		UserID:           userID,
		RoomID:           roomID,
		CheckInDate:      stay.CheckIn,
		CheckOutDate:     stay.CheckOut,
		TotalPrice:       total,
		BookingReference: reference,
		PaymentStatus:    model.PaymentPending,
		BookingStatus:    model.StatusBooked,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// UpdateBookingRequest changes only the statuses that are set.
type UpdateBookingRequest struct {
	ID            int64  `db:"-"              json:"id"`
	BookingStatus string `db:"booking_status" json:"booking_status,omitempty" validate:"omitempty,oneof=BOOKED CHECKED_IN CHECKED_OUT CANCELLED COMPLETED"`
	PaymentStatus string `db:"payment_status" json:"payment_status,omitempty" validate:"omitempty,oneof=PENDING PAID FAILED REFUNDED REVERSED"`
}

func (u UpdateBookingRequest) HasChanges() bool {
	return u.BookingStatus != constant.Empty || u.PaymentStatus != constant.Empty
}

type BookingResponse struct {
	ID               int64                 `json:"id"`
	BookingReference string                `json:"booking_reference"`
	CheckInDate      string                `json:"check_in_date"`
	CheckOutDate     string                `json:"check_out_date"`
	TotalPrice       decimal.Decimal       `json:"total_price"`
	PaymentStatus    string                `json:"payment_status"`
	BookingStatus    string                `json:"booking_status"`
	CreatedAt        string                `json:"created_at"`
	User             *userDto.UserResponse `json:"user,omitempty"`
	Room             *roomDto.RoomResponse `json:"room,omitempty"`
}

// FromModel fills the minimal view.
func (b *BookingResponse) FromModel(model model.Booking) {
	b.ID = model.ID
	b.BookingReference = model.BookingReference
	b.CheckInDate = model.CheckInDate.Format(constant.DateOnlyFormat)
	b.CheckOutDate = model.CheckOutDate.Format(constant.DateOnlyFormat)
	b.TotalPrice = model.TotalPrice
	b.PaymentStatus = model.PaymentStatus
	b.BookingStatus = model.BookingStatus
	b.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
}

// WithDetails attaches the user and room views for the full booking view.
func (b *BookingResponse) WithDetails(user *userDto.UserResponse, room *roomDto.RoomResponse) {
	b.User = user
	b.Room = room
}

func FromModels(models []model.Booking) []BookingResponse {
	res := make([]BookingResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)
	r.Bookings = FromModels(models)
}

// ListParams keeps pagination from the request on top of the fixed newest-first ordering.
func ListParams(params gDto.QueryParams) gDto.QueryParams {
	params.SortBy = model.FieldID
	params.SortDir = gDto.SortDirDesc

	return params
}
