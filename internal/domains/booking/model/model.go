package model

import (
	"hotel/shared/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID               = "id"
	FieldUserID           = "user_id"
	FieldRoomID           = "room_id"
	FieldCheckInDate      = "check_in_date"
	FieldCheckOutDate     = "check_out_date"
	FieldTotalPrice       = "total_price"
	FieldBookingReference = "booking_reference"
	FieldPaymentStatus    = "payment_status"
	FieldBookingStatus    = "booking_status"
)

const (
	ReferenceTableName  = "booking_references"
	ReferenceEntityName = "booking_reference"

	FieldReferenceNumber = "reference_number"
)

const (
	PaymentPending  = "PENDING"
	PaymentPaid     = "PAID"
	PaymentFailed   = "FAILED"
	PaymentRefunded = "REFUNDED"
	PaymentReversed = "REVERSED"
)

const (
	StatusBooked     = "BOOKED"
	StatusCheckedIn  = "CHECKED_IN"
	StatusCheckedOut = "CHECKED_OUT"
	StatusCancelled  = "CANCELLED"
	StatusCompleted  = "COMPLETED"
)

type Booking struct {
	ID               int64           `db:"id"                insert:"-"`
	UserID           int64           `db:"user_id"`
	RoomID           int64           `db:"room_id"`
	CheckInDate      time.Time       `db:"check_in_date"`
	CheckOutDate     time.Time       `db:"check_out_date"`
	TotalPrice       decimal.Decimal `db:"total_price"`
	BookingReference string          `db:"booking_reference"`
	PaymentStatus    string          `db:"payment_status"`
	BookingStatus    string          `db:"booking_status"`
	model.Metadata
}

func (b Booking) Exists() bool {
	return b.ID != 0
}

// BookingReference records an allocated reference code so it is never handed out twice.
type BookingReference struct {
	ID              int64     `db:"id"               insert:"-"`
	ReferenceNumber string    `db:"reference_number"`
	CreatedAt       time.Time `db:"created_at"`
}
