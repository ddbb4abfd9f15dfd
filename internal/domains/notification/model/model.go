package model

import "time"

const (
	TableName  = "notifications"
	EntityName = "notification"

	FieldID               = "id"
	FieldRecipient        = "recipient"
	FieldSubject          = "subject"
	FieldBookingReference = "booking_reference"
)

const (
	TypeEmail = "EMAIL"
)

type Notification struct {
	ID               int64     `db:"id"                insert:"-"`
	Recipient        string    `db:"recipient"`
	Subject          string    `db:"subject"`
	Body             string    `db:"body"`
	BookingReference string    `db:"booking_reference"`
	Type             string    `db:"type"`
	CreatedAt        time.Time `db:"created_at"`
}
