package model

import (
	"hotel/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID            = "id"
	FieldRoomNumber    = "room_number"
	FieldRoomType      = "room_type"
	FieldPricePerNight = "price_per_night"
	FieldCapacity      = "capacity"
	FieldDescription   = "description"
	FieldImageURL      = "image_url"
)

const (
	TypeSingle = "SINGLE"
	TypeDouble = "DOUBLE"
	TypeTriple = "TRIPLE"
	TypeSuite  = "SUITE"
)

// Types lists every room type in display order.
func Types() []string {
	return []string{TypeSingle, TypeDouble, TypeTriple, TypeSuite}
}

type Room struct {
	ID            int64           `db:"id"              insert:"-"`
	RoomNumber    int             `db:"room_number"`
	RoomType      string          `db:"room_type"`
	PricePerNight decimal.Decimal `db:"price_per_night"`
	Capacity      int             `db:"capacity"`
	Description   string          `db:"description"`
	ImageURL      *string         `db:"image_url"`
	model.Metadata
}

func (r Room) Exists() bool {
	return r.ID != 0
}
