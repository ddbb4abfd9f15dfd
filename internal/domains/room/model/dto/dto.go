package dto

import (
	"mime/multipart"

	"hotel/internal/domains/room/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/shopspring/decimal"
)

type CreateRoomRequest struct {
	RoomNumber    int                   `json:"room_number"     validate:"required,min=1"`
	RoomType      string                `json:"room_type"       validate:"required,oneof=SINGLE DOUBLE TRIPLE SUITE"`
	PricePerNight decimal.Decimal       `json:"price_per_night" validate:"gt=0"`
	Capacity      int                   `json:"capacity"        validate:"required,min=1"`
	Description   string                `json:"description"     validate:"omitempty,max=1000"`
	Image         *multipart.FileHeader `json:"-"               validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
}

// ImageUpload carries the same image rules as the room requests for callers that bypass the handlers.
type ImageUpload struct {
	Image *multipart.FileHeader `json:"image" validate:"required,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
}

func (c *CreateRoomRequest) ToModel(user string, imageURL *string) model.Room {
	now := timezone.Now()

	return model.Room{
		RoomNumber:    c.RoomNumber,
		RoomType:      c.RoomType,
		PricePerNight: c.PricePerNight,
		Capacity:      c.Capacity,
		Description:   c.Description,
		ImageURL:      imageURL,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// UpdateRoomRequest applies every non-zero field. ImageURL is filled by the service after an upload.
type UpdateRoomRequest struct {
	RoomNumber    int                   `db:"room_number"     json:"room_number,omitempty"     validate:"omitempty,min=1"`
	RoomType      string                `db:"room_type"       json:"room_type,omitempty"       validate:"omitempty,oneof=SINGLE DOUBLE TRIPLE SUITE"`
	PricePerNight *decimal.Decimal      `db:"price_per_night" json:"price_per_night,omitempty" validate:"omitempty,gt=0"`
	Capacity      int                   `db:"capacity"        json:"capacity,omitempty"        validate:"omitempty,min=1"`
	Description   string                `db:"description"     json:"description,omitempty"     validate:"omitempty,max=1000"`
	ImageURL      string                `db:"image_url"       json:"-"`
	Image         *multipart.FileHeader `db:"-"               json:"-"                     validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
}

type AvailableRoomsRequest struct {
	CheckInDate  string `json:"check_in_date"  validate:"required,datetime=2006-01-02"`
	CheckOutDate string `json:"check_out_date" validate:"required,datetime=2006-01-02"`
	RoomType     string `json:"room_type"      validate:"omitempty,oneof=SINGLE DOUBLE TRIPLE SUITE"`
}

type RoomResponse struct {
	ID            int64           `json:"id"`
	RoomNumber    int             `json:"room_number"`
	RoomType      string          `json:"room_type"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
	Capacity      int             `json:"capacity"`
	Description   string          `json:"description"`
	ImageURL      *string         `json:"image_url,omitempty"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.RoomNumber = model.RoomNumber
	r.RoomType = model.RoomType
	r.PricePerNight = model.PricePerNight
	r.Capacity = model.Capacity
	r.Description = model.Description

	if model.ImageURL != nil {
		url := *model.ImageURL
		r.ImageURL = &url
	}

	r.Metadata.FromModel(model.Metadata)
}

// ToModel maps the view back onto a room. Audit metadata is not carried back.
func (r *RoomResponse) ToModel() model.Room {
	room := model.Room{
		ID:            r.ID,
		RoomNumber:    r.RoomNumber,
		RoomType:      r.RoomType,
		PricePerNight: r.PricePerNight,
		Capacity:      r.Capacity,
		Description:   r.Description,
	}

	if r.ImageURL != nil {
		url := *r.ImageURL
		room.ImageURL = &url
	}

	return room
}

func FromModels(models []model.Room) []RoomResponse {
	res := make([]RoomResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)
	r.Rooms = FromModels(models)
}
