package dto

import (
	"hotel/internal/domains/user/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
)

type UserResponse struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role"`
	Active      bool   `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.FirstName = model.FirstName
	r.LastName = model.LastName
	r.PhoneNumber = model.PhoneNumber
	r.Role = model.Role
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

// UpdateProfileRequest holds the account fields a user may change on their own profile.
type UpdateProfileRequest struct {
	FirstName   string `db:"first_name"   json:"first_name,omitempty"   validate:"omitempty,max=100"`
	LastName    string `db:"last_name"    json:"last_name,omitempty"    validate:"omitempty,max=100"`
	PhoneNumber string `db:"phone_number" json:"phone_number,omitempty" validate:"omitempty,max=20"`
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
