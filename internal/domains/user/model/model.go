package model

import "hotel/shared/model"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID          = "id"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldFirstName   = "first_name"
	FieldLastName    = "last_name"
	FieldPhoneNumber = "phone_number"
	FieldRole        = "role"
	FieldActive      = "active"
)

type User struct {
	ID          int64  `db:"id"           insert:"-"`
	Email       string `db:"email"`
	Password    string `db:"password"`
	FirstName   string `db:"first_name"`
	LastName    string `db:"last_name"`
	PhoneNumber string `db:"phone_number"`
	Role        string `db:"role"`
	Active      bool   `db:"active"`
	model.Metadata
}

// Exists reports whether the model was loaded from a row.
func (u User) Exists() bool {
	return u.ID != 0
}
