package user

import (
	"errors"
	"time"

	userDatamodel "github.com/frahmantamala/finance-dashboard/internal/core/datamodel/user"
)

// User is the public shape of an account. The password hash never leaves
// the datamodel layer.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	ShareCode string    `json:"shareCode"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var ErrNotFound = errors.New("user not found")

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		ShareCode: u.ShareCode,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
