package user

import (
	"errors"
	"time"

	userDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/user"
)

// User is the account owning employees, tasks and files.
type User struct {
	ID               int64     `json:"id"`
	FullName         string    `json:"fullName"`
	OrganizationName string    `json:"organizationName"`
	Email            string    `json:"email"`
	PhoneNo          string    `json:"phoneNo"`
	PasswordHash     string    `json:"-"`
	CreatedAt        time.Time `json:"createdAt"`
}

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:               u.ID,
		FullName:         u.FullName,
		OrganizationName: u.OrganizationName,
		Email:            u.Email,
		PhoneNo:          u.PhoneNo,
		PasswordHash:     u.PasswordHash,
		CreatedAt:        u.CreatedAt,
	}
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:               u.ID,
		FullName:         u.FullName,
		OrganizationName: u.OrganizationName,
		Email:            u.Email,
		PhoneNo:          u.PhoneNo,
		PasswordHash:     u.PasswordHash,
		CreatedAt:        u.CreatedAt,
	}
}
