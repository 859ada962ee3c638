package auth

import (
	"fmt"
	"strings"

	"github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/internal/core/common/validation"
	"github.com/frahmantamala/office-management/internal/user"
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

type SignUpDTO struct {
	FullName         string `json:"fullName" validate:"required"`
	OrganizationName string `json:"organizationName" validate:"required"`
	Email            string `json:"email" validate:"required"`
	PhoneNo          string `json:"phoneNo" validate:"required"`
	Password         string `json:"password" validate:"required"`
}

func (d *SignUpDTO) Normalize() {
	d.FullName = strings.TrimSpace(d.FullName)
	d.OrganizationName = strings.TrimSpace(d.OrganizationName)
	d.Email = normalizeEmail(d.Email)
	d.PhoneNo = strings.TrimSpace(d.PhoneNo)
}

func (d SignUpDTO) Validate() error {
	if err := validation.Struct(d); err != nil {
		return err
	}
	v := validation.NewValidator()
	v.Field("password", d.Password).Custom(passwordFitsBcrypt)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// passwordFitsBcrypt counts bytes, not runes.
func passwordFitsBcrypt(value interface{}) *internal.AppError {
	if password, ok := value.(string); ok && len(password) > MaxPasswordBytes {
		message := fmt.Sprintf("password must not exceed %d bytes", MaxPasswordBytes)
		return internal.NewValidationFieldError("password", message, internal.ErrCodeValidationFailed)
	}
	return nil
}

// normalizeEmail makes addresses compare without regard to case.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type SignInDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (d *SignInDTO) Normalize() {
	d.Email = normalizeEmail(d.Email)
}

func (d SignInDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("email", d.Email).Required()
	v.Field("password", d.Password).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refreshToken"`
}

func (d RefreshTokenDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("refreshToken", d.RefreshToken).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// AuthResult is what sign-up and sign-in hand back to the client.
type AuthResult struct {
	User  *user.User `json:"user"`
	Token AuthTokens `json:"token"`
}
