package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	apperrors "github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/internal/core/common/date"
	"github.com/go-playground/validator/v10"
)

type ValidatorFunc func(interface{}) *apperrors.AppError

type FieldValidator struct {
	FieldName  string
	Value      interface{}
	Validators []ValidatorFunc
}

// ValidationBuilder collects field checks and reports all failures at once.
type ValidationBuilder struct {
	fields []*FieldValidator
}

func NewValidator() *ValidationBuilder {
	return &ValidationBuilder{
		fields: make([]*FieldValidator, 0),
	}
}

func (v *ValidationBuilder) Field(name string, value interface{}) *FieldValidator {
	fv := &FieldValidator{
		FieldName:  name,
		Value:      value,
		Validators: make([]ValidatorFunc, 0),
	}
	v.fields = append(v.fields, fv)
	return fv
}

func (fv *FieldValidator) Required() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *apperrors.AppError {
		missing := false
		switch v := value.(type) {
		case string:
			missing = strings.TrimSpace(v) == ""
		case int64:
			missing = v == 0
		case *string:
			missing = v == nil || strings.TrimSpace(*v) == ""
		case date.Date:
			missing = !v.Valid
		case nil:
			missing = true
		}
		if missing {
			return apperrors.NewValidationFieldError(fv.FieldName, fmt.Sprintf("%s is required", fv.FieldName), apperrors.ErrCodeValidationFailed)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) OneOf(allowed ...string) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *apperrors.AppError {
		v, ok := value.(string)
		if !ok || v == "" {
			return nil
		}
		for _, a := range allowed {
			if v == a {
				return nil
			}
		}
		message := fmt.Sprintf("%s must be one of: %s", fv.FieldName, strings.Join(allowed, ", "))
		return apperrors.NewValidationFieldError(fv.FieldName, message, apperrors.ErrCodeInvalidEnum)
	})
	return fv
}

func (fv *FieldValidator) MaxLength(max int) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *apperrors.AppError {
		if v, ok := value.(string); ok {
			if len(v) > max {
				message := fmt.Sprintf("%s must not exceed %d characters", fv.FieldName, max)
				return apperrors.NewValidationFieldError(fv.FieldName, message, apperrors.ErrCodeValidationFailed)
			}
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) Custom(validator func(interface{}) *apperrors.AppError) *FieldValidator {
	fv.Validators = append(fv.Validators, validator)
	return fv
}

func (v *ValidationBuilder) Validate() *apperrors.AppError {
	var validationErrors []apperrors.ValidationError

	for _, field := range v.fields {
		for _, validator := range field.Validators {
			appErr := validator(field.Value)
			if appErr == nil {
				continue
			}
			if details, ok := appErr.Details.(apperrors.ValidationErrors); ok {
				validationErrors = append(validationErrors, details.Errors...)
			} else {
				validationErrors = append(validationErrors, apperrors.ValidationError{
					Field:   field.FieldName,
					Message: appErr.Message,
					Code:    string(appErr.Code),
				})
			}
			// first failure per field is enough
			break
		}
	}

	if len(validationErrors) > 0 {
		return apperrors.NewValidationError("Validation failed", apperrors.ErrCodeValidationFailed).
			WithDetails(apperrors.ValidationErrors{Errors: validationErrors})
	}

	return nil
}

var (
	structValidator     *validator.Validate
	structValidatorOnce sync.Once
)

func structs() *validator.Validate {
	structValidatorOnce.Do(func() {
		structValidator = validator.New(validator.WithRequiredStructEnabled())
		structValidator.RegisterTagNameFunc(jsonFieldName)
	})
	return structValidator
}

// Struct runs the `validate` tags of a DTO and converts failures into a validation AppError.
func Struct(s interface{}) *apperrors.AppError {
	err := structs().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewValidationError(err.Error(), apperrors.ErrCodeValidationFailed)
	}

	details := apperrors.ValidationErrors{}
	for _, fe := range fieldErrs {
		details.Errors = append(details.Errors, fieldError(fe))
	}
	return apperrors.NewValidationError("Validation failed", apperrors.ErrCodeValidationFailed).WithDetails(details)
}

func fieldError(fe validator.FieldError) apperrors.ValidationError {
	switch fe.Tag() {
	case "required":
		return apperrors.ValidationError{
			Field:   fe.Field(),
			Message: fmt.Sprintf("%s is required", fe.Field()),
			Code:    string(apperrors.ErrCodeValidationFailed),
		}
	case "oneof":
		return apperrors.ValidationError{
			Field:   fe.Field(),
			Message: fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), "'", "")),
			Code:    string(apperrors.ErrCodeInvalidEnum),
		}
	case "email":
		return apperrors.ValidationError{
			Field:   fe.Field(),
			Message: fmt.Sprintf("%s must be a valid email address", fe.Field()),
			Code:    string(apperrors.ErrCodeValidationFailed),
		}
	default:
		return apperrors.ValidationError{
			Field:   fe.Field(),
			Message: fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()),
			Code:    string(apperrors.ErrCodeValidationFailed),
		}
	}
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return field.Name
	}
	return name
}
