package partners

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/productfruits/partnerhub-internal/internal/common/apperrors"
	"github.com/productfruits/partnerhub-internal/pkg/types"
)

// CreateCompanyRequest carries the editable fields of a new company.
type CreateCompanyRequest struct {
	Name string     `json:"name" validate:"required,notblank"`
	Tier types.Tier `json:"tier" validate:"required,tier"`
}

// UpdateCompanyRequest replaces the editable fields of an existing company.
type UpdateCompanyRequest struct {
	Name string     `json:"name" validate:"required,notblank"`
	Tier types.Tier `json:"tier" validate:"required,tier"`
}

// CreatePersonRequest carries the editable fields of a new person.
type CreatePersonRequest struct {
	Name  string `json:"name" validate:"required,notblank"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,notblank"`
}

// UpdatePersonRequest replaces the editable fields of an existing person.
type UpdatePersonRequest struct {
	Name  string `json:"name" validate:"required,notblank"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,notblank"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	if err := validate.RegisterValidation("tier", tierValidator); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("notblank", notBlankValidator); err != nil {
		panic(err)
	}
}

// tierValidator checks that the field is one of the closed set of tiers.
func tierValidator(fl validator.FieldLevel) bool {
	return types.Tier(fl.Field().String()).IsValid()
}

// notBlankValidator rejects strings that are empty after trimming whitespace.
func notBlankValidator(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// validateRequest runs struct validation and converts the first failure into a
// client-facing validation error. Validation failures never reach the store.
func validateRequest(req any) apperrors.Error {
	if err := validate.Struct(req); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			field := verrs[0].Field()
			switch verrs[0].Tag() {
			case "tier":
				return ErrValidation.Msg("partnership tier must be one of core, premium or platinum")
			case "email":
				return ErrValidation.Msg("invalid email address")
			default:
				return ErrValidation.Msg(strings.ToLower(field) + " is required")
			}
		}
		return ErrValidation.Err(err)
	}
	return nil
}
