// internal/utils/validator.go
package utils

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/freshcart/freshcart-backend/internal/models"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(jsonFieldName)
	validate.RegisterValidation("objectid", validateObjectID)
	validate.RegisterValidation("role", validateRole)
	validate.RegisterValidation("ad_status", validateAdvertisementStatus)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// jsonFieldName reports fields by their JSON name so error details match the request body.
func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

func validateObjectID(fl validator.FieldLevel) bool {
	return primitive.IsValidObjectID(fl.Field().String())
}

func validateRole(fl validator.FieldLevel) bool {
	return models.Role(fl.Field().String()).Valid()
}

func validateAdvertisementStatus(fl validator.FieldLevel) bool {
	return models.AdvertisementStatus(fl.Field().String()).Valid()
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   e.Field(),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "objectid":
		return e.Field() + " must be a 24 character hex id"
	case "role":
		return "Role must be one of user, vendor or admin"
	case "ad_status":
		return "Status must be one of pending, approved or rejected"
	case "oneof":
		return e.Field() + " must be one of " + e.Param()
	default:
		return e.Field() + " is invalid"
	}
}
