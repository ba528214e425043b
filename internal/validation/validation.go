// Package validation checks incoming request payloads against the fixed
// per-entity field rules before any store access. It is purely structural:
// referential existence (a customer_id pointing at a real row) is the store
// layer's problem, not this package's.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CustomerRequest is the create/full-update payload for a customer.
type CustomerRequest struct {
	Name  string `json:"name" validate:"required,min=1"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,min=6"`
}

// ProductRequest is the create/full-update payload for a product. Price is a
// pointer so an explicit zero survives the required check.
type ProductRequest struct {
	Name  string   `json:"name" validate:"required,min=1"`
	Price *float64 `json:"price" validate:"required,gte=0"`
}

// OrderRequest is the payload for placing or fully updating an order. The
// date stays a string here; handlers parse it into models.Date after the
// structural rules pass.
type OrderRequest struct {
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	CustomerID uint   `json:"customer_id" validate:"required"`
	ProductIDs []uint `json:"product_ids" validate:"required,min=1"`
}

// AccountRequest is the create/full-update payload for a customer account.
type AccountRequest struct {
	Username   string `json:"username" validate:"required,min=1"`
	Password   string `json:"password" validate:"required"`
	CustomerID uint   `json:"customer_id" validate:"required"`
}

// FieldErrors maps a JSON field name to every violation found for it.
type FieldErrors map[string][]string

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report violations under the wire name, not the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate runs every rule on the request and returns all violations at
// once, or nil when the payload is clean.
func Validate(req any) FieldErrors {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var violations validator.ValidationErrors
	if !errors.As(err, &violations) {
		return FieldErrors{"body": {"is invalid"}}
	}

	fields := make(FieldErrors, len(violations))
	for _, fieldError := range violations {
		name := fieldError.Field()
		fields[name] = append(fields[name], message(fieldError))
	}
	return fields
}

func message(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fieldError.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s items", fieldError.Param())
		}
		return fmt.Sprintf("must be at least %s characters", fieldError.Param())
	case "gte":
		return fmt.Sprintf("must be %s or greater", fieldError.Param())
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	default:
		return "is invalid"
	}
}
