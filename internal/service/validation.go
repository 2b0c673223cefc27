package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"

	"fintrack-be/internal/apperror"
	"fintrack-be/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	// report json names so messages match the request body
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// validateDTO checks the struct's validate tags and reports the first failing field
func validateDTO(dto any) error {
	err := validate.Struct(dto)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperror.TechnicalError(err)
	}
	return apperror.InvalidRequest(describe(verrs[0]))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("The %s field is required!", fe.Field())
	case "max":
		return fmt.Sprintf("The %s field must be at most %s characters long!", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("The %s field must be one of: %s!", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("The %s field is invalid!", fe.Field())
	}
}

// maxAmount bounds amounts to what numeric(18,2) can hold
var maxAmount = decimal.New(1, 16)

// normalizeAmount rounds to cents and rejects amounts the column cannot store
func normalizeAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	rounded := amount.Round(2)
	if rounded.Abs().GreaterThanOrEqual(maxAmount) {
		return decimal.Zero, apperror.InvalidRequest("The amount field is out of range!")
	}
	return rounded, nil
}

const maxDescription = 500

// checkDescription applies the add-time length limit to a patched description
func checkDescription(d models.Optional[string]) error {
	if d.Set && !d.Null && utf8.RuneCountInString(d.Value) > maxDescription {
		return apperror.InvalidRequest(fmt.Sprintf("The description field must be at most %d characters long!", maxDescription))
	}
	return nil
}
