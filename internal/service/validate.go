package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"

	"pitak-order-api/internal/dto"
)

// Thai mobile numbers: leading 0, then 8 or 9 more digits.
var phonePattern = regexp.MustCompile(`^0\d{8,9}$`)

var validate = newValidator()

func newValidator() *validatorv10.Validate {
	v := validatorv10.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("thaiphone", func(fl validatorv10.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	return v
}

// FieldError is one violated constraint on a creation request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every violated field, not just the first.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func fieldMessage(fe validatorv10.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "thaiphone":
		return "must be a Thai mobile number (0 followed by 8-9 digits)"
	}
	return "is invalid"
}

// validateCreate runs before any store call; a failing request never
// reaches the record store.
func validateCreate(req dto.CreateOrderRequest) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validatorv10.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	ve := &ValidationError{}
	for _, fe := range verrs {
		ve.Fields = append(ve.Fields, FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return ve
}
