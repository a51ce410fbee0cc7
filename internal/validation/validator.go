package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"kaasu/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

var (
	instance *Validator
	once     sync.Once
)

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	once.Do(func() {
		instance = NewValidator()
	})
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("money", validateMoney)
	_ = v.RegisterValidation("name", validateName)

	// Decimals validate through their string form so "money" sees the exact value
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	// Unset optionals read as nil, so omitempty skips them
	v.RegisterCustomTypeFunc(optionalValue[decimal.Decimal], models.Optional[decimal.Decimal]{})
	v.RegisterCustomTypeFunc(optionalValue[string], models.Optional[string]{})
	v.RegisterCustomTypeFunc(optionalValue[int64], models.Optional[int64]{})
	v.RegisterCustomTypeFunc(optionalValue[models.Date], models.Optional[models.Date]{})
	v.RegisterCustomTypeFunc(optionalValue[[]int64], models.Optional[[]int64]{})

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Struct validates a struct against its validate tags
func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func optionalValue[T any](field reflect.Value) interface{} {
	if o, ok := field.Interface().(models.Optional[T]); ok && o.Set {
		return o.Value
	}
	return nil
}

// Custom validation functions

// validateMoney accepts amounts that stay positive and fit decimal(12,2)
// once rounded to two places
func validateMoney(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if raw == "" {
		return false
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return false
	}

	_, err = models.NormalizeAmount(amount)
	return err == nil
}

// validateName accepts a category or tag name that is non-blank after
// trimming and within the column length
func validateName(fl validator.FieldLevel) bool {
	return models.ValidateName(models.NormalizeName(fl.Field().String())) == nil
}

// FormatErrors turns a validation error into "field: message" details
func FormatErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	details := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		details = append(details, fmt.Sprintf("%s: %s", fe.Field(), describe(fe)))
	}
	return details
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "money":
		return "must be a positive amount below 10000000000"
	case "name":
		return fmt.Sprintf("must be non-blank and at most %d characters", models.MaxNameLength)
	case "gt":
		return "must be greater than " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "dive":
		return "contains an invalid value"
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
