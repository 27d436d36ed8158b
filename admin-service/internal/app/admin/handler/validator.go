package handler

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// priceRule не более 6 цифр до точки и 2 после
var priceRule = regexp.MustCompile(`^\d{1,6}(\.\d{0,2})?$`)

// newValidator validator с поддержкой decimal.Decimal и правилом price
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(fieldName)
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	// регистрация с фиксированным тегом не может вернуть ошибку
	_ = v.RegisterValidation("price", validatePrice)
	return v
}

// fieldName имя поля в ошибках как в запросе: json для тела, form для query
func fieldName(field reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return field.Name
}

// decimalValue валидатор видит decimal как строку
func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func validatePrice(fl validator.FieldLevel) bool {
	return priceRule.MatchString(fl.Field().String())
}

// formatValidationError форматирует ошибки валидации
func formatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fieldError := validationErrors[0]
		return fieldError.Field() + " is " + fieldError.Tag()
	}
	return "Validation failed"
}
