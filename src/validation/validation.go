// Package validation checks operator input before anything is sent to the
// backend. Failures come back as tradeapi validation errors keyed by JSON field.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/MMN3003/tradedesk/src/Infrastructure/ethereum"
	"github.com/MMN3003/tradedesk/src/Infrastructure/tradeapi"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var wsURL = regexp.MustCompile(`(?i)^wss?://[^\s/$.?#].[^\s]*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	must(v.RegisterValidation("evm_address", func(fl validator.FieldLevel) bool {
		return ethereum.IsAddress(fl.Field().String())
	}))
	must(v.RegisterValidation("ws_url", func(fl validator.FieldLevel) bool {
		return wsURL.MatchString(fl.Field().String())
	}))
	must(v.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
		return err == nil && d.IsPositive()
	}))
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// Struct validates s and returns nil or a *tradeapi.Error of KindValidation.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		fields[fe.Field()] = message(fe)
	}
	return tradeapi.Invalid(fields)
}

func message(fe validator.FieldError) string {
	f := fe.Field()
	switch fe.Tag() {
	case "required":
		return f + " is a required field"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", f, fe.Param())
	case "gt":
		return f + " must be a positive number"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", f, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "url":
		return f + " must be a valid URL"
	case "numeric":
		return f + " must be a number"
	case "evm_address":
		return f + " is not a valid address"
	case "ws_url":
		return "Invalid WebSocket URL"
	case "amount":
		return f + " must be a positive amount"
	default:
		return fmt.Sprintf("%s is invalid (%s)", f, fe.Tag())
	}
}
