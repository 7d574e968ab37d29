// Package validation binds request payloads and checks them.
//
// Payloads implement Validatable. The shared validator knows the banking
// tags iban, customer_number and the decimal_* family (decimal_gt,
// decimal_gte, decimal_scale) besides the go-playground built-ins, and
// reports fields by their JSON name.
package validation

import (
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/deppfellow/go-banking/internal/model"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the process-wide validator with the custom tags registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "param", "query"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return fld.Name
		})

		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				return d.String()
			}
			return nil
		}, decimal.Decimal{})

		_ = v.RegisterValidation("iban", func(fl validator.FieldLevel) bool {
			return model.ValidIBAN(model.NormalizeIBAN(fl.Field().String()))
		})
		_ = v.RegisterValidation("customer_number", func(fl validator.FieldLevel) bool {
			_, err := model.ParseCustomerNumber(fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("decimal_gt", decimalCompare(func(d, bound decimal.Decimal) bool {
			return d.GreaterThan(bound)
		}))
		_ = v.RegisterValidation("decimal_gte", decimalCompare(func(d, bound decimal.Decimal) bool {
			return d.GreaterThanOrEqual(bound)
		}))

		_ = v.RegisterValidation("decimal_scale", func(fl validator.FieldLevel) bool {
			d, err := decimal.NewFromString(fl.Field().String())
			if err != nil {
				return false
			}
			places, err := strconv.ParseInt(fl.Param(), 10, 32)
			if err != nil {
				return false
			}
			return model.HasScale(d, int32(places))
		})

		validate = v
	})
	return validate
}

// Struct validates s with the shared validator.
func Struct(s any) error {
	return Validator().Struct(s)
}

func decimalCompare(cmp func(d, bound decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		bound, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		return cmp(d, bound)
	}
}
