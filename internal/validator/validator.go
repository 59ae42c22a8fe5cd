package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	playground "github.com/go-playground/validator/v10"
	"gopkg.in/guregu/null.v3"
)

// ErrInvalidInput is wrapped by every error this package returns.
var ErrInvalidInput = errors.New("invalid input")

// Validator checks `validate` struct tags and reports failures using the
// json field names.
type Validator struct {
	v *playground.Validate
}

func New() *Validator {
	v := playground.New(playground.WithRequiredStructEnabled())

	// report json names instead of Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	// validate the wrapped string; an invalid null.String counts as empty
	v.RegisterCustomTypeFunc(func(f reflect.Value) interface{} {
		ns, ok := f.Interface().(null.String)
		if !ok || !ns.Valid {
			return nil
		}
		return ns.String
	}, null.String{})

	return &Validator{v: v}
}

// Struct validates s.
func (v *Validator) Struct(s interface{}) error {
	return v.wrap(v.v.Struct(s), "")
}

// Field validates a single value under name.
func (v *Validator) Field(name string, value interface{}, tag string) error {
	return v.wrap(v.v.Var(value, tag), name)
}

func (v *Validator) wrap(err error, name string) error {
	if err == nil {
		return nil
	}

	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if name != "" {
			field = name
		}
		msgs = append(msgs, message(field, fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}

func message(field string, fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be >= %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be <= %s", field, fe.Param())
	default:
		return field + " is invalid"
	}
}

// Reason strips the ErrInvalidInput prefix for display.
func Reason(err error) string {
	return strings.TrimPrefix(err.Error(), ErrInvalidInput.Error()+": ")
}
