package handler

import (
	"itemtracker/internal/validator"
)

// RequestValidator plugs internal/validator into echo's c.Validate.
type RequestValidator struct {
	v *validator.Validator
}

func NewRequestValidator(v *validator.Validator) *RequestValidator {
	return &RequestValidator{v: v}
}

func (rv *RequestValidator) Validate(i interface{}) error {
	return rv.v.Struct(i)
}
