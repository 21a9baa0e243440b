package service

import (
	"errors"
	"reflect"

	validation "github.com/go-ozzo/ozzo-validation"
)

// ValidationError reports invalid client input, keyed by JSON field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "Validation failed: " + e.asOzzo().Error()
}

// Is makes errors.Is(err, ErrValidation) true for every ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) asOzzo() validation.Errors {
	errs := validation.Errors{}
	for k, v := range e.Fields {
		errs[k] = errors.New(v)
	}
	return errs
}

// newValidationError converts an ozzo result. Non-validation errors pass
// through unchanged.
func newValidationError(err error) error {
	if err == nil {
		return nil
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		return err
	}

	fields := make(map[string]string, len(errs))
	for k, v := range errs {
		if v != nil {
			fields[k] = v.Error()
		}
	}
	return &ValidationError{Fields: fields}
}

// positiveIDsRule accepts []int64 or *[]int64 where every element is > 0.
type positiveIDsRule struct{}

var positiveIDs = positiveIDsRule{}

func (positiveIDsRule) Validate(value interface{}) error {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	ids, ok := v.Interface().([]int64)
	if !ok {
		return errors.New("must be a list of ids")
	}
	for _, id := range ids {
		if id <= 0 {
			return errors.New("must contain only positive ids")
		}
	}
	return nil
}
