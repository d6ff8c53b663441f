// Package validation provides common validation utilities for the lazystream library.
package validation

import (
	"reflect"

	lserrors "github.com/vnykmshr/lazystream/pkg/common/errors"
)

// ValidatePositive validates that an integer value is positive (> 0).
// Returns a ValidationError if the value is not positive.
func ValidatePositive(module, field string, value int) error {
	if value <= 0 {
		return lserrors.NewValidationError(module, field, value, "must be positive").
			WithHint("value must be greater than 0")
	}
	return nil
}

// ValidateNonNegative validates that an integer value is non-negative (>= 0).
// Returns a ValidationError if the value is negative.
func ValidateNonNegative(module, field string, value int) error {
	if value < 0 {
		return lserrors.NewValidationError(module, field, value, "cannot be negative").
			WithHint("use 0 or a positive value")
	}
	return nil
}

// ValidateNotNil validates that a value is not nil. Typed nil pointers,
// functions, maps, slices, channels and interfaces count as nil too.
func ValidateNotNil(module, field string, value interface{}) error {
	if isNil(value) {
		return lserrors.NewValidationError(module, field, nil, "cannot be nil").
			WithHint("provide a valid " + field)
	}
	return nil
}

// ValidateNotEmpty validates that a string value is not empty.
// Returns a ValidationError if the string is empty.
func ValidateNotEmpty(module, field string, value string) error {
	if value == "" {
		return lserrors.NewValidationError(module, field, value, "cannot be empty").
			WithHint("provide a non-empty " + field)
	}
	return nil
}

// ValidatePrime validates that value is a prime number.
func ValidatePrime(module, field string, value int) error {
	if value < 2 {
		return lserrors.NewValidationError(module, field, value, "must be prime").
			WithHint("the smallest prime is 2")
	}
	for d := 2; d <= value/d; d++ {
		if value%d == 0 {
			return lserrors.NewValidationError(module, field, value, "must be prime").
				WithHint("every residue class needs infinitely many primes")
		}
	}
	return nil
}

// ValidateAscending validates that values are strictly increasing.
func ValidateAscending(module, field string, values []int64) error {
	for i := 1; i < len(values); i++ {
		if values[i] <= values[i-1] {
			return lserrors.NewValidationError(module, field, values[i], "must be strictly increasing").
				WithHint("values must be stored in the order they were produced")
		}
	}
	return nil
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Func, reflect.Map, reflect.Slice, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}
