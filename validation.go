package wellets

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/etnz/wellets/date"
	"github.com/etnz/wellets/duration"
	"github.com/google/uuid"
)

// Validator checks a raw user input, and returns a human readable error if invalid.
type Validator func(string) error

// Validation messages.
const (
	MsgNotEmpty = "Should not be empty"
	MsgNumber   = "Should be a number"
	MsgPercent  = "Should be a percentage"
	MsgUUID     = "Should be a UUID"
	MsgEmail    = "Input should be an email"
	MsgDate     = "Input should be a date"
	MsgDuration = "Input should be a duration. Examples: '1y 4M', '5d', '2h40m', '12.5s'. "
)

// ValidateNotEmpty rejects empty inputs.
func ValidateNotEmpty(s string) error {
	if s == "" {
		return errors.New(MsgNotEmpty)
	}
	return nil
}

// ValidateNumber rejects inputs that are not floating point numbers.
func ValidateNumber(s string) error {
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return errors.New(MsgNumber)
	}
	return nil
}

// ValidatePercent accepts numbers between 0 and 100 included.
func ValidatePercent(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || v > 100 {
		return errors.New(MsgPercent)
	}
	return nil
}

// ValidateUUID rejects inputs that are not UUIDs.
func ValidateUUID(s string) error {
	if _, err := uuid.Parse(s); err != nil {
		return errors.New(MsgUUID)
	}
	return nil
}

// ValidateEmail performs a loose email check.
func ValidateEmail(s string) error {
	if !strings.Contains(s, "@") {
		return errors.New(MsgEmail)
	}
	return nil
}

// ValidateDate accepts the empty string or a date in date.DateTimeFormat.
func ValidateDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := date.ParseDateTime(s); err != nil {
		return errors.New(MsgDate)
	}
	return nil
}

// ValidateDuration accepts the empty string or a duration in the compact notation.
func ValidateDuration(s string) error {
	if s == "" {
		return nil
	}
	if _, err := duration.Parse(s); err != nil {
		return errors.New(MsgDuration)
	}
	return nil
}

// TextLength returns a validator of inputs of at least n characters.
func TextLength(n int) Validator {
	return func(s string) error {
		if len(s) < n {
			return fmt.Errorf("Input should be at least %d characters", n)
		}
		return nil
	}
}

// GreaterThan returns a validator of numbers strictly greater than bound.
func GreaterThan(bound float64) Validator {
	return func(s string) error {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return errors.New(MsgNumber)
		}
		if v <= bound {
			return fmt.Errorf("Input must be greater than %v", bound)
		}
		return nil
	}
}

// GreaterOrEqual returns a validator of numbers greater or equal to bound.
func GreaterOrEqual(bound float64) Validator {
	return func(s string) error {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return errors.New(MsgNumber)
		}
		if v < bound {
			return fmt.Errorf("Input must be greater or equal than %v", bound)
		}
		return nil
	}
}

// LessOrEqual returns a validator of numbers less or equal to bound.
func LessOrEqual(bound float64) Validator {
	return func(s string) error {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return errors.New(MsgNumber)
		}
		if v > bound {
			return fmt.Errorf("Input must be less or equal than %v", bound)
		}
		return nil
	}
}

// All combines validators, the first failure wins.
func All(validators ...Validator) Validator {
	return func(s string) error {
		for _, v := range validators {
			if err := v(s); err != nil {
				return err
			}
		}
		return nil
	}
}

// Each validates every input with v, the first failure wins.
func Each(v Validator, inputs ...string) error {
	for _, s := range inputs {
		if err := v(s); err != nil {
			return fmt.Errorf("%q: %w", s, err)
		}
	}
	return nil
}
