package services

import (
	"errors"
	"fmt"

	"github.com/estatehub-api/dto"
	"github.com/estatehub-api/lib/notify"
	"github.com/estatehub-api/repositories"
)

var (
	// ErrValidation matches every *ValidationError
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned when the addressed resource does not exist
	ErrNotFound = repositories.ErrNotFound
	// ErrConflict is returned when a write collides with a unique key
	ErrConflict = repositories.ErrDuplicate
	// ErrCapabilityUnsupported is returned when an optional database feature is missing
	ErrCapabilityUnsupported = repositories.ErrCapabilityUnsupported
	// ErrUnauthorized is returned for missing or invalid credentials
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when the caller lacks the required role
	ErrForbidden = errors.New("forbidden")
	// ErrConfiguration is returned when a required external setting is missing
	ErrConfiguration = errors.New("configuration error")
	// ErrDelivery is returned when a notification could not be delivered
	ErrDelivery = errors.New("delivery failed")
	// ErrInvalidPreset is returned for unknown reminder presets
	ErrInvalidPreset = &ValidationError{
		Code:    dto.ErrorCodeInvalidParameter,
		Field:   "preset",
		Message: "preset must be one of tomorrow_morning, tomorrow_afternoon, in_2_days, in_3_days, in_1_week",
	}
)

// ValidationError describes bad input in a form the API can echo back
type ValidationError struct {
	Code    dto.ErrorCode
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is makes errors.Is(err, ErrValidation) true for every validation error
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalidParam(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		Code:    dto.ErrorCodeInvalidParameter,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

// configurationError wraps a sender configuration problem into ErrConfiguration
func configurationError(err error) error {
	if errors.Is(err, notify.ErrNotConfigured) {
		return fmt.Errorf("%w: %s", ErrConfiguration, err.Error())
	}
	return err
}
