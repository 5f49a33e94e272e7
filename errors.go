package crossroad

import (
	"errors"
	"fmt"
)

// ErrorCode represents specific error conditions in the simulation
type ErrorCode int

const (
	// No error occurred
	ErrCodeNone ErrorCode = iota
	// Configuration values are out of range
	ErrCodeInvalidConfiguration
	// Interactive input could not be parsed
	ErrCodeInvalidInput
	// Heading is not one of the valid headings
	ErrCodeInvalidHeading
	// Phase change is not allowed from the current phase
	ErrCodeTransitionNotAllowed
	// A light controller stopped with an error
	ErrCodeControllerFailed
	// Simulation was run more than once
	ErrCodeAlreadyStarted
)

// ConfigurationError represents configuration issues
type ConfigurationError struct {
	Component string
	Issue     string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Issue)
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(component, issue string) *ConfigurationError {
	return &ConfigurationError{
		Component: component,
		Issue:     issue,
	}
}

// InputError represents malformed interactive or file input
type InputError struct {
	Field       string
	Value       string
	OriginalErr error
}

func (e *InputError) Error() string {
	if e.OriginalErr != nil {
		return fmt.Sprintf("invalid input for %s (%q): %v", e.Field, e.Value, e.OriginalErr)
	}
	return fmt.Sprintf("invalid input for %s (%q)", e.Field, e.Value)
}

func (e *InputError) Unwrap() error {
	return e.OriginalErr
}

// NewInputError creates a new input error
func NewInputError(field, value string, err error) *InputError {
	return &InputError{
		Field:       field,
		Value:       value,
		OriginalErr: err,
	}
}

// HeadingError is returned for headings outside the valid table
type HeadingError struct {
	Heading string
}

func (e *HeadingError) Error() string {
	return fmt.Sprintf("invalid heading '%s'", e.Heading)
}

// NewHeadingError creates a new invalid heading error
func NewHeadingError(heading string) *HeadingError {
	return &HeadingError{Heading: heading}
}

// TransitionError represents an illegal phase change
type TransitionError struct {
	Code       ErrorCode
	Controller string
	From       Phase
	Event      string
	Reason     string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transition error [%s: %s on %s]: %s", e.Controller, e.From, e.Event, e.Reason)
}

// NewNoTransitionError creates a new no transition found error
func NewNoTransitionError(controller string, from Phase, event string) *TransitionError {
	return &TransitionError{
		Code:       ErrCodeTransitionNotAllowed,
		Controller: controller,
		From:       from,
		Event:      event,
		Reason:     fmt.Sprintf("no transition found from phase '%s' for event '%s'", from, event),
	}
}

// ControllerError wraps the failure of a light controller
type ControllerError struct {
	Controller  string
	Operation   string
	OriginalErr error
}

func (e *ControllerError) Error() string {
	return fmt.Sprintf("controller %s failed during %s: %v", e.Controller, e.Operation, e.OriginalErr)
}

func (e *ControllerError) Unwrap() error {
	return e.OriginalErr
}

// NewControllerError creates a new controller error
func NewControllerError(controller, operation string, err error) *ControllerError {
	return &ControllerError{
		Controller:  controller,
		Operation:   operation,
		OriginalErr: err,
	}
}

// RunError represents simulation lifecycle errors
type RunError struct {
	Code      ErrorCode
	Operation string
	Message   string
}

func (e *RunError) Error() string {
	return fmt.Sprintf("simulation error during %s: %s", e.Operation, e.Message)
}

// NewAlreadyStartedError creates the error returned when a simulation is reused
func NewAlreadyStartedError(operation string) *RunError {
	return &RunError{
		Code:      ErrCodeAlreadyStarted,
		Operation: operation,
		Message:   "simulation has already been started",
	}
}

// IsConfigurationError checks if an error is a ConfigurationError
func IsConfigurationError(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// IsInputError checks if an error is an InputError
func IsInputError(err error) bool {
	var target *InputError
	return errors.As(err, &target)
}

// IsHeadingError checks if an error is a HeadingError
func IsHeadingError(err error) bool {
	var target *HeadingError
	return errors.As(err, &target)
}

// IsTransitionError checks if an error is a TransitionError
func IsTransitionError(err error) bool {
	var target *TransitionError
	return errors.As(err, &target)
}

// IsControllerError checks if an error is a ControllerError
func IsControllerError(err error) bool {
	var target *ControllerError
	return errors.As(err, &target)
}

// GetErrorCode returns the error code for known error types
func GetErrorCode(err error) ErrorCode {
	var (
		transition *TransitionError
		run        *RunError
	)

	switch {
	case errors.As(err, &transition):
		return transition.Code
	case errors.As(err, &run):
		return run.Code
	case IsControllerError(err):
		return ErrCodeControllerFailed
	case IsConfigurationError(err):
		return ErrCodeInvalidConfiguration
	case IsInputError(err):
		return ErrCodeInvalidInput
	case IsHeadingError(err):
		return ErrCodeInvalidHeading
	default:
		return ErrCodeNone
	}
}
