package lms

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/semester/internal/domain"
)

var (
	// ErrProvider marks every failure talking to an LMS.
	ErrProvider = errors.New("lms provider error")

	// ErrUnauthorized indicates a rejected or expired access token.
	ErrUnauthorized = errors.New("lms access token rejected")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("lms request timed out")

	// ErrUnavailable indicates the LMS host is unreachable.
	ErrUnavailable = errors.New("lms host unavailable")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("lms retry attempts exhausted")

	// ErrInvalidResponse indicates a body that could not be decoded.
	ErrInvalidResponse = errors.New("invalid lms response")
)

// Op names a provider operation in errors and call events.
type Op string

const (
	OpFetchCourses       Op = "fetch_courses"
	OpFetchAssignments   Op = "fetch_assignments"
	OpFetchGradingGroups Op = "fetch_grading_groups"
	OpFetchGradingScale  Op = "fetch_grading_scale"
)

// ProviderError wraps a failed provider call.
type ProviderError struct {
	Provider   domain.Provider
	Op         Op
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: status %d: %v", e.Provider, e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func (e *ProviderError) Is(target error) bool {
	return target == ErrProvider
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrInvalidResponse):
		return "INVALID_RESPONSE"
	case errors.Is(err, ErrRetryExhausted):
		return "RETRY_EXHAUSTED"
	default:
		return "UNKNOWN"
	}
}
