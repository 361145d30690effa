package studyclient

import (
	"errors"
	"strings"
)

// Pre-flight upload validation failures. These are raised before any
// network call is made.
var (
	ErrNotPDF       = errors.New("only PDF files can be uploaded")
	ErrFileTooLarge = errors.New("file exceeds the 50MB upload limit")
)

// ErrorKind buckets server failures into the categories the UI cares
// about. Anything that does not match a known server message falls into
// ErrorOther and is shown verbatim.
type ErrorKind int

const (
	ErrorNetwork ErrorKind = iota
	ErrorWrongStage
	ErrorPlanNotFound
	ErrorMalformedPlan
	ErrorOther
)

// APIError is a business error reported by the server.
type APIError struct {
	StatusCode int
	Message    string
	Kind       ErrorKind
}

func (e *APIError) Error() string {
	return e.Message
}

func classifyMessage(message string) ErrorKind {
	switch {
	case strings.Contains(message, "must be in PLANNING"):
		return ErrorWrongStage
	case strings.Contains(message, "study plan not found"), strings.Contains(message, "generate a plan first"):
		return ErrorPlanNotFound
	case strings.Contains(message, "valid study plan"), strings.Contains(message, "plan generation failed"):
		return ErrorMalformedPlan
	default:
		return ErrorOther
	}
}

// Classify maps any error returned by the client into an ErrorKind.
// Transport failures that never produced a server response count as
// network errors.
func Classify(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ErrorNetwork
}

// UserMessage renders an error the way the UI should show it.
func UserMessage(err error) string {
	if errors.Is(err, ErrNotPDF) || errors.Is(err, ErrFileTooLarge) {
		return err.Error()
	}
	switch Classify(err) {
	case ErrorWrongStage:
		return "This action is not available at the session's current stage."
	case ErrorPlanNotFound:
		return "No study plan exists yet. Generate one first."
	case ErrorMalformedPlan:
		return "The AI returned an unusable plan. Please try again."
	case ErrorNetwork:
		return "Network error. Check your connection and try again."
	default:
		return err.Error()
	}
}
