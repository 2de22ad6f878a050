package scheduling

import "fmt"

// ValidationError reports malformed or missing input. Handlers map it to a
// 400 response; Code carries the machine-readable reason when one exists.
type ValidationError struct {
	Field   string
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
	}
	return "validation failed: " + e.Message
}

// NotFoundError reports a missing entity. Handlers map it to a 404 response.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// Code returns the wire reason code, e.g. "PROVIDER_NOT_FOUND".
func (e NotFoundError) Code() string {
	switch e.Resource {
	case "provider":
		return "PROVIDER_NOT_FOUND"
	case "company":
		return "COMPANY_NOT_FOUND"
	case "service":
		return "SERVICE_NOT_FOUND"
	case "appointment":
		return "APPOINTMENT_NOT_FOUND"
	case "blocked time":
		return "BLOCKED_TIME_NOT_FOUND"
	}
	return "NOT_FOUND"
}

// ConflictError reports an interval collision or an illegal state
// transition. Handlers map it to a 409 response.
type ConflictError struct {
	Message string
}

func (e ConflictError) Error() string {
	return e.Message
}
