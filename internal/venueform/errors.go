package venueform

import "fmt"

// Validation failure reasons.
const (
	ReasonMissingNumber    = "missing number"
	ReasonNotPositiveInt   = "not a positive integer"
	ReasonDuplicateNumber  = "duplicate number"
	ReasonUnknownCourtType = "unknown court type"
)

// ValidationError reports user input that fails a form precondition. Index is
// the position of the offending court in the combined indoor-then-outdoor
// sequence, or -1 when the failure concerns a venue field.
type ValidationError struct {
	Reason string
	Field  string
	Index  int
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Detail renders the reason together with the field it refers to.
func (e *ValidationError) Detail() string {
	if e.Index >= 0 {
		return fmt.Sprintf("courts[%d].%s: %s", e.Index, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func courtError(reason string, index int, field string) *ValidationError {
	return &ValidationError{Reason: reason, Field: field, Index: index}
}

func fieldError(field string) *ValidationError {
	return &ValidationError{Reason: "missing " + field, Field: field, Index: -1}
}
