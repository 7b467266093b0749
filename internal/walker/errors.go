package walker

import "fmt"

// ErrorCode categorizes walker failures. Every failure is fatal: the input is
// trusted, so a bad construct is a caller defect and no partial model is
// returned.
type ErrorCode string

const (
	UnsupportedConstruct ErrorCode = "UnsupportedConstruct"
	MissingReference     ErrorCode = "MissingReference"
)

// Error is a structured walker error carrying the entity name being walked
// when the failure occurred.
type Error struct {
	Code    ErrorCode
	Message string
	Name    string
}

func (e *Error) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: %s (at %s)", e.Code, e.Message, e.Name)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func unsupportedf(name, format string, args ...any) error {
	return &Error{Code: UnsupportedConstruct, Message: fmt.Sprintf(format, args...), Name: name}
}

func missingRef(name, ref string) error {
	return &Error{Code: MissingReference, Message: fmt.Sprintf("body structure %q not registered", ref), Name: name}
}
