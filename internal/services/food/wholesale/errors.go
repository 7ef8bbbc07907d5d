package wholesale

import "fmt"

// Field names reported by ParseError and ValidationError.
const (
	FieldStartDate = "start_date"
	FieldEndDate   = "end_date"
	FieldLanguage  = "language"
)

// ParseError reports a value that could not be parsed, such as a malformed
// date bound or a row revision date.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("parse %s %q", e.Field, e.Value)
	}
	return fmt.Sprintf("parse %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError reports caller misuse, such as an unsupported language.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// FetchError reports that the remote source was unreachable or returned data
// that does not match the expected layout.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
