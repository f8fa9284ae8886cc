package parsererror

import "fmt"

// TransformationError is the single fatal error the transformer produces.
// It means no report root could be located in the parsed document, so the
// whole document is rejected. All other missing-data conditions degrade to
// defaults instead of erroring.
type TransformationError struct {
	Reason string
}

func (e *TransformationError) Error() string {
	return fmt.Sprintf("transformation failed: %s", e.Reason)
}

// NewTransformationError creates a TransformationError with a human-readable cause.
func NewTransformationError(reason string) *TransformationError {
	return &TransformationError{Reason: reason}
}

// ParseError represents an error during low-level parsing
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError represents a validation failure
type ValidationError struct {
	FilePath string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.FilePath, e.Reason)
}

// InvalidFormatError represents an error where the input file does not conform
// to the expected bureau report format.
type InvalidFormatError struct {
	FilePath             string
	ExpectedFormat       string
	ActualContentSnippet string // Optional: a snippet of the actual content for debugging
	Msg                  string
}

func (e *InvalidFormatError) Error() string {
	if e.ActualContentSnippet != "" {
		return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s. Content snippet: '%s'",
			e.FilePath, e.Msg, e.ExpectedFormat, e.ActualContentSnippet)
	}
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

// FileNotFoundError creates a consistent error for missing input files.
func FileNotFoundError(filePath string) error {
	return fmt.Errorf("file not found: %s", filePath)
}
