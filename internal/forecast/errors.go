package forecast

import (
	"errors"
	"fmt"
)

// ErrInvalidPreference marks preference inputs the pipeline refuses to work
// with (non-positive day or hour counts, more days than the raw document
// carries). Check with errors.Is.
var ErrInvalidPreference = errors.New("invalid preference input")

// SchemaValidationError reports a section of the raw provider document that
// does not match the expected shape. It is fatal for the whole build: the
// pipeline never returns a partial document.
type SchemaValidationError struct {
	Section string
	Field   string
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("schema validation failed: %s: missing or invalid field %q", e.Section, e.Field)
}

func schemaErr(section, field string) *SchemaValidationError {
	return &SchemaValidationError{Section: section, Field: field}
}
