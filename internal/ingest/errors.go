package ingest

import (
	"fmt"
	"strings"
)

// SchemaError reports required columns absent from the spreadsheet header.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("spreadsheet missing required columns: [%s]", strings.Join(e.Missing, ", "))
}

// StrictCoercionError aborts a strict-mode read when any cell fails coercion.
type StrictCoercionError struct {
	Warnings []CoercionWarning
}

func (e *StrictCoercionError) Error() string {
	parts := make([]string, 0, len(e.Warnings))
	for _, w := range e.Warnings {
		parts = append(parts, w.String())
	}
	return fmt.Sprintf("strict coercion rejected %d cell(s): %s", len(e.Warnings), strings.Join(parts, "; "))
}
