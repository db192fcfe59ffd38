// Package partition groups usage rows per billing account.
package partition

import (
	"fmt"
	"strings"

	"github.com/smallbiznis/callbill/internal/ingest"
)

// Group is the ordered set of rows billed to one account. AccountID is the
// sanitized identifier used for invoice numbering and filenames; RawID is the
// identifier as it appeared in the source.
type Group struct {
	AccountID string
	RawID     string
	Rows      []ingest.Row
}

// CollisionError reports distinct raw account ids that sanitize to the same
// identifier. Merging them would bill one account for another's calls.
type CollisionError struct {
	SanitizedID string
	RawIDs      []string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("account ids %q collide after sanitization to %q", e.RawIDs, e.SanitizedID)
}

// Sanitize reduces an account id to filesystem-safe characters: surrounding
// whitespace is trimmed, then everything outside [A-Za-z0-9_-] is dropped.
// Idempotent.
func Sanitize(id string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(id) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Partition groups rows by sanitized account id. Groups come back in
// first-seen order of their account id and rows keep source order, so a
// re-run over the same table produces identical output.
func Partition(rows []ingest.Row) ([]Group, error) {
	var groups []Group
	byID := make(map[string]int)
	rawSeen := make(map[string]string)

	for _, row := range rows {
		sanitized := Sanitize(row.AccountID)

		if prior, ok := rawSeen[sanitized]; ok && prior != row.AccountID {
			return nil, &CollisionError{
				SanitizedID: sanitized,
				RawIDs:      []string{prior, row.AccountID},
			}
		}
		rawSeen[sanitized] = row.AccountID

		idx, ok := byID[sanitized]
		if !ok {
			idx = len(groups)
			byID[sanitized] = idx
			groups = append(groups, Group{AccountID: sanitized, RawID: row.AccountID})
		}
		groups[idx].Rows = append(groups[idx].Rows, row)
	}

	return groups, nil
}
