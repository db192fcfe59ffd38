package domain

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/callbill/internal/ingest"
)

var gmtOffsetRe = regexp.MustCompile(`^[+-]\d{2}:\d{2}$`)

// GenerateRequest carries one generation run's input: the usage export plus
// the invoice metadata supplied by the operator.
type GenerateRequest struct {
	SourcePath  string
	FromCompany string
	ToCompany   string
	BillingDate time.Time
	GMT         string // display-only timezone offset, ±HH:MM
}

// Validate rejects a request before anything is read or written.
func (r GenerateRequest) Validate() error {
	if strings.TrimSpace(r.SourcePath) == "" {
		return ErrSourceRequired
	}
	if strings.TrimSpace(r.FromCompany) == "" {
		return ErrFromCompanyMissing
	}
	if strings.TrimSpace(r.ToCompany) == "" {
		return ErrToCompanyMissing
	}
	if r.BillingDate.IsZero() {
		return ErrInvalidBillingDate
	}
	if !gmtOffsetRe.MatchString(r.GMT) {
		return ErrInvalidGMT
	}
	return nil
}

// GenerateResult is the outcome of one completed run: the persisted parent
// record, the full ordered artifact set, and any coercion warnings.
type GenerateResult struct {
	Invoice   Invoice
	Artifacts []GeneratedArtifact
	Warnings  []ingest.CoercionWarning
}

// ArtifactInfo is a stored artifact joined with its current on-disk state.
type ArtifactInfo struct {
	GeneratedArtifact
	Exists    bool
	SizeBytes int64
}

// Service runs the generation pipeline and owns the run records.
type Service interface {
	// Generate reads the source spreadsheet, produces one PDF per account,
	// and persists the parent record with its artifact set. A schema error
	// aborts before any file is written; a render or storage failure aborts
	// the remainder of the run and marks the record FAILED.
	Generate(ctx context.Context, req GenerateRequest) (GenerateResult, error)

	// ListArtifacts returns a run's artifacts with their on-disk size, read
	// from the run's own records rather than a directory scan.
	ListArtifacts(ctx context.Context, invoiceID snowflake.ID) ([]ArtifactInfo, error)
}
