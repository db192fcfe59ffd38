// Package artifact writes rendered invoices under the output root.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/smallbiznis/callbill/internal/config"
)

const invoicesDir = "invoices"

// Artifact describes one written invoice file. Path is relative to the
// configured output root.
type Artifact struct {
	InvoiceNumber string
	AccountID     string
	Path          string
}

// StorageError reports a filesystem failure while persisting an invoice.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// InvoiceNumber derives the invoice identifier for an account and billing
// period: the billing month as YYYYMM joined to the sanitized account id.
func InvoiceNumber(billingDate time.Time, accountID string) string {
	return billingDate.Format("200601") + "-" + accountID
}

// Store persists invoice PDFs. Writes with the same invoice number are
// last-write-wins; callers needing history must version the number upstream.
type Store struct {
	root string
}

func NewStore(cfg config.Config) *Store {
	return &Store{root: cfg.OutputRoot}
}

// Save writes the PDF for one account and returns the artifact with its path
// relative to the output root. accountID must already be sanitized.
func (s *Store) Save(accountID string, billingDate time.Time, pdf []byte) (Artifact, error) {
	number := InvoiceNumber(billingDate, accountID)
	filename := fmt.Sprintf("Invoice_%s.pdf", number)

	dir := filepath.Join(s.root, invoicesDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Artifact{}, &StorageError{Op: "mkdir", Path: dir, Err: err}
	}

	target := filepath.Join(dir, filename)
	if err := os.WriteFile(target, pdf, 0o644); err != nil {
		return Artifact{}, &StorageError{Op: "write", Path: target, Err: err}
	}

	return Artifact{
		InvoiceNumber: number,
		AccountID:     accountID,
		Path:          filepath.ToSlash(filepath.Join(invoicesDir, filename)),
	}, nil
}

// Resolve turns a stored relative path back into an absolute one.
func (s *Store) Resolve(relPath string) string {
	return filepath.Join(s.root, filepath.FromSlash(relPath))
}
