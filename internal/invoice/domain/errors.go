package domain

import "errors"

var (
	ErrSourceRequired     = errors.New("source_file_required")
	ErrFromCompanyMissing = errors.New("from_company_required")
	ErrToCompanyMissing   = errors.New("to_company_required")
	ErrInvalidBillingDate = errors.New("invalid_billing_date")
	ErrInvalidGMT         = errors.New("invalid_gmt_offset")
	ErrNotFound           = errors.New("not_found")
)
