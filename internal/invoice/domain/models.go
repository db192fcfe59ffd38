// Package domain contains persistence models for invoice generation runs.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// InvoiceStatus represents generation run lifecycle states.
type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "PENDING"
	InvoiceStatusCompleted InvoiceStatus = "COMPLETED"
	InvoiceStatusFailed    InvoiceStatus = "FAILED"
)

// Invoice is the parent record of one generation run: the uploaded usage
// export plus the metadata printed on every PDF it produced.
type Invoice struct {
	ID          snowflake.ID  `gorm:"primaryKey"`
	SourceFile  string        `gorm:"type:text;not null"`
	FromCompany string        `gorm:"type:text;not null"`
	ToCompany   string        `gorm:"type:text;not null"`
	BillingDate time.Time     `gorm:"not null"`
	GMT         string        `gorm:"type:text;not null;default:'+00:00'"`
	Status      InvoiceStatus `gorm:"type:text;not null;default:'PENDING'"`

	// Warnings holds the coercion warnings collected while reading the
	// source, serialized as JSON.
	Warnings datatypes.JSON `gorm:"type:jsonb"`

	// Artifacts is the authoritative, ordered set of PDFs this run produced.
	Artifacts []GeneratedArtifact `gorm:"foreignKey:InvoiceID"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// GeneratedArtifact links one written PDF back to its generation run. The
// account id is a weak back-reference for lookup; the artifact does not own
// the account's rows.
type GeneratedArtifact struct {
	ID            snowflake.ID `gorm:"primaryKey"`
	InvoiceID     snowflake.ID `gorm:"not null;index;uniqueIndex:ux_artifact_invoice_number"`
	InvoiceNumber string       `gorm:"type:text;not null;uniqueIndex:ux_artifact_invoice_number"`
	AccountID     string       `gorm:"type:text;not null;index"`
	FilePath      string       `gorm:"type:text;not null"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (GeneratedArtifact) TableName() string { return "generated_artifacts" }
