package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/callbill/internal/artifact"
	"github.com/smallbiznis/callbill/internal/billing"
	"github.com/smallbiznis/callbill/internal/config"
	"github.com/smallbiznis/callbill/internal/ingest"
	invoicedomain "github.com/smallbiznis/callbill/internal/invoice/domain"
	"github.com/smallbiznis/callbill/internal/observability/logger"
	"github.com/smallbiznis/callbill/internal/partition"
	"github.com/smallbiznis/callbill/internal/render"
	"github.com/smallbiznis/callbill/pkg/db"
	"github.com/smallbiznis/callbill/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	Cfg      config.Config
	Billing  *config.BillingConfigHolder
	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Reader   *ingest.Reader
	Renderer *render.Renderer
	Store    *artifact.Store
}

type Service struct {
	cfg      config.Config
	billing  *config.BillingConfigHolder
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	reader   *ingest.Reader
	renderer *render.Renderer
	store    *artifact.Store

	invoicerepo  repository.Repository[invoicedomain.Invoice]
	artifactrepo repository.Repository[invoicedomain.GeneratedArtifact]
}

func NewService(p ServiceParam) invoicedomain.Service {
	return &Service{
		cfg:      p.Cfg,
		billing:  p.Billing,
		db:       p.DB,
		log:      p.Log.Named("invoice.service"),
		genID:    p.GenID,
		reader:   p.Reader,
		renderer: p.Renderer,
		store:    p.Store,

		invoicerepo:  repository.ProvideStore[invoicedomain.Invoice](p.DB),
		artifactrepo: repository.ProvideStore[invoicedomain.GeneratedArtifact](p.DB),
	}
}

// Generate runs the pipeline: read, partition, then per account in first-seen
// order compute, render and store. The run is all-or-nothing: any failure
// after validation marks the record FAILED and returns; files already written
// by the failed run stay on disk.
func (s *Service) Generate(ctx context.Context, req invoicedomain.GenerateRequest) (invoicedomain.GenerateResult, error) {
	if err := req.Validate(); err != nil {
		return invoicedomain.GenerateResult{}, err
	}

	table, err := s.reader.ReadFile(req.SourcePath)
	if err != nil {
		return invoicedomain.GenerateResult{}, err
	}
	for _, w := range table.Warnings {
		s.log.Warn("cell coercion failed",
			zap.Int("row", w.RowNumber),
			zap.String("column", w.Column),
			zap.String("value", w.Value),
		)
	}

	groups, err := partition.Partition(table.Rows)
	if err != nil {
		return invoicedomain.GenerateResult{}, err
	}

	billingCfg := s.billing.Get()
	taxRate := decimal.NewFromFloat(billingCfg.TaxRate)

	warnings, err := json.Marshal(table.Warnings)
	if err != nil {
		return invoicedomain.GenerateResult{}, fmt.Errorf("marshal warnings: %w", err)
	}

	inv := invoicedomain.Invoice{
		ID:          s.genID.Generate(),
		SourceFile:  req.SourcePath,
		FromCompany: req.FromCompany,
		ToCompany:   req.ToCompany,
		BillingDate: req.BillingDate,
		GMT:         req.GMT,
		Status:      invoicedomain.InvoiceStatusPending,
		Warnings:    warnings,
	}
	if err := s.invoicerepo.Create(ctx, &inv); err != nil {
		return invoicedomain.GenerateResult{}, fmt.Errorf("create invoice record: %w", err)
	}

	log := logger.WithRun(s.log, inv.ID.String())

	artifacts := make([]invoicedomain.GeneratedArtifact, 0, len(groups))
	for _, group := range groups {
		summary := billing.ComputeSummary(group, taxRate)

		pdf, err := s.renderer.Render(render.Input{
			InvoiceNumber:  artifact.InvoiceNumber(req.BillingDate, group.AccountID),
			GeneratedAt:    time.Now(),
			FromCompany:    req.FromCompany,
			ToCompany:      req.ToCompany,
			BillingMonth:   req.BillingDate.Format("January 2006"),
			Timezone:       req.GMT,
			LogoPath:       s.cfg.LogoPath,
			CurrencySymbol: billingCfg.CurrencySymbol,
			TaxRateLabel:   taxRateLabel(taxRate),
			Disclaimer:     billingCfg.Disclaimer,
			Summary:        summary,
		})
		if err != nil {
			s.markFailed(ctx, inv.ID)
			return invoicedomain.GenerateResult{}, err
		}

		written, err := s.store.Save(group.AccountID, req.BillingDate, pdf)
		if err != nil {
			s.markFailed(ctx, inv.ID)
			return invoicedomain.GenerateResult{}, err
		}

		artifacts = append(artifacts, invoicedomain.GeneratedArtifact{
			ID:            s.genID.Generate(),
			InvoiceID:     inv.ID,
			InvoiceNumber: written.InvoiceNumber,
			AccountID:     group.AccountID,
			FilePath:      written.Path,
		})
		log.Info("invoice generated",
			zap.String("account_id", group.AccountID),
			zap.String("invoice_number", written.InvoiceNumber),
			zap.String("file_path", written.Path),
			zap.Int("line_items", len(summary.LineItems)),
		)
	}

	if err := s.artifactrepo.BatchCreate(ctx, toPtrs(artifacts)); err != nil {
		s.markFailed(ctx, inv.ID)
		if db.IsDuplicateKeyErr(err) {
			return invoicedomain.GenerateResult{}, fmt.Errorf("duplicate invoice number in run %s: %w", inv.ID, err)
		}
		return invoicedomain.GenerateResult{}, fmt.Errorf("persist artifacts: %w", err)
	}

	if err := s.invoicerepo.Update(ctx, inv.ID.String(), map[string]any{
		"status": invoicedomain.InvoiceStatusCompleted,
	}); err != nil {
		return invoicedomain.GenerateResult{}, fmt.Errorf("finalize invoice record: %w", err)
	}
	inv.Status = invoicedomain.InvoiceStatusCompleted

	log.Info("generation run completed",
		zap.Int("accounts", len(groups)),
		zap.Int("rows", len(table.Rows)),
		zap.Int("warnings", len(table.Warnings)),
	)

	return invoicedomain.GenerateResult{
		Invoice:   inv,
		Artifacts: artifacts,
		Warnings:  table.Warnings,
	}, nil
}

// ListArtifacts resolves a run's artifacts against the filesystem. The set
// comes from the run's own records, never from scanning the output directory.
func (s *Service) ListArtifacts(ctx context.Context, invoiceID snowflake.ID) ([]invoicedomain.ArtifactInfo, error) {
	inv, err := s.invoicerepo.FindOne(ctx, &invoicedomain.Invoice{ID: invoiceID})
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, invoicedomain.ErrNotFound
	}

	rows, err := s.artifactrepo.FindOrdered(ctx, &invoicedomain.GeneratedArtifact{InvoiceID: invoiceID}, "id")
	if err != nil {
		return nil, err
	}

	infos := make([]invoicedomain.ArtifactInfo, 0, len(rows))
	for _, row := range rows {
		info := invoicedomain.ArtifactInfo{GeneratedArtifact: *row}
		if stat, err := os.Stat(s.store.Resolve(row.FilePath)); err == nil {
			info.Exists = true
			info.SizeBytes = stat.Size()
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func (s *Service) markFailed(ctx context.Context, id snowflake.ID) {
	err := s.invoicerepo.Update(ctx, id.String(), map[string]any{
		"status": invoicedomain.InvoiceStatusFailed,
	})
	if err != nil {
		s.log.Error("mark invoice failed", zap.String("invoice_id", id.String()), zap.Error(err))
	}
}

func taxRateLabel(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String() + "%"
}

func toPtrs(artifacts []invoicedomain.GeneratedArtifact) []*invoicedomain.GeneratedArtifact {
	ptrs := make([]*invoicedomain.GeneratedArtifact, len(artifacts))
	for i := range artifacts {
		ptrs[i] = &artifacts[i]
	}
	return ptrs
}
