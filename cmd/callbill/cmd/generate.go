package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/callbill/internal/config"
	"github.com/smallbiznis/callbill/internal/invoice"
	invoicedomain "github.com/smallbiznis/callbill/internal/invoice/domain"
	"github.com/smallbiznis/callbill/internal/observability"
	"github.com/smallbiznis/callbill/pkg/db"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var (
	inputPath   string
	fromCompany string
	toCompany   string
	billingDate string
	gmtOffset   string
	outputRoot  string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one PDF invoice per account from a usage export",
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&inputPath, "input", "", "path to the XLSX usage export (required)")
	generateCmd.Flags().StringVar(&fromCompany, "from", "", "remitter company name (required)")
	generateCmd.Flags().StringVar(&toCompany, "to", "", "recipient company name (required)")
	generateCmd.Flags().StringVar(&billingDate, "billing-date", "", "billing date, YYYY-MM-DD (required)")
	generateCmd.Flags().StringVar(&gmtOffset, "gmt", "+00:00", "timezone offset label, ±HH:MM")
	generateCmd.Flags().StringVar(&outputRoot, "out", "", "output root directory (overrides OUTPUT_ROOT)")

	_ = generateCmd.MarkFlagRequired("input")
	_ = generateCmd.MarkFlagRequired("from")
	_ = generateCmd.MarkFlagRequired("to")
	_ = generateCmd.MarkFlagRequired("billing-date")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	date, err := time.Parse("2006-01-02", billingDate)
	if err != nil {
		return fmt.Errorf("invalid --billing-date %q: expected YYYY-MM-DD", billingDate)
	}

	req := invoicedomain.GenerateRequest{
		SourcePath:  inputPath,
		FromCompany: fromCompany,
		ToCompany:   toCompany,
		BillingDate: date,
		GMT:         gmtOffset,
	}

	var runErr error
	app := fx.New(
		fx.NopLogger,
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		invoice.Module,
		fx.Decorate(func(cfg config.Config) config.Config {
			if outputRoot != "" {
				cfg.OutputRoot = outputRoot
			}
			return cfg
		}),
		fx.Invoke(func(svc invoicedomain.Service) {
			res, err := svc.Generate(cmd.Context(), req)
			if err != nil {
				runErr = err
				return
			}
			for _, w := range res.Warnings {
				fmt.Printf("warning: %s\n", w)
			}
			for _, art := range res.Artifacts {
				fmt.Printf("%s\t%s\n", art.InvoiceNumber, art.FilePath)
			}
			fmt.Printf("generated %d invoice(s), run id %s\n", len(res.Artifacts), res.Invoice.ID)
		}),
	)

	startCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return err
	}

	stopCtx, cancelStop := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelStop()
	if err := app.Stop(stopCtx); err != nil {
		return err
	}

	return runErr
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
