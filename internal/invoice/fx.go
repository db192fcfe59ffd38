package invoice

import (
	"github.com/smallbiznis/callbill/internal/artifact"
	"github.com/smallbiznis/callbill/internal/ingest"
	invoicedomain "github.com/smallbiznis/callbill/internal/invoice/domain"
	"github.com/smallbiznis/callbill/internal/invoice/service"
	"github.com/smallbiznis/callbill/internal/render"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("invoice.service",
	fx.Provide(
		ingest.NewReader,
		render.NewRenderer,
		artifact.NewStore,
		service.NewService,
	),
	fx.Invoke(migrate),
)

func migrate(db *gorm.DB) error {
	return invoicedomain.AutoMigrate(db)
}
