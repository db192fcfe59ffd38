package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBillingConfigIsValid(t *testing.T) {
	cfg := DefaultBillingConfig()
	require.NoError(t, validateBillingConfig(cfg))
	assert.Equal(t, 0.10, cfg.TaxRate)
	assert.Equal(t, "$", cfg.CurrencySymbol)
}

func TestValidateBillingConfig(t *testing.T) {
	cfg := DefaultBillingConfig()

	cfg.TaxRate = -0.1
	assert.Error(t, validateBillingConfig(cfg))

	cfg = DefaultBillingConfig()
	cfg.TaxRate = 1.0
	assert.Error(t, validateBillingConfig(cfg))

	cfg = DefaultBillingConfig()
	cfg.CurrencySymbol = ""
	assert.Error(t, validateBillingConfig(cfg))

	cfg = DefaultBillingConfig()
	cfg.Disclaimer = "  "
	assert.Error(t, validateBillingConfig(cfg))
}

func TestBillingConfigHolderDefaults(t *testing.T) {
	holder, err := NewBillingConfigHolder()
	require.NoError(t, err)

	got := holder.Get()
	assert.Equal(t, DefaultBillingConfig().TaxRate, got.TaxRate)
	assert.NotEmpty(t, got.Disclaimer)
}
