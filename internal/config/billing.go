package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// BillingConfig carries the invoice presentation and calculation settings.
type BillingConfig struct {
	// TaxRate is the flat rate applied to the subtotal, e.g. 0.10 for 10%.
	TaxRate float64 `mapstructure:"taxRate"`

	// CurrencySymbol prefixes every monetary value on the invoice.
	CurrencySymbol string `mapstructure:"currencySymbol"`

	// Disclaimer is printed centered in every page footer.
	Disclaimer string `mapstructure:"disclaimer"`
}

func DefaultBillingConfig() BillingConfig {
	return BillingConfig{
		TaxRate:        0.10,
		CurrencySymbol: "$",
		Disclaimer:     "This is a computer-generated document and does not require a signature",
	}
}

type BillingConfigHolder struct {
	current atomic.Value // holds BillingConfig
}

func NewBillingConfigHolder() (*BillingConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("billing")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/callbill")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CALLBILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultBillingConfig()
	v.SetDefault("billing.taxRate", defaults.TaxRate)
	v.SetDefault("billing.currencySymbol", defaults.CurrencySymbol)
	v.SetDefault("billing.disclaimer", defaults.Disclaimer)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg BillingConfig
	if err := v.UnmarshalKey("billing", &cfg); err != nil {
		return nil, err
	}
	if err := validateBillingConfig(cfg); err != nil {
		return nil, err
	}

	holder := &BillingConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated BillingConfig
		if err := v.UnmarshalKey("billing", &updated); err != nil {
			log.Printf("[billing-config] reload failed: %v", err)
			return
		}
		if err := validateBillingConfig(updated); err != nil {
			log.Printf("[billing-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[billing-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *BillingConfigHolder) Get() BillingConfig {
	return h.current.Load().(BillingConfig)
}

func validateBillingConfig(cfg BillingConfig) error {
	if cfg.TaxRate < 0 || cfg.TaxRate >= 1 {
		return errors.New("billing.taxRate must be in [0, 1)")
	}
	if cfg.CurrencySymbol == "" {
		return errors.New("billing.currencySymbol cannot be empty")
	}
	if strings.TrimSpace(cfg.Disclaimer) == "" {
		return errors.New("billing.disclaimer cannot be empty")
	}
	return nil
}
