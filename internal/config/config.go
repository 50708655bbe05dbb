package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"

	"profitcalc/internal/engine"
)

type Config struct {
	HTTPAddr           string        `env:"HTTP_ADDR" envDefault:":8080"`
	HTTPRequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" envDefault:"30s"`

	RateURL      string        `env:"RATE_URL,required"`
	RateCurrency string        `env:"RATE_CURRENCY" envDefault:"USD"`
	RateSpread   float64       `env:"RATE_SPREAD" envDefault:"1.5"`
	RateTTL      time.Duration `env:"RATE_TTL" envDefault:"10m"`

	RedisAddr     string `env:"REDIS_ADDR,required"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	ShippingTablePath string `env:"SHIPPING_TABLE_PATH" envDefault:"data/shipping.json"`
	CategoryTablePath string `env:"CATEGORY_TABLE_PATH" envDefault:"data/categoryFees.json"`

	// Marketplace fee policy. The category fee percent is chosen per
	// request from the category table, everything else is policy.
	SalesTaxRate      float64 `env:"SALES_TAX_RATE" envDefault:"0.0671"`
	PaymentFeePercent float64 `env:"PAYMENT_FEE_PERCENT" envDefault:"1.35"`
	FixedListingFee   float64 `env:"FIXED_LISTING_FEE" envDefault:"0.40"`
	FeeTaxRate        float64 `env:"FEE_TAX_RATE" envDefault:"0.10"`
	PayoutFeeRate     float64 `env:"PAYOUT_FEE_RATE" envDefault:"0.02"`
	ExchangeSurcharge float64 `env:"EXCHANGE_SURCHARGE" envDefault:"0.5"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.FeeSchedule().Validate(); err != nil {
		return nil, fmt.Errorf("fee policy: %w", err)
	}

	return &cfg, nil
}

// FeeSchedule builds the base fee schedule from the configured policy.
// CategoryFeePercent stays zero here; callers fill it per request.
func (c *Config) FeeSchedule() engine.FeeSchedule {
	return engine.FeeSchedule{
		SalesTaxRate:             c.SalesTaxRate,
		PaymentFeePercent:        c.PaymentFeePercent,
		FixedListingFee:          c.FixedListingFee,
		FeeTaxRate:               c.FeeTaxRate,
		PayoutFeeRate:            c.PayoutFeeRate,
		ExchangeSurchargePerUnit: c.ExchangeSurcharge,
	}
}
