package types

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds the validated runtime settings shared by both tables.
type Config struct {
	TaxRate     decimal.Decimal `json:"tax_rate" yaml:"tax_rate"`
	DeleteDelay time.Duration   `json:"delete_delay" yaml:"delete_delay"`
	LogLevel    string          `json:"log_level" yaml:"log_level"`
	LogFormat   string          `json:"log_format" yaml:"log_format"`
	Products    []Product       `json:"products" yaml:"products"`
}

// Supported log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

var knownLogFormats = map[string]bool{
	LogFormatText: true,
	LogFormatJSON: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.TaxRate.IsNegative() {
		return ErrInvalidTaxRate
	}
	if c.DeleteDelay <= 0 {
		return ErrInvalidDelay
	}
	if c.LogFormat != "" && !knownLogFormats[strings.ToLower(c.LogFormat)] {
		return ErrLogFormatUnknown
	}
	for _, p := range c.Products {
		if strings.TrimSpace(p.Name) == "" {
			return ErrInvalidProductName
		}
	}
	return nil
}
