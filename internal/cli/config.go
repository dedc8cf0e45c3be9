// Config loading for the tabletop CLI.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/tabletop/internal/shopping"
	"github.com/mesh-intelligence/tabletop/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Environment variables override config keys: TABLETOP_TAX_RATE, ...
	envPrefix = "TABLETOP"

	cfgKeyTaxRate     = "tax_rate"
	cfgKeyDeleteDelay = "delete_delay"
	cfgKeyLogLevel    = "log_level"
	cfgKeyLogFormat   = "log_format"
	cfgKeyProducts    = "products"

	defaultLogLevel  = "info"
	defaultLogFormat = types.LogFormatText
)

// defaultConfigHeader is written above the generated config.yaml.
const defaultConfigHeader = `# Tabletop configuration.
# Every key can be overridden by an environment variable, e.g. TABLETOP_TAX_RATE.
`

// configFile is the on-disk shape of config.yaml. Amounts are kept as text so
// they reach shopspring/decimal without passing through float64.
type configFile struct {
	TaxRate     string         `json:"tax_rate" yaml:"tax_rate" mapstructure:"tax_rate"`
	DeleteDelay string         `json:"delete_delay" yaml:"delete_delay" mapstructure:"delete_delay"`
	LogLevel    string         `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
	LogFormat   string         `json:"log_format" yaml:"log_format" mapstructure:"log_format"`
	Products    []productEntry `json:"products" yaml:"products" mapstructure:"products"`
}

type productEntry struct {
	Name  string `json:"name" yaml:"name" mapstructure:"name"`
	Price string `json:"price" yaml:"price" mapstructure:"price"`
}

// defaultConfigFile returns the values written on first run.
func defaultConfigFile() configFile {
	return toConfigFile(types.Config{
		TaxRate:     shopping.DefaultTaxRate,
		DeleteDelay: shopping.DefaultDeleteDelay,
		LogLevel:    defaultLogLevel,
		LogFormat:   defaultLogFormat,
		Products:    shopping.DefaultProducts(),
	})
}

// toConfigFile converts a validated Config back to its file shape.
func toConfigFile(cfg types.Config) configFile {
	out := configFile{
		TaxRate:     cfg.TaxRate.String(),
		DeleteDelay: cfg.DeleteDelay.String(),
		LogLevel:    cfg.LogLevel,
		LogFormat:   cfg.LogFormat,
		Products:    make([]productEntry, len(cfg.Products)),
	}
	for i, p := range cfg.Products {
		out.Products[i] = productEntry{Name: p.Name, Price: p.Price.StringFixed(types.DisplayPlaces)}
	}
	return out
}

// loadConfig reads config.yaml from the resolved config directory using Viper.
// It creates the config directory and a default config.yaml on first run.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyTaxRate, shopping.DefaultTaxRate.String())
	v.SetDefault(cfgKeyDeleteDelay, shopping.DefaultDeleteDelay.String())
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyLogFormat, defaultLogFormat)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// A config.yaml removed after startup falls back to defaults.
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// decodeConfig turns the raw Viper values into a validated Config. A missing
// products key yields the default catalog; an empty list is kept empty.
func decodeConfig(v *viper.Viper) (types.Config, error) {
	rawRate := strings.TrimSpace(v.GetString(cfgKeyTaxRate))
	rate, err := decimal.NewFromString(rawRate)
	if err != nil {
		return types.Config{}, fmt.Errorf("%w: %q", types.ErrInvalidTaxRate, rawRate)
	}

	rawDelay := strings.TrimSpace(v.GetString(cfgKeyDeleteDelay))
	delay, err := time.ParseDuration(rawDelay)
	if err != nil {
		return types.Config{}, fmt.Errorf("%w: %q", types.ErrInvalidDelay, rawDelay)
	}

	cfg := types.Config{
		TaxRate:     rate,
		DeleteDelay: delay,
		LogLevel:    v.GetString(cfgKeyLogLevel),
		LogFormat:   v.GetString(cfgKeyLogFormat),
		Products:    shopping.DefaultProducts(),
	}

	if v.IsSet(cfgKeyProducts) {
		var entries []productEntry
		if err := v.UnmarshalKey(cfgKeyProducts, &entries); err != nil {
			return types.Config{}, fmt.Errorf("decode products: %w", err)
		}
		cfg.Products = make([]types.Product, 0, len(entries))
		for _, e := range entries {
			price, err := decimal.NewFromString(strings.TrimSpace(e.Price))
			if err != nil {
				return types.Config{}, fmt.Errorf("%w: product %q price %q", types.ErrInvalidPrice, e.Name, e.Price)
			}
			cfg.Products = append(cfg.Products, types.Product{Name: strings.TrimSpace(e.Name), Price: price})
		}
	}

	if err := cfg.Validate(); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		// File already exists.
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(defaultConfigFile())
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, append([]byte(defaultConfigHeader), data...), 0o644)
}
