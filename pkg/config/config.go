package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Config keys, also used as flag names.
const (
	KeyCSVURL   = "csv-url"
	KeyPort     = "port"
	KeyLogLevel = "log-level"
	KeyTimeout  = "timeout"
)

// ErrMissingSourceURL is returned when no CSV URL is configured. The
// dashboard cannot start without one.
var ErrMissingSourceURL = errors.New("csv url not set (RATEIO_CSV_URL)")

type Config struct {
	CSVURL   string
	Port     string
	LogLevel string
	Timeout  time.Duration
}

// LogLevelValue parses LogLevel, defaulting to info.
func (c *Config) LogLevelValue() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Flags registers the configuration flags on fs.
func Flags(fs *pflag.FlagSet) {
	fs.String(KeyCSVURL, "", "URL of the rateio CSV (env RATEIO_CSV_URL)")
	fs.String(KeyLogLevel, "info", "Log level (debug, info, warn, error)")
	fs.Duration(KeyTimeout, 30*time.Second, "Timeout for downloading the CSV")
}

// Build resolves the configuration from, lowest precedence first: defaults,
// the config file, a .env file, RATEIO_* environment variables and flags.
// An explicit cfgFile must exist; the default rateio.yaml is optional.
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault(KeyPort, "3000")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyTimeout, 30*time.Second)

	v.SetEnvPrefix("RATEIO")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	// VITE_RATEIO_CSV_URL is the legacy name of the variable.
	if err := v.BindEnv(KeyCSVURL, "RATEIO_CSV_URL", "VITE_RATEIO_CSV_URL"); err != nil {
		return nil, err
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("rateio")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	cfg := &Config{
		CSVURL:   strings.TrimSpace(v.GetString(KeyCSVURL)),
		Port:     v.GetString(KeyPort),
		LogLevel: v.GetString(KeyLogLevel),
		Timeout:  v.GetDuration(KeyTimeout),
	}
	return cfg, nil
}

// Validate checks the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.CSVURL == "" {
		return ErrMissingSourceURL
	}

	var errs []string
	if u, err := url.Parse(c.CSVURL); err != nil {
		errs = append(errs, fmt.Sprintf("invalid csv url '%s': %v", c.CSVURL, err))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errs = append(errs, fmt.Sprintf("invalid csv url scheme '%s': must be 'http' or 'https'", u.Scheme))
	}

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Sprintf("invalid log level '%s'", c.LogLevel))
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Sprintf("invalid timeout %v: must not be negative", c.Timeout))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// loadDotEnv reads KEY=VALUE pairs from path when it exists. Variables
// already set in the environment are kept.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := gotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
