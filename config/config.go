package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/ridoystarlord/debtreport/schema"
)

// Keys shared by viper, cobra flags and the config file.
const (
	KeySource  = "source"
	KeyTable   = "table"
	KeyFormat  = "format"
	KeyTimeout = "timeout"
	KeyVerbose = "verbose"
)

// EnvPrefix is prepended to every key when read from the environment,
// e.g. DEBTREPORT_SOURCE.
const EnvPrefix = "DEBTREPORT"

// Config is the resolved runtime configuration.
type Config struct {
	Source  string
	Table   string
	Format  string
	Timeout time.Duration
	Verbose bool
}

// LoadEnv loads a .env file from the working directory if one exists.
// It reports whether a file was found.
func LoadEnv(files ...string) bool {
	return godotenv.Load(files...) == nil
}

// New returns a viper instance with defaults, environment bindings and the
// optional debtreport.yaml config file wired in.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyTable, schema.DefaultTable)
	v.SetDefault(KeyFormat, "text")
	v.SetDefault(KeyTimeout, 30*time.Second)
	v.SetDefault(KeyVerbose, false)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	// The migration-era variable still works as a fallback source.
	_ = v.BindEnv(KeySource, EnvPrefix+"_SOURCE", "DATABASE_URL")

	v.SetConfigName("debtreport")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	return v
}

// Load reads the optional config file and resolves every key. A missing
// config file is not an error.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := Config{
		Source:  v.GetString(KeySource),
		Table:   v.GetString(KeyTable),
		Format:  v.GetString(KeyFormat),
		Timeout: v.GetDuration(KeyTimeout),
		Verbose: v.GetBool(KeyVerbose),
	}
	if cfg.Timeout <= 0 {
		return Config{}, fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}
	return cfg, nil
}
