package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	constants "cryopush/config"
)

// Config represents the application configuration. The collection core
// never touches this; commands resolve it and pass plain arguments down.
type Config struct {
	LogsDir        string `mapstructure:"logs_dir"`        // Bluefors logs root (read-only)
	PushgatewayURL string `mapstructure:"pushgateway_url"` // e.g. http://54.123.45.67:9091
	MachineName    string `mapstructure:"machine_name"`    // instance grouping key, e.g. fridge-alpha
	JobName        string `mapstructure:"job_name"`
	Transport      string `mapstructure:"transport"` // pushgateway|otlp|none

	OTLPEndpoint string `mapstructure:"otlp_endpoint"` // host:port, transport=otlp only
	OTLPInsecure bool   `mapstructure:"otlp_insecure"`

	HostDiagnostics bool `mapstructure:"host_diagnostics"` // push exporter-host self-metrics
}

// Dir returns the config directory path under the user's home
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + constants.CONFIG_DIR_NAME
	}
	return home + constants.CONFIG_DIR_NAME
}

// StatePath returns the location of the last-run state file
func StatePath() string {
	return filepath.Join(Dir(), constants.STATE_FILE_NAME)
}

// LoadConfig loads configuration from file and environment. Environment
// variables use the CRYOPUSH_ prefix (CRYOPUSH_LOGS_DIR and so on).
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME" + constants.CONFIG_DIR_NAME)
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("cryopush")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("job_name", constants.DEFAULT_JOB_NAME)
	viper.SetDefault("transport", constants.DEFAULT_TRANSPORT)
	viper.SetDefault("host_diagnostics", false)

	// Read config file
	viper.ReadInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.MachineName == "" {
		if hostname, err := os.Hostname(); err == nil {
			cfg.MachineName = hostname
		}
	}

	return &cfg, nil
}

// Validate checks that everything a push cycle needs is present
func (cfg *Config) Validate() error {
	if cfg.LogsDir == "" {
		return fmt.Errorf("logs_dir is missing or empty")
	}
	switch cfg.Transport {
	case constants.TRANSPORT_PUSHGATEWAY:
		if cfg.PushgatewayURL == "" {
			return fmt.Errorf("pushgateway_url is required for the pushgateway transport")
		}
	case constants.TRANSPORT_OTLP:
		if cfg.OTLPEndpoint == "" {
			return fmt.Errorf("otlp_endpoint is required for the otlp transport")
		}
	case constants.TRANSPORT_NONE:
		// dry-run transport, nothing to check
	default:
		return fmt.Errorf("unknown transport %q", cfg.Transport)
	}
	if cfg.MachineName == "" {
		return fmt.Errorf("machine_name is missing and the hostname could not be determined")
	}
	return nil
}
