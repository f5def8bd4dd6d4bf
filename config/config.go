package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sagarc03/challengedb/database"
	challengehttp "github.com/sagarc03/challengedb/http"
	"github.com/sagarc03/challengedb/keybackend"
)

// configKey is the context key for storing the loaded configuration.
type configKey struct{}

// WithContext returns a new context with the config stored.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from context.
// Returns an error if config is not found.
func FromContext(ctx context.Context) (*Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*Config)
	if !ok || cfg == nil {
		return nil, errors.New("config not found in context")
	}
	return cfg, nil
}

// Config is the root configuration struct for challengedb.
type Config struct {
	Server   ServerConfig             `mapstructure:"server"`
	Database database.Config          `mapstructure:"database"`
	Auth     keybackend.SecretConfig  `mapstructure:"auth"`
	CORS     challengehttp.CORSConfig `mapstructure:"cors"`
	Metrics  MetricsConfig            `mapstructure:"metrics"`
	Log      LogConfig                `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	BasePath     string `mapstructure:"base_path"`
	ReadTimeout  int    `mapstructure:"read_timeout" validate:"min=0"`
	WriteTimeout int    `mapstructure:"write_timeout" validate:"min=0"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"omitempty,startswith=/"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Env   string `mapstructure:"env" validate:"omitempty,oneof=dev prod"`
}

// EnvPrefix prefixes every environment override, e.g. CHALLENGEDB_AUTH_SECRET.
const EnvPrefix = "CHALLENGEDB"

// flagKeys maps the serve and migrate flags that are not named after their
// config key.
var flagKeys = map[string]string{
	"db-type":     "database.type",
	"db-dsn":      "database.dsn",
	"port":        "server.port",
	"base-path":   "server.base_path",
	"secret":      "auth.secret",
	"secret-file": "auth.secret_file",
	"metrics":     "metrics.enabled",
}

var defaults = map[string]any{
	"server.port":          9000,
	"server.base_path":     "/api/challenge",
	"server.read_timeout":  15,
	"server.write_timeout": 15,

	"database.type":              "sqlite",
	"database.dsn":               "challengedb.db",
	"database.tables.challenges": "challenges",
	"database.auto_migrate":      true,

	"auth.secret":      "challenge-database-api",
	"auth.secret_file": "",

	"cors.enabled":         false,
	"cors.allowed_origins": []string{"*"},
	"cors.allowed_methods": []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	"cors.allowed_headers": []string{"Content-Type"},
	"cors.max_age":         300,

	"metrics.enabled": false,
	"metrics.path":    "/metrics",

	"log.level": "info",
	"log.env":   "dev",
}

// Load builds the configuration from, lowest to highest precedence: the
// defaults, the config files (later files override earlier ones, and
// ./config.yaml is read when none are given), CHALLENGEDB_* environment
// variables and the flags that were set explicitly. flags may be nil.
func Load(configFiles []string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	readFiles(v, configFiles)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		flags.Visit(func(f *pflag.Flag) {
			key, ok := flagKeys[f.Name]
			if !ok {
				key = f.Name
			}
			_ = v.BindPFlag(key, f)
		})
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// readFiles loads config files into v. Unreadable files are logged and
// skipped so the remaining layers still apply.
func readFiles(v *viper.Viper, files []string) {
	if len(files) == 0 {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		var notFound viper.ConfigFileNotFoundError
		if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
			slog.Warn("read config file", "err", err)
		}
		return
	}

	for i, file := range files {
		v.SetConfigFile(file)

		read := v.MergeInConfig
		if i == 0 {
			read = v.ReadInConfig
		}
		if err := read(); err != nil {
			slog.Warn("read config file", "file", file, "err", err)
		}
	}
}

func (c *Config) validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	return c.Database.Tables.Validate()
}

// Secret resolves the shared secret from the auth section.
func (c *Config) Secret() (string, error) {
	return keybackend.ResolveSecret(c.Auth)
}
