package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds runtime configuration for both binaries (client and stub
// backend). Every field maps 1:1 to an environment variable.
type Config struct {
	Env string `mapstructure:"APP_ENV"` // development | production

	// Cliente
	APIBaseURL         string `mapstructure:"SIVEC_API_URL"`
	HTTPTimeoutSeconds int    `mapstructure:"SIVEC_HTTP_TIMEOUT_SECONDS"`
	StoragePath        string `mapstructure:"SIVEC_STORAGE_PATH"` // sqlite file with credentials + cache
	RolPiloto          int    `mapstructure:"SIVEC_ROL_PILOTO"`   // role id allowed to use this client

	// Stub backend
	Port               int    `mapstructure:"PORT"`
	DatabasePath       string `mapstructure:"SIVEC_DB_PATH"`
	JWTSecret          string `mapstructure:"JWT_SECRET"`
	JWTExpirationHours int    `mapstructure:"JWT_EXPIRATION_HOURS"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("SIVEC_API_URL", "http://localhost:3000")
	viper.SetDefault("SIVEC_HTTP_TIMEOUT_SECONDS", 30)
	viper.SetDefault("SIVEC_ROL_PILOTO", 1)
	viper.SetDefault("PORT", 3000)
	viper.SetDefault("SIVEC_DB_PATH", "sivec_stub.db")
	viper.SetDefault("JWT_SECRET", "sivec_dev_secret_cambiar_en_produccion")
	viper.SetDefault("JWT_EXPIRATION_HOURS", 8)

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if cfg.StoragePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		cfg.StoragePath = filepath.Join(home, ".sivec", "piloto.db")
	}
	return cfg, nil
}
