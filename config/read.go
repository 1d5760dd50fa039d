package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Alijeyrad/stomatology_backend/pkg/constants"
	"github.com/spf13/viper"
)

var GlobalConf *Config

func ReadConfig(configPath string) (*Config, error) {
	viper.SetConfigName(constants.ConfigName)
	viper.SetConfigType(constants.ConfigFormat)
	viper.AddConfigPath(configPath)

	// e.g. STOMATOLOGY_DATABASE_HOST overrides database.host
	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Docker deployments may run on env vars and defaults only.
		if os.Getenv(constants.EnvPrefix+"_DATABASE_HOST") == "" &&
			viper.GetString("storage.backend") != constants.StorageMemory {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

func MustReadConfig(path string) *Config {
	config, err := ReadConfig(path)
	if err != nil {
		panic(err)
	}

	GlobalConf = config

	return config
}

func setDefaults() {
	viper.SetDefault("server.port", 8000)
	viper.SetDefault("server.environment", constants.EnvDevelopment)
	viper.SetDefault("server.confirm_ttl_seconds", 300)
	viper.SetDefault("storage.backend", constants.StoragePostgres)
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("authentication.paseto.mode", "local")
	viper.SetDefault("authentication.paseto.access_ttl_minutes", 60)
	viper.SetDefault("authentication.session_ttl_minutes", 720)
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
	viper.SetDefault("logging.output.stdout", true)
}
