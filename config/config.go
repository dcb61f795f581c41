package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Integration is one entry of the integrations mapping: which provider is
// configured for a category, plus provider-specific settings the registry
// treats as opaque.
type Integration struct {
	Provider string            `mapstructure:"provider"`
	Config   map[string]string `mapstructure:"config"`
}

type Config struct {
	AppName     string `mapstructure:"appName"`
	Environment string `mapstructure:"environment"`
	Port        int    `mapstructure:"port"`

	DatabaseDbPath string `mapstructure:"databaseDbPath"`

	ValkeyAddress string `mapstructure:"valkeyAddress"`

	// Integrations maps category name (training, calendar, document_storage,
	// notifications) to its configured provider.
	Integrations map[string]Integration `mapstructure:"integrations"`
}

func InitConfig() (Config, error) {
	v := viper.New()

	v.SetDefault("appName", "intranet")
	v.SetDefault("environment", "development")
	v.SetDefault("port", 8080)
	v.SetDefault("databaseDbPath", "data/intranet.db")
	v.SetDefault("valkeyAddress", "localhost:6379")

	// .env is optional; real environment variables win over it.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return Config{}, err
		}
	}

	v.SetEnvPrefix("INTRANET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, err
	}

	if config.Integrations == nil {
		config.Integrations = map[string]Integration{}
	}

	return config, nil
}
