package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Moderation ModerationConfig `mapstructure:"moderation"`
	Dates      DatesConfig      `mapstructure:"dates"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
	// PlainTextErrors preserves the original wire behavior: every error is a
	// plain string in a 200 body. Disable to get JSON errors with real
	// status codes.
	PlainTextErrors bool   `mapstructure:"plain_text_errors"`
	StaticDir       string `mapstructure:"static_dir"`
	IndexFile       string `mapstructure:"index_file"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

// ModerationConfig enumerates the username blocklist. Matching is
// case-insensitive, so only lowercase variants need to be listed.
type ModerationConfig struct {
	Blocklist []string `mapstructure:"blocklist"`
}

// DatesConfig pins the timezone and the two date layouts: the storage layout
// used when defaulting an exercise date, and the display layout used in every
// response.
type DatesConfig struct {
	Timezone      string `mapstructure:"timezone"`
	StorageLayout string `mapstructure:"storage_layout"`
	DisplayLayout string `mapstructure:"display_layout"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Env overrides, e.g. server.address -> SERVER_ADDRESS
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	viper.SetDefault("server.address", ":3000")
	viper.SetDefault("server.plain_text_errors", true)
	viper.SetDefault("server.static_dir", "public")
	viper.SetDefault("server.index_file", "views/index.html")
	viper.SetDefault("database.uri", "mongodb://localhost:27017")
	viper.SetDefault("database.name", "exercise_tracker")
	viper.SetDefault("moderation.blocklist", []string{
		"adolf hitler",
		"hitler",
		"joseph stalin",
		"stalin",
		"benito mussolini",
		"mussolini",
		"kim jong-un",
		"holocaust",
	})
	viper.SetDefault("dates.timezone", "America/Chicago")
	viper.SetDefault("dates.storage_layout", "2006-01-02")
	viper.SetDefault("dates.display_layout", "Mon Jan 02 2006")

	err = viper.ReadInConfig()
	// The config file is optional; defaults plus env vars are enough to run.
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return config, nil
}
