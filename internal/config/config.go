package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	S3       S3Config       `mapstructure:"s3"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Seed     SeedConfig     `mapstructure:"seed"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// JWTConfig defines JWT specific configuration. Expiration is parsed from a
// duration string ("1h", "60m") directly into time.Duration by Viper.
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// AdminConfig holds the dashboard operator credentials. PasswordHash is a
// bcrypt hash, never the plain password.
type AdminConfig struct {
	Username     string `mapstructure:"username"`
	PasswordHash string `mapstructure:"password_hash"`
}

// SeedConfig controls the first-run bootstrap.
type SeedConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Environment variables override file values, e.g. server.address ->
	// SERVER_ADDRESS, jwt.expiration -> JWT_EXPIRATION.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("database.uri", "mongodb://localhost:27017")
	viper.SetDefault("database.name", "capitalfit")
	viper.SetDefault("s3.use_ssl", true)
	viper.SetDefault("jwt.expiration", "12h")
	viper.SetDefault("admin.username", "admin")
	viper.SetDefault("seed.enabled", true)

	err = viper.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		// Config file not found; rely on defaults and env vars.
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
