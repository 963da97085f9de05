package server

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/peopleops/corehr/internal/config"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTesting     = "testing"
)

func Env() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = EnvDevelopment
	}
	return env
}

func LoadConfig() (*config.AppConfig, error) {
	env := Env()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath("./config/server")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config config.AppConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Load environment-specific configurations
	if envSettings := v.GetStringMap(fmt.Sprintf("http.%s", env)); len(envSettings) > 0 {
		if err := v.UnmarshalKey(fmt.Sprintf("http.%s", env), &config.HTTP); err != nil {
			return nil, fmt.Errorf("error unmarshaling env config: %w", err)
		}
	}

	// Secrets come from the environment in production.
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		config.Auth.JWTSecret = secret
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		config.Database.Password = password
	}

	return &config, nil
}
