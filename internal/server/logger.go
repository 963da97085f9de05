package server

import "go.uber.org/zap"

// NewLogger builds the application logger for the current APP_ENV.
func NewLogger() (*zap.Logger, error) {
	if Env() == EnvProduction {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
