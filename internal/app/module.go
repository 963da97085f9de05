package app

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/peopleops/corehr/internal/auth"
	"github.com/peopleops/corehr/internal/database"
	"github.com/peopleops/corehr/internal/hr"
	"github.com/peopleops/corehr/internal/migration"
	"github.com/peopleops/corehr/internal/server"
)

// Module combines all application modules
func Module() fx.Option {
	return fx.Options(
		// Logger
		fx.Provide(server.NewLogger),

		// Configuration
		fx.Provide(server.LoadConfig),

		// Database and schema
		database.Module(),
		migration.Module(),

		// Domain modules
		auth.NewModule(),
		hr.NewModule(),

		// Server
		fx.Provide(server.NewServer),

		// Start the server
		fx.Invoke(registerHooks),
	)
}

func registerHooks(
	lifecycle fx.Lifecycle,
	srv *server.Server,
	log *zap.Logger,
) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.Start(); err != nil {
					log.Error("failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down server...")
			srv.Stop()
			return nil
		},
	})
}
