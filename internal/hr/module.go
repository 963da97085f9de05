package hr

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewModule returns the HR module options
func NewModule() fx.Option {
	return fx.Options(
		fx.Provide(
			func(db *gorm.DB) Repository {
				return NewRepository(db)
			},
			func(log *zap.Logger, repo Repository) *Service {
				return NewService(log, repo)
			},
			func(svc *Service, log *zap.Logger) *Handler {
				return NewHandler(svc, log)
			},
		),
	)
}
