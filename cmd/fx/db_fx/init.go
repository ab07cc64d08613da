package db_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"travelplanner/internal/config"
	"travelplanner/internal/infra"
)

var Module = fx.Provide(
	provideDB,
	infra.NewTransactor)

func provideDB(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) (*gorm.DB, error) {
	db, err := infra.OpenDatabase(cfg, logger)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.CloseDB(db, logger)
			return nil
		},
	})
	return db, nil
}
