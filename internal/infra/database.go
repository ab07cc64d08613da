package infra

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"travelplanner/internal/config"
)

// OpenDatabase connects to the store selected by DB_DRIVER.
func OpenDatabase(cfg config.Config, logger *zap.Logger) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		return InitPostgresql(cfg.PostgresURL, logger)
	case config.DriverSQLite:
		return OpenSQLite(cfg.SQLitePath, logger)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}
