package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"travelplanner/internal/config"
	"travelplanner/internal/repositories"
	"travelplanner/internal/services"
	"travelplanner/pkg/utils"
)

var Module = fx.Provide(
	services.NewAccountService, provideAccountRepo, provideJWTManager)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideJWTManager(cfg config.Config) *utils.JWTManager {
	return utils.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
}
