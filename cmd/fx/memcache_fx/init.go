package memcache_fx

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	mem "travelplanner/pkg/memcache"
)

const purgeInterval = 5 * time.Minute

var Module = fx.Provide(provideRevokedTokens)

// provideRevokedTokens also runs a purge loop for the lifetime of the app so
// expired entries do not accumulate.
func provideRevokedTokens(lc fx.Lifecycle, logger *zap.Logger) mem.RevokedTokenStore {
	store := mem.NewRevokedTokens()
	stop := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ticker := time.NewTicker(purgeInterval)
				defer ticker.Stop()
				for {
					select {
					case <-ticker.C:
						if n := store.Purge(); n > 0 {
							logger.Debug("purged revoked tokens", zap.Int("count", n))
						}
					case <-stop:
						return
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(stop)
			return nil
		},
	})
	return store
}
