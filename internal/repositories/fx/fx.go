package fx

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/reels-client/internal/migrations"
	"github.com/orgball2608/reels-client/internal/repositories/kv"
	"github.com/orgball2608/reels-client/pkg/config"
	"github.com/orgball2608/reels-client/pkg/logger"
	"github.com/orgball2608/reels-client/pkg/pgx"
	"go.uber.org/fx"
)

// Module provides kv.Repository for the configured storage driver.
func Module(driver string) fx.Option {
	if driver == config.StorageDriverPostgres {
		return fx.Options(
			fx.Provide(pgx.New),
			kv.PgxModule,
			fx.Invoke(migrate),
		)
	}
	return kv.FileModule
}

// migrate depends on the pool so that its hook runs after the connection check.
func migrate(lc fx.Lifecycle, _ *pgxpool.Pool, cfg *config.Config, log logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := migrations.Up(ctx, cfg.GetDSN()); err != nil {
				return fmt.Errorf("failed to apply migrations: %w", err)
			}
			log.Info("Migrations applied")
			return nil
		},
	})
}
