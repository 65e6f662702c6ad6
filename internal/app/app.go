package app

import (
	"context"
	"os"

	"github.com/orgball2608/reels-client/internal/command"
	"github.com/orgball2608/reels-client/internal/command/commandimpl"
	"github.com/orgball2608/reels-client/internal/feed"
	"github.com/orgball2608/reels-client/internal/ratelimit"
	"github.com/orgball2608/reels-client/internal/reels"
	"github.com/orgball2608/reels-client/internal/reels/reelsimpl"
	repositories "github.com/orgball2608/reels-client/internal/repositories/fx"
	"github.com/orgball2608/reels-client/internal/session"
	"github.com/orgball2608/reels-client/internal/share/shareimpl"
	"github.com/orgball2608/reels-client/internal/upload"
	"github.com/orgball2608/reels-client/pkg/config"
	"github.com/orgball2608/reels-client/pkg/logger"
	"go.uber.org/fx"
)

// Module wires the client. The storage driver decides which kv.Repository is provided.
func Module(storageDriver string) fx.Option {
	return fx.Options(
		fx.Provide(
			logger.FxOption,
		),
		repositories.Module(storageDriver),
		fx.Provide(
			fx.Annotate(
				reelsimpl.New,
				fx.As(new(reels.Client)),
			),
			session.New,
			func(s *session.Store) session.Reader { return s },
			shareimpl.New,
			feed.New,
			fx.Annotate(
				func(cfg *config.Config) *upload.FFmpegExtractor {
					return upload.NewFFmpegExtractor(cfg.Upload.FFmpegPath)
				},
				fx.As(new(upload.FrameExtractor)),
			),
			upload.New,
			ratelimit.NewFromConfig,
			fx.Annotate(
				commandimpl.New,
				fx.As(new(command.Client)),
			),
		),
		fx.Invoke(run),
	)
}

func run(lc fx.Lifecycle, shutdowner fx.Shutdowner, log logger.Logger, store *session.Store, cmd command.Client) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			store.Bootstrap(startCtx)
			if identity := store.Identity(); identity != nil {
				log.Info("Session restored", "username", identity.Username)
			}

			go func() {
				if err := cmd.Run(ctx, os.Stdin); err != nil {
					log.Error("Command loop stopped", "error", err)
				}
				if err := shutdowner.Shutdown(); err != nil {
					log.Error("Failed to shut down", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}
