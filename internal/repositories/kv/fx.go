package kv

import (
	"go.uber.org/fx"
)

var FileModule = fx.Module("kv_file",
	fx.Provide(
		fx.Annotate(
			NewFileRepository,
			fx.As(new(Repository)),
		),
	),
)

var PgxModule = fx.Module("kv_pgx",
	fx.Provide(
		fx.Annotate(
			NewPgxRepository,
			fx.As(new(Repository)),
		),
	),
)
