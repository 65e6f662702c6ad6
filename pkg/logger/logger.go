package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
	slogzerolog "github.com/samber/slog-zerolog/v2"
)

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	WithComponent(name string) Logger
}

type Opts struct {
	Env       string
	SentryDSN string
	// Writer defaults to stderr.
	Writer io.Writer
}

type Impl struct {
	*slog.Logger
	sentry bool
}

var _ Logger = (*Impl)(nil)

// New builds a slog logger backed by zerolog. When a Sentry DSN is given,
// error records are also forwarded to Sentry.
func New(opts Opts) *Impl {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	level := slog.LevelDebug
	var zl zerolog.Logger
	if opts.Env == "production" {
		level = slog.LevelInfo
		zl = zerolog.New(w).With().Timestamp().Logger()
	} else {
		zl = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
	}

	handlers := []slog.Handler{
		slogzerolog.Option{Level: level, Logger: &zl}.NewZerologHandler(),
	}

	withSentry := false
	if opts.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         opts.SentryDSN,
			Environment: opts.Env,
		})
		if err != nil {
			zl.Error().Err(err).Msg("Failed to init sentry, continuing without it")
		} else {
			withSentry = true
			handlers = append(handlers, slogsentry.Option{Level: slog.LevelError}.NewSentryHandler())
		}
	}

	return &Impl{
		Logger: slog.New(slogmulti.Fanout(handlers...)),
		sentry: withSentry,
	}
}

// Nop discards everything. Handy in tests.
func Nop() *Impl {
	return New(Opts{Env: "test", Writer: io.Discard})
}

func (l *Impl) WithComponent(name string) Logger {
	return &Impl{
		Logger: l.Logger.With("component", name),
		sentry: l.sentry,
	}
}

// Printf lets the logger act as an fx.Printer.
func (l *Impl) Printf(format string, args ...interface{}) {
	l.Logger.Debug(fmt.Sprintf(format, args...))
}

// Flush drains buffered Sentry events.
func (l *Impl) Flush(timeout time.Duration) {
	if l.sentry {
		sentry.Flush(timeout)
	}
}
