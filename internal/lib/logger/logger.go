package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/linemk/online-store/internal/lib/logger/handlers/slogpretty"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// ServiceName попадает в каждую JSON-запись, чтобы логи API и сидера
// можно было отличить от соседних сервисов в общем сборщике
const ServiceName = "online-store"

// SetupLogger создаёт логгер для окружения env.
// local - цветной вывод, dev и прочие - JSON. level ("debug", "info", "warn", "error")
// переопределяет уровень окружения; пустой или нераспознанный уровень игнорируется
func SetupLogger(env, level string) *slog.Logger {
	return newLogger(os.Stdout, env, level)
}

func newLogger(out io.Writer, env, level string) *slog.Logger {
	lvl := resolveLevel(env, level)

	if env == EnvLocal {
		color.NoColor = false
		opts := slogpretty.PrettyHandlerOptions{
			SlogOpts: &slog.HandlerOptions{Level: lvl},
		}
		return slog.New(opts.NewPrettyHandler(out))
	}

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: lvl})
	return slog.New(handler).With(
		slog.String("service", ServiceName),
		slog.String("env", env),
	)
}

func resolveLevel(env, level string) slog.Level {
	if level != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err == nil {
			return lvl
		}
	}

	switch env {
	case EnvLocal, EnvDev:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}
