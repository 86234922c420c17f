// Package logger expone el logger estructurado de la aplicación sobre zerolog
// y el observador que registra las operaciones del motor de inventario.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Config controla el formato y el nivel mínimo de salida.
type Config struct {
	Env   string // "development" imprime consola legible; cualquier otro, JSON
	Level string // trace, debug, info, warn, error; inválido o vacío cae en info
}

// Logger envuelve zerolog para inyectarse en los componentes de la app.
type Logger struct {
	zl zerolog.Logger
}

// New construye el logger raíz según la configuración.
func New(cfg Config) *Logger {
	var out io.Writer = os.Stdout
	if cfg.Env == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	return &Logger{zl: zerolog.New(out).Level(level).With().Timestamp().Logger()}
}

func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// With crea un sublogger con campos fijos.
func (l *Logger) With() zerolog.Context {
	return l.zl.With()
}
