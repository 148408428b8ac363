package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tu-usuario/tienda-pos/pkg/config"
)

// Logger logger estructurado de la aplicación sobre zerolog.
type Logger struct {
	zl zerolog.Logger
}

// New construye el logger a partir de la sección app de la configuración:
// en development escribe consola legible con hora corta, en cualquier otro
// entorno JSON de una línea por evento. Cada evento lleva el nombre de la
// aplicación. También reapunta el logger global de zerolog, que es el que
// usan los casos de uso vía zerolog/log.
func New(app config.AppConfig) *Logger {
	var salida io.Writer = os.Stdout
	if app.Env == "development" {
		salida = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.TimeOnly}
	}

	zl := zerolog.New(salida).
		Level(nivelDesde(app.LogLevel)).
		With().
		Timestamp().
		Str("app", app.Name).
		Logger()
	log.Logger = zl

	return &Logger{zl: zl}
}

// nivelDesde traduce app.log_level; vacío o desconocido cae a info.
func nivelDesde(s string) zerolog.Level {
	nivel, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || nivel == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return nivel
}

func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// Con devuelve un sublogger con campos fijos adicionales.
func (l *Logger) Con(campos map[string]string) *Logger {
	ctx := l.zl.With()
	for k, v := range campos {
		ctx = ctx.Str(k, v)
	}
	return &Logger{zl: ctx.Logger()}
}

// Zerolog expone el logger interno para la API directa de zerolog.
func (l *Logger) Zerolog() zerolog.Logger { return l.zl }
