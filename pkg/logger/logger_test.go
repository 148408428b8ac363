package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/tienda-pos/pkg/config"
)

func TestNivelDesde(t *testing.T) {
	casos := []struct {
		entrada  string
		esperado zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verboso", zerolog.InfoLevel}, // desconocido cae a info
	}
	for _, c := range casos {
		assert.Equal(t, c.esperado, nivelDesde(c.entrada), "entrada %q", c.entrada)
	}
}

func TestNewConfiguraNivelYLoggerGlobal(t *testing.T) {
	l := New(config.AppConfig{Name: "tienda-pos", Env: "production", LogLevel: "error"})

	assert.Equal(t, zerolog.ErrorLevel, l.Zerolog().GetLevel())
	// El logger global queda apuntando a la misma configuración.
	assert.Equal(t, zerolog.ErrorLevel, log.Logger.GetLevel())
}

func TestConAgregaCamposFijos(t *testing.T) {
	l := New(config.AppConfig{Name: "tienda-pos", Env: "development", LogLevel: "debug"})
	sub := l.Con(map[string]string{"modulo": "caja"})
	assert.NotNil(t, sub)
	assert.Equal(t, zerolog.DebugLevel, sub.Zerolog().GetLevel())
}
