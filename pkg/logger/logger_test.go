package logger_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/autoservicio-api/pkg/logger"
)

func lines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, raw := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if raw == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(raw), &m))
		out = append(out, m)
	}
	return out
}

func TestNew_LoggerGlobalLlevaServicio(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	var buf bytes.Buffer
	logger.New(logger.Config{Env: "production", Level: "info", Service: "autoservicio-api", Output: &buf})

	log.Info().Str("sale_id", "v-1").Msg("venta registrada")

	got := lines(t, &buf)
	require.Len(t, got, 1)
	assert.Equal(t, "autoservicio-api", got[0]["service"])
	assert.Equal(t, "v-1", got[0]["sale_id"])
	assert.Equal(t, "info", got[0]["level"])
}

func TestNew_FiltraPorNivel(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "WARN", Output: &buf})

	l.Info().Msg("descartado")
	log.Debug().Msg("descartado")
	l.Warn().Msg("visible")

	got := lines(t, &buf)
	require.Len(t, got, 1)
	assert.Equal(t, "visible", got[0]["message"])
	assert.NotContains(t, got[0], "service")
}

func TestNew_NivelDesconocidoUsaInfo(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "ruidoso", Output: &buf})
	l.Debug().Msg("descartado")
	l.Info().Msg("visible")

	assert.Len(t, lines(t, &buf), 1)
}
