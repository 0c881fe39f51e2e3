package period_test

import (
	"testing"
	"time"

	"github.com/jhoicas/autoservicio-api/internal/domain/period"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey_Daily(t *testing.T) {
	d := time.Date(2024, 2, 9, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-02-09", period.Key(period.Daily, d))
}

func TestKey_Monthly_SinCeroALaIzquierda(t *testing.T) {
	d := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-3", period.Key(period.Monthly, d))
}

// ──────────────────────────────────────────────────────────────────────────────
// Semana ISO: el jueves 2026-01-01 está en la semana 1 de 2026, y los días de
// diciembre 2025 de esa misma semana también pertenecen a 2026-W1.
// ──────────────────────────────────────────────────────────────────────────────

func TestKey_Weekly_JuevesSemanaUno(t *testing.T) {
	thursday := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	require.Equal(t, time.Thursday, thursday.Weekday())
	assert.Equal(t, "2026-W1", period.Key(period.Weekly, thursday))
}

func TestKey_Weekly_DiciembreEnSemanaUnoDelAnioSiguiente(t *testing.T) {
	monday := time.Date(2025, 12, 29, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-W1", period.Key(period.Weekly, monday))

	// 2024-12-30 es lunes de la semana 1 de 2025.
	assert.Equal(t, "2025-W1", period.Key(period.Weekly, time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC)))
}

func TestKey_Weekly_EneroEnUltimaSemanaDelAnioAnterior(t *testing.T) {
	// 2021-01-01 (viernes) pertenece a 2020-W53.
	assert.Equal(t, "2020-W53", period.Key(period.Weekly, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestKey_TipoDesconocidoUsaDiario(t *testing.T) {
	d := time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-07-04", period.Key("yearly", d))
	assert.False(t, period.Valid("yearly"))
	assert.True(t, period.Valid(period.Weekly))
}

func TestParseDate(t *testing.T) {
	d, err := period.ParseDate("2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())

	_, err = period.ParseDate("01/05/2024")
	assert.Error(t, err)
}

func TestDayEnd(t *testing.T) {
	d := time.Date(2024, 5, 1, 13, 0, 0, 0, time.UTC)
	end := period.DayEnd(d)
	assert.Equal(t, 1, end.Day())
	assert.Equal(t, 23, end.Hour())
	assert.True(t, end.Before(time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)))
}
