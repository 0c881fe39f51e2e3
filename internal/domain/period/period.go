// Package period agrupa fechas en periodos de reporte (día, semana ISO-8601, mes).
package period

import (
	"fmt"
	"time"
)

// Tipos de agrupación aceptados por los reportes de ventas.
const (
	Daily   = "daily"
	Weekly  = "weekly"
	Monthly = "monthly"
)

// Valid indica si kind es un tipo de agrupación conocido.
func Valid(kind string) bool {
	switch kind {
	case Daily, Weekly, Monthly:
		return true
	}
	return false
}

// Key devuelve la clave del periodo al que pertenece t:
//   - daily:   2024-01-05
//   - weekly:  2024-W1 (año ISO + semana ISO; el 2024-12-30 cae en 2025-W1)
//   - monthly: 2024-1
//
// t se evalúa en su propia zona horaria. Un tipo desconocido devuelve la clave diaria.
func Key(kind string, t time.Time) string {
	switch kind {
	case Weekly:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%d", year, week)
	case Monthly:
		return fmt.Sprintf("%d-%d", t.Year(), int(t.Month()))
	default:
		return t.Format("2006-01-02")
	}
}

// DayStart devuelve el inicio del día de t en su zona horaria.
func DayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayEnd devuelve el último instante del día de t.
func DayEnd(t time.Time) time.Time {
	return DayStart(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// ParseDate interpreta fechas de query string: 2006-01-02 o RFC3339.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida %q: %w", s, err)
	}
	return t, nil
}
