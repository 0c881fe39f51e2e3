// Package money formatea importes para tickets y reportes (es-CO: miles con punto, decimales con coma).
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.MustParse("es-CO"))

// Format devuelve el importe con símbolo y dos decimales, p. ej. "$12.500,00".
func Format(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return "$" + printer.Sprint(number.Decimal(f, number.Scale(2)))
}

// Int formatea un entero con separador de miles.
func Int(n int) string {
	return printer.Sprint(number.Decimal(n))
}
