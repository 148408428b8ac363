package kardex

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCostoPromedioPonderado(t *testing.T) {
	casos := []struct {
		nombre       string
		stockActual  string
		costoActual  string
		cantEntrada  string
		costoEntrada string
		esperado     string
	}{
		{
			nombre:      "primera entrada toma el costo de compra",
			stockActual: "0", costoActual: "0",
			cantEntrada: "10", costoEntrada: "5.00",
			esperado: "5",
		},
		{
			nombre:      "segunda entrada pondera por cantidades",
			stockActual: "10", costoActual: "10.00",
			cantEntrada: "5", costoEntrada: "16.00",
			esperado: "12", // (10*10 + 5*16) / 15
		},
		{
			nombre:      "entrada al mismo costo no mueve el promedio",
			stockActual: "8", costoActual: "3.50",
			cantEntrada: "4", costoEntrada: "3.50",
			esperado: "3.5",
		},
		{
			nombre:      "entrada gratis diluye el promedio",
			stockActual: "5", costoActual: "10.00",
			cantEntrada: "5", costoEntrada: "0",
			esperado: "5",
		},
		{
			nombre:      "stock negativo previo se reinicia al costo de entrada",
			stockActual: "-3", costoActual: "7.00",
			cantEntrada: "3", costoEntrada: "9.00",
			esperado: "0", // stock resultante <= 0: promedio en cero
		},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			got := CostoPromedioPonderado(d(c.stockActual), d(c.costoActual), d(c.cantEntrada), d(c.costoEntrada))
			assert.True(t, got.Equal(d(c.esperado)), "esperaba %s, obtuve %s", c.esperado, got)
		})
	}
}

func TestCostoPromedioPonderadoNoPierdePrecision(t *testing.T) {
	// 3 unidades a 10.00 más 7 a 12.57: el promedio es exacto, sin redondeo
	// intermedio de punto flotante.
	got := CostoPromedioPonderado(d("3"), d("10.00"), d("7"), d("12.57"))
	assert.True(t, got.Equal(d("11.799")), "obtuve %s", got)
}
