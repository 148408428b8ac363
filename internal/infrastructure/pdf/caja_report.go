// Package pdf implementa la generación del reporte de cierre de caja diaria.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Reporte de Caja  │  Fecha de negocio + Estado      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  APERTURA: fecha/hora, usuario, monto inicial               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Hora | Tipo | Referencia | Descripción | Monto      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Apertura / Ingresos / Egresos / SALDO FINAL       │
//	│  CIERRE: fecha/hora, usuario, observaciones                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appcaja "github.com/tu-usuario/tienda-pos/internal/application/caja"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 160, Green: 30, Blue: 30}
)

var _ appcaja.ReportGenerator = (*MarotoCajaReport)(nil)

// MarotoCajaReport implementa caja.ReportGenerator usando Maroto v2.
type MarotoCajaReport struct{}

// NewMarotoCajaReport construye el generador.
func NewMarotoCajaReport() *MarotoCajaReport { return &MarotoCajaReport{} }

// GenerarReporteCaja genera el PDF del corte de caja y devuelve sus bytes.
func (g *MarotoCajaReport) GenerarReporteCaja(
	caja *entity.CajaDiaria,
	movimientos []*entity.MovimientoCaja,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Caja Diaria", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(caja))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(aperturaRow(caja))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableMovimientoRows(movimientos) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(caja))

	if caja.EstaCerrada() {
		m.AddRows(line.NewRow(2))
		m.AddRows(cierreRow(caja))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha de negocio + estado (der).
func headerRow(caja *entity.CajaDiaria) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("REPORTE DE CAJA DIARIA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Caja: "+caja.ID, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Fecha: "+caja.Fecha.Format("02/01/2006"), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 2,
			}),
			text.New("Estado: "+caja.Estado, props.Text{
				Size: 9, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

// aperturaRow: datos de apertura.
func aperturaRow(caja *entity.CajaDiaria) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("APERTURA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Hora: %s   |   Usuario: %s   |   Monto inicial: $%s",
				caja.FechaApertura.Format("02/01/2006 15:04"),
				caja.UsuarioApertura,
				caja.MontoApertura.StringFixed(2),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de movimientos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Hora", 2, align.Left),
		h("Tipo", 1, align.Center),
		h("Referencia", 3, align.Left),
		h("Descripción", 4, align.Left),
		h("Monto", 2, align.Right),
	)
}

// tableMovimientoRows: una fila por movimiento; los egresos van en negativo y rojo.
func tableMovimientoRows(movimientos []*entity.MovimientoCaja) []core.Row {
	result := make([]core.Row, 0, len(movimientos))
	for _, mov := range movimientos {
		monto := "$" + mov.Monto.StringFixed(2)
		montoColor := colorGray
		if mov.TipoMovimiento == entity.MovimientoEgreso {
			monto = "-" + monto
			montoColor = colorRed
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				mov.FechaMovimiento.Format("15:04:05"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				mov.TipoMovimiento,
				props.Text{Size: 7, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				mov.ReferenciaDocumento,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				mov.Descripcion,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				monto,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: montoColor},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha. El saldo siempre sale
// de apertura + ingresos - egresos.
func totalsRow(caja *entity.CajaDiaria) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(32).Add(
		col.New(3),
		col.New(3).Add(
			label("Monto apertura:"),
			label("Total ingresos:"),
			label("Total egresos:"),
			grandLabel("SALDO FINAL:"),
		),
		col.New(3).Add(
			value("$"+caja.MontoApertura.StringFixed(2)),
			value("$"+caja.TotalIngresos.StringFixed(2)),
			value("$"+caja.TotalEgresos.StringFixed(2)),
			grandValue("$"+caja.SaldoActual().StringFixed(2)),
		),
		col.New(3),
	)
}

// cierreRow: datos del cierre (solo cajas cerradas).
func cierreRow(caja *entity.CajaDiaria) core.Row {
	cierre := "—"
	if caja.FechaCierre != nil {
		cierre = caja.FechaCierre.Format("02/01/2006 15:04")
	}
	monto := "—"
	if caja.MontoCierre != nil {
		monto = "$" + caja.MontoCierre.StringFixed(2)
	}

	return row.New(14).Add(
		col.New(12).Add(
			text.New("CIERRE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Hora: %s   |   Usuario: %s   |   Monto de cierre: %s",
				cierre, caja.UsuarioCierre, monto,
			), props.Text{Size: 8, Top: 6, Color: colorGray}),
			text.New("Observaciones: "+nonEmpty(caja.Observaciones, "—"), props.Text{
				Size: 8, Top: 11, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
