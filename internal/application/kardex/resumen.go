package kardex

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-pos/internal/application/dto"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
)

// Resumen calcula el resumen de Kardex de un producto en un rango:
// saldo inicial, totales de entrada/salida en cantidad y valor, stock final,
// costo promedio final y valor del inventario final.
//
// La dirección de un AJUSTE no se guarda: se infiere comparando
// StockAnterior con StockActual de cada movimiento.
func (s *Service) Resumen(productID string, desde, hasta *time.Time, tipo string) (*dto.ResumenKardex, error) {
	resumen := &dto.ResumenKardex{ProductID: productID}

	saldoInicial := decimal.Zero
	if desde != nil {
		previo, err := s.kardexRepo.GetLatestBefore(productID, *desde)
		if err != nil {
			return nil, err
		}
		if previo != nil {
			saldoInicial = previo.StockActual
		}
	}
	resumen.SaldoInicial = saldoInicial

	movimientos, err := s.kardexRepo.List(repository.KardexFilter{
		ProductID:      productID,
		Desde:          desde,
		Hasta:          hasta,
		TipoMovimiento: tipo,
	})
	if err != nil {
		return nil, err
	}

	entradasCant := decimal.Zero
	salidasCant := decimal.Zero
	entradasVal := decimal.Zero
	salidasVal := decimal.Zero
	for _, k := range movimientos {
		switch k.TipoMovimiento {
		case entity.KardexSalida:
			salidasCant = salidasCant.Add(k.Cantidad)
			salidasVal = salidasVal.Add(k.ValorTotal)
		case entity.KardexAjuste:
			if k.EsAjustePositivo() {
				entradasCant = entradasCant.Add(k.Cantidad)
				entradasVal = entradasVal.Add(k.ValorTotal)
			} else if k.StockActual.LessThan(k.StockAnterior) {
				salidasCant = salidasCant.Add(k.Cantidad)
				salidasVal = salidasVal.Add(k.ValorTotal)
			}
			// ajuste neutro: no cuenta
		default: // ENTRADA
			entradasCant = entradasCant.Add(k.Cantidad)
			entradasVal = entradasVal.Add(k.ValorTotal)
		}
	}

	resumen.TotalEntradasCantidad = entradasCant
	resumen.TotalSalidasCantidad = salidasCant
	resumen.TotalEntradasValor = entradasVal
	resumen.TotalSalidasValor = salidasVal
	resumen.StockFinal = saldoInicial.Add(entradasCant).Sub(salidasCant)

	ultimo, err := s.kardexRepo.GetLatest(productID)
	if err != nil {
		return nil, err
	}
	if ultimo != nil {
		resumen.CostoPromedioFinal = ultimo.CostoPromedioActual
	} else {
		resumen.CostoPromedioFinal = decimal.Zero
	}
	resumen.CostoTotalFinal = resumen.CostoPromedioFinal.Mul(resumen.StockFinal)
	return resumen, nil
}

// ExportarCSV serializa los movimientos que cumplen el filtro como CSV.
func (s *Service) ExportarCSV(filter repository.KardexFilter) ([]byte, error) {
	movimientos, err := s.kardexRepo.List(filter)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{
		"fecha", "producto_id", "tipo", "cantidad", "precio_unitario", "valor_total",
		"stock_anterior", "stock_actual", "costo_promedio_anterior", "costo_promedio_actual",
		"referencia", "usuario",
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("escribir cabecera csv: %w", err)
	}
	for _, k := range movimientos {
		row := []string{
			k.FechaMovimiento.Format(time.RFC3339),
			k.ProductID,
			k.TipoMovimiento,
			k.Cantidad.String(),
			k.PrecioUnitario.String(),
			k.ValorTotal.String(),
			k.StockAnterior.String(),
			k.StockActual.String(),
			k.CostoPromedioAnterior.String(),
			k.CostoPromedioActual.String(),
			k.ReferenciaDocumento,
			k.UsuarioRegistro,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("escribir fila csv: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("volcar csv: %w", err)
	}
	return buf.Bytes(), nil
}
