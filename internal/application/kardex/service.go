package kardex

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	domkardex "github.com/tu-usuario/tienda-pos/internal/domain/kardex"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
)

// Service implementa el ledger de costo promedio ponderado (Kardex).
// Las escrituras se hacen vía RegistrarEnTx con repositorios atados a la
// transacción del caller (el coordinador POS); las consultas usan los
// repositorios del pool.
type Service struct {
	kardexRepo  repository.KardexRepository
	productRepo repository.ProductRepository
}

// NewService construye el servicio de Kardex.
func NewService(kardexRepo repository.KardexRepository, productRepo repository.ProductRepository) *Service {
	return &Service{kardexRepo: kardexRepo, productRepo: productRepo}
}

// Direcciones de un AJUSTE. No se persisten: la dirección se infiere después
// comparando StockAnterior con StockActual.
const (
	AjusteEntrada = "ENTRADA"
	AjusteSalida  = "SALIDA"
)

// MovimientoInput entrada para registrar un movimiento en el Kardex.
// Producto debe venir ya bloqueado (GetForUpdate) por la transacción del
// caller: ese bloqueo serializa el puntero al último movimiento por producto.
type MovimientoInput struct {
	Producto       *entity.Product
	Tipo           string // ENTRADA, SALIDA, AJUSTE
	Direccion      string // solo para AJUSTE: ENTRADA o SALIDA
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
	Referencia     string
	Usuario        string
	Observaciones  string
	Fecha          time.Time
}

// RegistrarEnTx registra un movimiento usando el repositorio atado a la
// transacción del caller y devuelve el movimiento creado.
//
// ENTRADA y AJUSTE positivo recalculan el costo promedio ponderado; SALIDA y
// AJUSTE negativo nunca lo cambian (la salida no reprecia el pool) y exigen
// cantidad <= stock actual. ValorTotal se guarda solo para auditoría.
func (s *Service) RegistrarEnTx(kardexRepo repository.KardexRepository, in MovimientoInput) (*entity.Kardex, error) {
	if in.Producto == nil {
		return nil, domain.ErrNotFound
	}
	if !in.Cantidad.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}
	if in.PrecioUnitario.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	esSalida := false
	switch in.Tipo {
	case entity.KardexEntrada:
	case entity.KardexSalida:
		esSalida = true
	case entity.KardexAjuste:
		switch in.Direccion {
		case AjusteEntrada:
		case AjusteSalida:
			esSalida = true
		default:
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	ultimo, err := kardexRepo.GetLatest(in.Producto.ID)
	if err != nil {
		return nil, err
	}
	stockAnterior := decimal.Zero
	costoAnterior := decimal.Zero
	if ultimo != nil {
		stockAnterior = ultimo.StockActual
		costoAnterior = ultimo.CostoPromedioActual
	}

	var stockActual, costoActual decimal.Decimal
	if esSalida {
		if stockAnterior.LessThan(in.Cantidad) {
			return nil, domain.ErrInsufficientStock
		}
		stockActual = stockAnterior.Sub(in.Cantidad)
		costoActual = costoAnterior
	} else {
		stockActual = stockAnterior.Add(in.Cantidad)
		costoActual = domkardex.CostoPromedioPonderado(stockAnterior, costoAnterior, in.Cantidad, in.PrecioUnitario)
	}

	fecha := in.Fecha
	if fecha.IsZero() {
		fecha = time.Now()
	}
	mov := &entity.Kardex{
		ID:                    uuid.New().String(),
		ProductID:             in.Producto.ID,
		FechaMovimiento:       fecha,
		TipoMovimiento:        in.Tipo,
		Cantidad:              in.Cantidad,
		PrecioUnitario:        in.PrecioUnitario,
		ValorTotal:            in.Cantidad.Mul(in.PrecioUnitario),
		StockAnterior:         stockAnterior,
		StockActual:           stockActual,
		CostoPromedioAnterior: costoAnterior,
		CostoPromedioActual:   costoActual,
		ReferenciaDocumento:   in.Referencia,
		UsuarioRegistro:       in.Usuario,
		Observaciones:         in.Observaciones,
	}
	if err := kardexRepo.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// UltimoMovimiento devuelve el último movimiento del producto (nil si no hay).
func (s *Service) UltimoMovimiento(productID string) (*entity.Kardex, error) {
	return s.kardexRepo.GetLatest(productID)
}

// Movimientos lista movimientos según el filtro.
func (s *Service) Movimientos(filter repository.KardexFilter) ([]*entity.Kardex, error) {
	return s.kardexRepo.List(filter)
}
