package lote

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-pos/internal/application/dto"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
)

// AlertCache cachea el resumen de alertas de vencimiento (TTL corto). Una
// implementación noop permite operar sin redis.
type AlertCache interface {
	Get(ctx context.Context, key string) (*dto.AlertasLotes, bool, error)
	Set(ctx context.Context, key string, value *dto.AlertasLotes, ttl time.Duration) error
}

const (
	alertasCacheKey = "lotes:alertas"
	alertasCacheTTL = 5 * time.Minute
)

// Service consultas de lotes y alertas de vencimiento.
type Service struct {
	loteRepo repository.LoteRepository
	cache    AlertCache
	now      func() time.Time
}

// NewService construye el servicio de lotes.
func NewService(loteRepo repository.LoteRepository, cache AlertCache) *Service {
	return &Service{loteRepo: loteRepo, cache: cache, now: time.Now}
}

// PorProducto lista los lotes de un producto.
func (s *Service) PorProducto(productID string) ([]*entity.Lote, error) {
	return s.loteRepo.ListByProduct(productID)
}

// StockTotal devuelve el stock autoritativo del producto: la suma de
// cantidad_disponible de sus lotes activos.
func (s *Service) StockTotal(productID string) (decimal.Decimal, error) {
	return s.loteRepo.SumDisponible(productID)
}

// Vencidos lista los lotes activos ya vencidos.
func (s *Service) Vencidos() ([]*entity.Lote, error) {
	return s.loteRepo.ListVencidos(s.now())
}

// ProximosAVencer lista los lotes que vencen dentro de la ventana de alerta.
func (s *Service) ProximosAVencer() ([]*entity.Lote, error) {
	hoy := s.now()
	return s.loteRepo.ListProximosAVencer(hoy, hoy.AddDate(0, 0, entity.DiasAlertaVencimiento))
}

// ResumenAlertas cuenta lotes vencidos y próximos a vencer. El resultado se
// cachea con TTL corto porque solo alimenta el tablero de alertas.
func (s *Service) ResumenAlertas(ctx context.Context) (*dto.AlertasLotes, error) {
	if cached, ok, err := s.cache.Get(ctx, alertasCacheKey); err == nil && ok {
		return cached, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("cache de alertas de lotes no disponible")
	}

	vencidos, err := s.Vencidos()
	if err != nil {
		return nil, err
	}
	proximos, err := s.ProximosAVencer()
	if err != nil {
		return nil, err
	}
	resumen := &dto.AlertasLotes{
		TotalAlertas:         len(vencidos) + len(proximos),
		LotesVencidos:        len(vencidos),
		LotesProximosAVencer: len(proximos),
	}
	if err := s.cache.Set(ctx, alertasCacheKey, resumen, alertasCacheTTL); err != nil {
		log.Warn().Err(err).Msg("no se pudo guardar el resumen de alertas en cache")
	}
	return resumen, nil
}
