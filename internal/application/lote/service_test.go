package lote_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/tienda-pos/internal/application/dto"
	"github.com/tu-usuario/tienda-pos/internal/application/lote"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/internal/infrastructure/cache"
	"github.com/tu-usuario/tienda-pos/internal/infrastructure/memory"
)

// cacheEspia guarda el último resumen escrito y sirve los hits configurados.
type cacheEspia struct {
	guardado *dto.AlertasLotes
	hit      *dto.AlertasLotes
	lecturas int
}

func (c *cacheEspia) Get(_ context.Context, _ string) (*dto.AlertasLotes, bool, error) {
	c.lecturas++
	if c.hit != nil {
		return c.hit, true, nil
	}
	return nil, false, nil
}

func (c *cacheEspia) Set(_ context.Context, _ string, v *dto.AlertasLotes, _ time.Duration) error {
	c.guardado = v
	return nil
}

func TestVencidosYProximosAVencer(t *testing.T) {
	store := memory.NewStore()
	repo := store.Lotes()
	svc := lote.NewService(repo, cache.NewNoop())
	productID := "prod-1"
	hoy := time.Now()

	vencido := crearLote(t, repo, productID, "3", fechaPtr(hoy.AddDate(0, 0, -1)), hoy.AddDate(0, 0, -60))
	proximo := crearLote(t, repo, productID, "4", fechaPtr(hoy.AddDate(0, 0, 10)), hoy.AddDate(0, 0, -5))
	lejano := crearLote(t, repo, productID, "5", fechaPtr(hoy.AddDate(0, 0, 90)), hoy)
	crearLote(t, repo, productID, "6", nil, hoy) // sin vencimiento: nunca alerta

	vencidos, err := svc.Vencidos()
	require.NoError(t, err)
	require.Len(t, vencidos, 1)
	assert.Equal(t, vencido.ID, vencidos[0].ID)

	proximos, err := svc.ProximosAVencer()
	require.NoError(t, err)
	require.Len(t, proximos, 1)
	assert.Equal(t, proximo.ID, proximos[0].ID)

	stock, err := svc.StockTotal(productID)
	require.NoError(t, err)
	assert.True(t, stock.Equal(d("18")))
	_ = lejano
}

func TestResumenAlertasCalculaYGuardaEnCache(t *testing.T) {
	store := memory.NewStore()
	repo := store.Lotes()
	espia := &cacheEspia{}
	svc := lote.NewService(repo, espia)
	hoy := time.Now()

	crearLote(t, repo, "prod-1", "3", fechaPtr(hoy.AddDate(0, 0, -2)), hoy.AddDate(0, 0, -60))
	crearLote(t, repo, "prod-1", "4", fechaPtr(hoy.AddDate(0, 0, 7)), hoy)
	crearLote(t, repo, "prod-2", "5", fechaPtr(hoy.AddDate(0, 0, 15)), hoy)

	resumen, err := svc.ResumenAlertas(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, resumen.LotesVencidos)
	assert.Equal(t, 2, resumen.LotesProximosAVencer)
	assert.Equal(t, 3, resumen.TotalAlertas)
	require.NotNil(t, espia.guardado)
	assert.Equal(t, resumen, espia.guardado)
}

func TestResumenAlertasUsaElCache(t *testing.T) {
	store := memory.NewStore()
	espia := &cacheEspia{hit: &dto.AlertasLotes{TotalAlertas: 7, LotesVencidos: 3, LotesProximosAVencer: 4}}
	svc := lote.NewService(store.Lotes(), espia)

	resumen, err := svc.ResumenAlertas(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, resumen.TotalAlertas)
	assert.Nil(t, espia.guardado) // con hit no se recalcula ni se reescribe
}

func TestLotesAgotadosNoCuentanEnElStock(t *testing.T) {
	store := memory.NewStore()
	repo := store.Lotes()
	svc := lote.NewService(repo, cache.NewNoop())
	hoy := time.Now()

	l := crearLote(t, repo, "prod-1", "5", fechaPtr(hoy.AddDate(0, 0, 5)), hoy)
	_, err := lote.Asignar(repo, "prod-1", d("5"))
	require.NoError(t, err)

	stock, err := svc.StockTotal("prod-1")
	require.NoError(t, err)
	assert.True(t, stock.IsZero())

	lotes, err := svc.PorProducto("prod-1")
	require.NoError(t, err)
	require.Len(t, lotes, 1)
	assert.Equal(t, entity.LoteAgotado, lotes[0].Estado)
	_ = l
}
