package lote_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/tienda-pos/internal/application/lote"
	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
	"github.com/tu-usuario/tienda-pos/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func fechaPtr(t time.Time) *time.Time { return &t }

func crearLote(t *testing.T, repo repository.LoteRepository, productID string, cantidad string, vencimiento *time.Time, entrada time.Time) *entity.Lote {
	t.Helper()
	l := &entity.Lote{
		ID:                 uuid.New().String(),
		ProductID:          productID,
		NumeroLote:         "LOTE-" + entrada.Format("20060102"),
		FechaEntrada:       entrada,
		FechaVencimiento:   vencimiento,
		CantidadRecibida:   d(cantidad),
		CantidadDisponible: d(cantidad),
		Estado:             entity.LoteActivo,
	}
	require.NoError(t, repo.Create(l))
	return l
}

func disponibleDe(t *testing.T, repo repository.LoteRepository, id string) *entity.Lote {
	t.Helper()
	l, err := repo.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, l)
	return l
}

func TestAsignarConsumePrimeroElMasProximoAVencer(t *testing.T) {
	repo := memory.NewStore().Lotes()
	productID := uuid.New().String()
	hoy := time.Now()

	// El lote que vence antes entró después: el orden lo manda el
	// vencimiento, no la fecha de entrada.
	tardio := crearLote(t, repo, productID, "5", fechaPtr(hoy.AddDate(0, 0, 30)), hoy.AddDate(0, 0, -10))
	temprano := crearLote(t, repo, productID, "5", fechaPtr(hoy.AddDate(0, 0, 5)), hoy.AddDate(0, 0, -2))

	consumos, err := lote.Asignar(repo, productID, d("7"))
	require.NoError(t, err)
	require.Len(t, consumos, 2)
	assert.Equal(t, temprano.ID, consumos[0].Lote.ID)
	assert.True(t, consumos[0].Cantidad.Equal(d("5")))
	assert.Equal(t, tardio.ID, consumos[1].Lote.ID)
	assert.True(t, consumos[1].Cantidad.Equal(d("2")))

	agotado := disponibleDe(t, repo, temprano.ID)
	assert.True(t, agotado.CantidadDisponible.IsZero())
	assert.Equal(t, entity.LoteAgotado, agotado.Estado)

	parcial := disponibleDe(t, repo, tardio.ID)
	assert.True(t, parcial.CantidadDisponible.Equal(d("3")))
	assert.Equal(t, entity.LoteActivo, parcial.Estado)
}

func TestAsignarSinVencimientoVaAlFinal(t *testing.T) {
	repo := memory.NewStore().Lotes()
	productID := uuid.New().String()
	hoy := time.Now()

	sinVencimiento := crearLote(t, repo, productID, "10", nil, hoy.AddDate(0, 0, -30))
	conVencimiento := crearLote(t, repo, productID, "4", fechaPtr(hoy.AddDate(0, 0, 60)), hoy)

	consumos, err := lote.Asignar(repo, productID, d("6"))
	require.NoError(t, err)
	require.Len(t, consumos, 2)
	assert.Equal(t, conVencimiento.ID, consumos[0].Lote.ID)
	assert.Equal(t, sinVencimiento.ID, consumos[1].Lote.ID)
	assert.True(t, disponibleDe(t, repo, sinVencimiento.ID).CantidadDisponible.Equal(d("8")))
}

func TestAsignarTodoONada(t *testing.T) {
	repo := memory.NewStore().Lotes()
	productID := uuid.New().String()
	hoy := time.Now()

	a := crearLote(t, repo, productID, "5", fechaPtr(hoy.AddDate(0, 0, 5)), hoy)
	b := crearLote(t, repo, productID, "3", fechaPtr(hoy.AddDate(0, 0, 10)), hoy)

	_, err := lote.Asignar(repo, productID, d("9"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nada quedó mutado: ni siquiera el primer lote del orden FEFO.
	assert.True(t, disponibleDe(t, repo, a.ID).CantidadDisponible.Equal(d("5")))
	assert.True(t, disponibleDe(t, repo, b.ID).CantidadDisponible.Equal(d("3")))
}

func TestAsignarCantidadInvalida(t *testing.T) {
	repo := memory.NewStore().Lotes()
	_, err := lote.Asignar(repo, uuid.New().String(), decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	_, err = lote.Asignar(repo, uuid.New().String(), d("-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestRestaurarDevuelveEnOrdenInverso(t *testing.T) {
	repo := memory.NewStore().Lotes()
	productID := uuid.New().String()
	hoy := time.Now()

	temprano := crearLote(t, repo, productID, "5", fechaPtr(hoy.AddDate(0, 0, 5)), hoy)
	tardio := crearLote(t, repo, productID, "5", fechaPtr(hoy.AddDate(0, 0, 30)), hoy)

	_, err := lote.Asignar(repo, productID, d("7")) // temprano 0, tardio 3
	require.NoError(t, err)

	devoluciones, err := lote.Restaurar(repo, productID, d("7"))
	require.NoError(t, err)
	require.Len(t, devoluciones, 2)
	// El reverso rellena primero el lote que se consumió al final.
	assert.Equal(t, tardio.ID, devoluciones[0].Lote.ID)
	assert.True(t, devoluciones[0].Cantidad.Equal(d("2")))
	assert.Equal(t, temprano.ID, devoluciones[1].Lote.ID)
	assert.True(t, devoluciones[1].Cantidad.Equal(d("5")))

	reactivado := disponibleDe(t, repo, temprano.ID)
	assert.True(t, reactivado.CantidadDisponible.Equal(d("5")))
	assert.Equal(t, entity.LoteActivo, reactivado.Estado)
}

func TestRestaurarNoSuperaLaCantidadRecibida(t *testing.T) {
	repo := memory.NewStore().Lotes()
	productID := uuid.New().String()
	hoy := time.Now()

	l := crearLote(t, repo, productID, "5", fechaPtr(hoy.AddDate(0, 0, 5)), hoy)
	_, err := lote.Asignar(repo, productID, d("2"))
	require.NoError(t, err)

	// Solo hay 2 unidades restaurables; pedir 3 no muta nada.
	_, err = lote.Restaurar(repo, productID, d("3"))
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.True(t, disponibleDe(t, repo, l.ID).CantidadDisponible.Equal(d("3")))

	devoluciones, err := lote.Restaurar(repo, productID, d("2"))
	require.NoError(t, err)
	require.Len(t, devoluciones, 1)
	assert.True(t, disponibleDe(t, repo, l.ID).CantidadDisponible.Equal(d("5")))
}

func TestRestaurarSinConsumoPrevio(t *testing.T) {
	repo := memory.NewStore().Lotes()
	productID := uuid.New().String()
	crearLote(t, repo, productID, "5", nil, time.Now())

	_, err := lote.Restaurar(repo, productID, d("1"))
	assert.ErrorIs(t, err, domain.ErrConflict)
}
