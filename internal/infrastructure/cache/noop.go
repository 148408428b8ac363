package cache

import (
	"context"
	"time"

	"github.com/tu-usuario/tienda-pos/internal/application/dto"
	"github.com/tu-usuario/tienda-pos/internal/application/lote"
)

var _ lote.AlertCache = (*Noop)(nil)

// Noop caché que nunca acierta, para operar sin Redis.
type Noop struct{}

// NewNoop crea el caché noop.
func NewNoop() *Noop { return &Noop{} }

func (Noop) Get(ctx context.Context, key string) (*dto.AlertasLotes, bool, error) {
	return nil, false, nil
}

func (Noop) Set(ctx context.Context, key string, value *dto.AlertasLotes, ttl time.Duration) error {
	return nil
}
