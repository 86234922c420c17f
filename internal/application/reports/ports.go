package reports

import (
	"context"
	"time"

	"github.com/tu-usuario/pos-inventario/internal/application/dto"
)

// StatsCache cachea el snapshot del dashboard (la UI lo consulta en cada
// render). Las implementaciones deben tolerar fallos: un error de caché nunca
// debe tumbar la consulta.
type StatsCache interface {
	GetStats(ctx context.Context) (*dto.StatsResponse, bool, error)
	SetStats(ctx context.Context, stats *dto.StatsResponse, ttl time.Duration) error
}

// NopStatsCache caché nula (tests y despliegues sin redis).
type NopStatsCache struct{}

func (NopStatsCache) GetStats(context.Context) (*dto.StatsResponse, bool, error) {
	return nil, false, nil
}

func (NopStatsCache) SetStats(context.Context, *dto.StatsResponse, time.Duration) error {
	return nil
}
