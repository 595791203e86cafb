package warehouse

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/jhoicas/wms-estanterias/internal/domain"
	"github.com/jhoicas/wms-estanterias/internal/domain/entity"
)

// Seed ocupa cada estantería disponible con probabilidad rate usando productos de
// demostración. Cada ocupación pasa por OccupyShelf, así que queda registrada y
// respeta los invariantes. Devuelve cuántas estanterías se ocuparon.
func (s *Store) Seed(ctx context.Context, rate float64, rng *rand.Rand) (int, error) {
	if rate < 0 || rate > 1 {
		return 0, fmt.Errorf("tasa de ocupación %v fuera de [0, 1]: %w", rate, domain.ErrInvalidInput)
	}
	if rate == 0 {
		return 0, nil
	}
	seeded := 0
	for _, pos := range s.Positions() {
		if rng.Float64() >= rate {
			continue
		}
		_, _, err := s.OccupyShelf(ctx, pos, demoDraft(rng))
		if errors.Is(err, domain.ErrAlreadyOccupied) {
			continue
		}
		if err != nil {
			return seeded, fmt.Errorf("sembrar %s: %w", pos, err)
		}
		seeded++
	}
	return seeded, nil
}

func demoDraft(rng *rand.Rand) entity.ProductDraft {
	return entity.ProductDraft{
		Name:        "Produto Exemplo",
		SKU:         fmt.Sprintf("SKU-%03d", rng.IntN(1000)),
		Quantity:    10 + rng.IntN(50),
		Unit:        "un",
		Category:    "Eletrônicos",
		Description: "Produto de exemplo para demonstração",
	}
}
