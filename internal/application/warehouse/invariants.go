package warehouse

import (
	"fmt"
	"time"

	"github.com/jhoicas/wms-estanterias/internal/domain"
	"github.com/jhoicas/wms-estanterias/internal/domain/entity"
)

// checkState valida un estado restaurado y lo devuelve con las estanterías en orden canónico.
// Exige la grilla completa, el vínculo bidireccional estantería↔producto y secuencias crecientes.
func checkState(state *entity.WarehouseState) (*entity.WarehouseState, error) {
	if err := ValidateAisles(state.Aisles); err != nil {
		return nil, corrupt("calles: %v", err)
	}

	byPos := make(map[string]entity.Shelf, len(state.Shelves))
	for _, sh := range state.Shelves {
		if _, dup := byPos[sh.Position]; dup {
			return nil, corrupt("estantería duplicada %q", sh.Position)
		}
		byPos[sh.Position] = sh
	}
	products := make(map[string]entity.Product, len(state.Products))
	for _, p := range state.Products {
		if _, dup := products[p.ID]; dup {
			return nil, corrupt("producto duplicado %q", p.ID)
		}
		products[p.ID] = p
	}

	grid := buildGrid(state.Aisles, time.Time{})
	if len(byPos) != len(grid.Shelves) {
		return nil, corrupt("se esperaban %d estanterías, hay %d", len(grid.Shelves), len(byPos))
	}

	ordered := make([]entity.Shelf, 0, len(grid.Shelves))
	bound := 0
	for _, want := range grid.Shelves {
		sh, ok := byPos[want.Position]
		if !ok {
			return nil, corrupt("falta la estantería %q", want.Position)
		}
		if sh.Aisle != want.Aisle || sh.Gondola != want.Gondola || sh.Level != want.Level {
			return nil, corrupt("coordenadas de %q no coinciden con su clave", sh.Position)
		}
		switch sh.Status {
		case entity.ShelfStatusAvailable:
			if sh.ProductID != "" {
				return nil, corrupt("estantería disponible %q con producto %q", sh.Position, sh.ProductID)
			}
		case entity.ShelfStatusOccupied:
			p, ok := products[sh.ProductID]
			if !ok {
				return nil, corrupt("estantería %q apunta a producto inexistente %q", sh.Position, sh.ProductID)
			}
			if p.Position != sh.Position {
				return nil, corrupt("producto %q en %q pero la estantería %q lo referencia", p.ID, p.Position, sh.Position)
			}
			bound++
		default:
			return nil, corrupt("estado desconocido %q en %q", sh.Status, sh.Position)
		}
		ordered = append(ordered, sh)
	}
	if bound != len(products) {
		return nil, corrupt("%d productos sin estantería", len(products)-bound)
	}

	var last int64
	for _, t := range state.Transactions {
		if t.Sequence <= last {
			return nil, corrupt("secuencia de transacciones no creciente en %q", t.ID)
		}
		last = t.Sequence
	}

	return &entity.WarehouseState{
		Aisles:       state.Aisles,
		Shelves:      ordered,
		Products:     state.Products,
		Transactions: state.Transactions,
	}, nil
}

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), domain.ErrCorruptState)
}
