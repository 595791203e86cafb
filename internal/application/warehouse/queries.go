package warehouse

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/wms-estanterias/internal/domain"
	"github.com/jhoicas/wms-estanterias/internal/domain/entity"
)

// Snapshot foto de solo lectura del almacén.
// RecentTransactions contiene las últimas N transacciones, de la más antigua a la más reciente.
type Snapshot struct {
	Aisles             []entity.Aisle
	Shelves            []entity.Shelf
	Products           []entity.Product
	Stats              entity.Stats
	RecentTransactions []entity.Transaction
}

// Snapshot devuelve una copia consistente del estado actual.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	shelves := make([]entity.Shelf, 0, len(s.order))
	products := make([]entity.Product, 0, len(s.products))
	occupied := 0
	for _, pos := range s.order {
		sh := s.shelves[pos]
		shelves = append(shelves, sh)
		if sh.IsOccupied() {
			occupied++
			if p, ok := s.products[sh.ProductID]; ok {
				products = append(products, p)
			}
		}
	}

	from := len(s.transactions) - s.recentLimit
	if from < 0 {
		from = 0
	}
	return Snapshot{
		Aisles:             append([]entity.Aisle(nil), s.aisles...),
		Shelves:            shelves,
		Products:           products,
		Stats:              entity.NewStats(len(shelves), occupied),
		RecentTransactions: append([]entity.Transaction(nil), s.transactions[from:]...),
	}
}

// Query filtra estanterías por término (posición o nombre del producto, sin distinguir
// mayúsculas) y por estado. Ambos filtros se combinan con AND; el orden es el canónico.
func (s *Store) Query(term string, filter entity.StatusFilter) []entity.Shelf {
	fold := cases.Fold()
	needle := fold.String(term)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.Shelf, 0)
	for _, pos := range s.order {
		sh := s.shelves[pos]
		if !filter.Matches(sh) {
			continue
		}
		if needle != "" && !s.matchesTerm(fold, sh, needle) {
			continue
		}
		out = append(out, sh)
	}
	return out
}

func (s *Store) matchesTerm(fold cases.Caser, sh entity.Shelf, needle string) bool {
	if strings.Contains(fold.String(sh.Position), needle) {
		return true
	}
	if sh.ProductID == "" {
		return false
	}
	p, ok := s.products[sh.ProductID]
	return ok && strings.Contains(fold.String(p.Name), needle)
}

// Shelf devuelve la estantería y, si está ocupada, su producto.
func (s *Store) Shelf(position string) (entity.Shelf, *entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sh, ok := s.shelves[position]
	if !ok {
		return entity.Shelf{}, nil, fmt.Errorf("estantería %q: %w", position, domain.ErrNotFound)
	}
	if !sh.IsOccupied() {
		return sh, nil, nil
	}
	p := s.products[sh.ProductID]
	return sh, &p, nil
}

// Product devuelve un producto por ID.
func (s *Store) Product(id string) (entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return entity.Product{}, fmt.Errorf("producto %q: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

// Products lista los productos en el orden canónico de sus estanterías.
func (s *Store) Products() []entity.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.Product, 0, len(s.products))
	for _, pos := range s.order {
		if sh := s.shelves[pos]; sh.IsOccupied() {
			out = append(out, s.products[sh.ProductID])
		}
	}
	return out
}

// Transactions devuelve una página del registro completo (más antigua primero) y el total.
// limit <= 0 devuelve todo desde offset.
func (s *Store) Transactions(limit, offset int) ([]entity.Transaction, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := len(s.transactions)
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []entity.Transaction{}, total
	}
	end := total
	if limit > 0 && limit < total-offset {
		end = offset + limit
	}
	return append([]entity.Transaction(nil), s.transactions[offset:end]...), total
}

// Positions devuelve las claves de todas las estanterías en orden canónico.
func (s *Store) Positions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.order...)
}
