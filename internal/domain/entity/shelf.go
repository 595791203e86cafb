package entity

import (
	"fmt"
	"time"

	"github.com/jhoicas/wms-estanterias/internal/domain"
)

// ShelfStatus estado de ocupación de una estantería.
type ShelfStatus string

// Estados posibles de una estantería.
const (
	ShelfStatusAvailable ShelfStatus = "available"
	ShelfStatusOccupied  ShelfStatus = "occupied"
)

// Shelf representa una posición fija del almacén (calle, góndola, nivel).
// ProductID solo tiene valor cuando Status es occupied.
type Shelf struct {
	Position    string
	Aisle       string
	Gondola     int
	Level       int
	Status      ShelfStatus
	ProductID   string
	LastUpdated time.Time
}

// IsOccupied indica si la estantería tiene un producto asignado.
func (s Shelf) IsOccupied() bool {
	return s.Status == ShelfStatusOccupied
}

// StatusFilter filtro de búsqueda por estado.
type StatusFilter string

// Filtros aceptados por la búsqueda. FilterAll no filtra.
const (
	FilterAll       StatusFilter = "all"
	FilterAvailable StatusFilter = "available"
	FilterOccupied  StatusFilter = "occupied"
)

// ParseStatusFilter interpreta el filtro recibido; vacío equivale a FilterAll.
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch StatusFilter(s) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterAvailable, FilterOccupied:
		return StatusFilter(s), nil
	}
	return "", fmt.Errorf("filtro %q: %w", s, domain.ErrInvalidInput)
}

// Matches indica si la estantería pasa el filtro.
func (f StatusFilter) Matches(s Shelf) bool {
	if f == FilterAll || f == "" {
		return true
	}
	return string(s.Status) == string(f)
}
