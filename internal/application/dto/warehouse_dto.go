package dto

import (
	"time"

	"github.com/jhoicas/wms-estanterias/internal/application/warehouse"
	"github.com/jhoicas/wms-estanterias/internal/domain/entity"
)

// AisleResponse salida de una calle.
type AisleResponse struct {
	Name     string `json:"name"`
	Gondolas int    `json:"gondolas"`
}

// ShelfResponse salida de una estantería. ProductID es null cuando está disponible.
type ShelfResponse struct {
	Position    string    `json:"position"`
	Aisle       string    `json:"aisle"`
	Gondola     int       `json:"gondola"`
	Level       int       `json:"level"`
	Status      string    `json:"status"`
	ProductID   *string   `json:"productId"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// NewShelfResponse construye la salida de una estantería.
func NewShelfResponse(s entity.Shelf) ShelfResponse {
	out := ShelfResponse{
		Position:    s.Position,
		Aisle:       s.Aisle,
		Gondola:     s.Gondola,
		Level:       s.Level,
		Status:      string(s.Status),
		LastUpdated: s.LastUpdated,
	}
	if s.ProductID != "" {
		id := s.ProductID
		out.ProductID = &id
	}
	return out
}

// NewShelfList convierte una lista de estanterías.
func NewShelfList(shelves []entity.Shelf) []ShelfResponse {
	out := make([]ShelfResponse, 0, len(shelves))
	for _, s := range shelves {
		out = append(out, NewShelfResponse(s))
	}
	return out
}

// ShelfDetailResponse salida de GET /api/shelf/:position.
type ShelfDetailResponse struct {
	Shelf   ShelfResponse    `json:"shelf"`
	Product *ProductResponse `json:"product"`
}

// VacateResponse salida de POST /api/shelf/:position/vacate.
type VacateResponse struct {
	Success bool          `json:"success"`
	Shelf   ShelfResponse `json:"shelf"`
}

// TransactionResponse salida de una transacción del registro.
type TransactionResponse struct {
	ID        string    `json:"id"`
	Sequence  int64     `json:"sequence"`
	Type      string    `json:"type"`
	Position  string    `json:"position"`
	ProductID string    `json:"productId"`
	Timestamp time.Time `json:"timestamp"`
	Details   string    `json:"details"`
}

// NewTransactionList convierte una lista de transacciones.
func NewTransactionList(txns []entity.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txns))
	for _, t := range txns {
		out = append(out, TransactionResponse{
			ID:        t.ID,
			Sequence:  t.Sequence,
			Type:      t.Type,
			Position:  t.Position,
			ProductID: t.ProductID,
			Timestamp: t.Timestamp,
			Details:   t.Details,
		})
	}
	return out
}

// TransactionListResponse página del registro de transacciones.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// StatsResponse resumen de ocupación.
type StatsResponse struct {
	Total         int     `json:"total"`
	Available     int     `json:"available"`
	Occupied      int     `json:"occupied"`
	OccupancyRate float64 `json:"occupancyRate"`
}

// WarehouseResponse salida de GET /api/warehouse.
// Transactions son las más recientes, de la más antigua a la más nueva.
type WarehouseResponse struct {
	Aisles       []AisleResponse       `json:"aisles"`
	Shelves      []ShelfResponse       `json:"shelves"`
	Products     []ProductResponse     `json:"products"`
	Stats        StatsResponse         `json:"stats"`
	Transactions []TransactionResponse `json:"transactions"`
}

// NewWarehouseResponse construye la salida a partir de una foto del almacén.
func NewWarehouseResponse(s warehouse.Snapshot) WarehouseResponse {
	aisles := make([]AisleResponse, 0, len(s.Aisles))
	for _, a := range s.Aisles {
		aisles = append(aisles, AisleResponse{Name: a.Name, Gondolas: a.GondolaCount})
	}
	return WarehouseResponse{
		Aisles:   aisles,
		Shelves:  NewShelfList(s.Shelves),
		Products: NewProductList(s.Products),
		Stats: StatsResponse{
			Total:         s.Stats.Total,
			Available:     s.Stats.Available,
			Occupied:      s.Stats.Occupied,
			OccupancyRate: s.Stats.OccupancyRate.InexactFloat64(),
		},
		Transactions: NewTransactionList(s.RecentTransactions),
	}
}
