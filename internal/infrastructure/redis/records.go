package redis

import (
	"time"

	"github.com/jhoicas/wms-estanterias/internal/domain/entity"
)

// Registros JSON guardados en Redis. Los nombres cortos reducen el tamaño de los hashes.

type aisleRecord struct {
	Name     string `json:"name"`
	Gondolas int    `json:"gondolas"`
}

type shelfRecord struct {
	Position    string    `json:"pos"`
	Aisle       string    `json:"aisle"`
	Gondola     int       `json:"g"`
	Level       int       `json:"l"`
	Status      string    `json:"status"`
	ProductID   string    `json:"pid,omitempty"`
	LastUpdated time.Time `json:"ts"`
}

type productRecord struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	SKU         string     `json:"sku"`
	Quantity    int        `json:"qty"`
	Unit        string     `json:"unit"`
	Category    string     `json:"cat"`
	Description string     `json:"desc,omitempty"`
	Position    string     `json:"pos"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

type transactionRecord struct {
	ID        string    `json:"id"`
	Sequence  int64     `json:"seq"`
	Type      string    `json:"type"`
	Position  string    `json:"pos"`
	ProductID string    `json:"pid"`
	Timestamp time.Time `json:"ts"`
	Details   string    `json:"details"`
}

func toShelfRecord(s entity.Shelf) shelfRecord {
	return shelfRecord{
		Position: s.Position, Aisle: s.Aisle, Gondola: s.Gondola, Level: s.Level,
		Status: string(s.Status), ProductID: s.ProductID, LastUpdated: s.LastUpdated,
	}
}

func (r shelfRecord) toEntity() entity.Shelf {
	return entity.Shelf{
		Position: r.Position, Aisle: r.Aisle, Gondola: r.Gondola, Level: r.Level,
		Status: entity.ShelfStatus(r.Status), ProductID: r.ProductID, LastUpdated: r.LastUpdated,
	}
}

func toProductRecord(p entity.Product) productRecord {
	return productRecord{
		ID: p.ID, Name: p.Name, SKU: p.SKU, Quantity: p.Quantity, Unit: p.Unit,
		Category: p.Category, Description: p.Description, Position: p.Position,
		CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

func (r productRecord) toEntity() entity.Product {
	return entity.Product{
		ID: r.ID, Name: r.Name, SKU: r.SKU, Quantity: r.Quantity, Unit: r.Unit,
		Category: r.Category, Description: r.Description, Position: r.Position,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

func toTransactionRecord(t entity.Transaction) transactionRecord {
	return transactionRecord{
		ID: t.ID, Sequence: t.Sequence, Type: t.Type, Position: t.Position,
		ProductID: t.ProductID, Timestamp: t.Timestamp, Details: t.Details,
	}
}

func (r transactionRecord) toEntity() entity.Transaction {
	return entity.Transaction{
		ID: r.ID, Sequence: r.Sequence, Type: r.Type, Position: r.Position,
		ProductID: r.ProductID, Timestamp: r.Timestamp, Details: r.Details,
	}
}
