package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/wms-estanterias/internal/domain"
)

// Product representa el producto que ocupa una estantería.
// Nace al ocupar una estantería libre y desaparece al vaciarla; Position siempre
// apunta a la estantería cuyo ProductID es este ID.
type Product struct {
	ID          string
	Name        string
	SKU         string
	Quantity    int
	Unit        string
	Category    string
	Description string
	Position    string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// ProductDraft campos que aporta el llamador para crear o editar un producto.
type ProductDraft struct {
	Name        string
	SKU         string
	Quantity    int
	Unit        string
	Category    string
	Description string
}

// Validate aplica las reglas de dominio del borrador.
func (d ProductDraft) Validate() error {
	var missing []string
	if strings.TrimSpace(d.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(d.SKU) == "" {
		missing = append(missing, "sku")
	}
	if strings.TrimSpace(d.Unit) == "" {
		missing = append(missing, "unit")
	}
	if strings.TrimSpace(d.Category) == "" {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return fmt.Errorf("campos requeridos: %s: %w", strings.Join(missing, ", "), domain.ErrInvalidInput)
	}
	if d.Quantity <= 0 {
		return fmt.Errorf("quantity debe ser positiva (%d): %w", d.Quantity, domain.ErrInvalidInput)
	}
	return nil
}

// Apply copia los campos editables del borrador sobre una copia del producto.
func (p Product) Apply(d ProductDraft) Product {
	p.Name = d.Name
	p.SKU = d.SKU
	p.Quantity = d.Quantity
	p.Unit = d.Unit
	p.Category = d.Category
	p.Description = d.Description
	return p
}
