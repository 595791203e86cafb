package dto

import (
	"time"

	"github.com/jhoicas/wms-estanterias/internal/domain/entity"
)

// ProductDraftRequest body para ocupar una estantería (POST /api/shelf/:position/occupy)
// y para editar un producto (PUT /api/product/:id). Acepta JSON o formulario.
type ProductDraftRequest struct {
	Name        string `json:"name" form:"name" validate:"required,max=200"`
	SKU         string `json:"sku" form:"sku" validate:"required,max=100"`
	Quantity    int    `json:"quantity" form:"quantity" validate:"required,gt=0"`
	Unit        string `json:"unit" form:"unit" validate:"required,max=20"`
	Category    string `json:"category" form:"category" validate:"required,max=100"`
	Description string `json:"description" form:"description" validate:"max=1000"`
}

// ToDraft convierte el request al borrador de dominio.
func (r ProductDraftRequest) ToDraft() entity.ProductDraft {
	return entity.ProductDraft{
		Name:        r.Name,
		SKU:         r.SKU,
		Quantity:    r.Quantity,
		Unit:        r.Unit,
		Category:    r.Category,
		Description: r.Description,
	}
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	SKU         string     `json:"sku"`
	Quantity    int        `json:"quantity"`
	Unit        string     `json:"unit"`
	Category    string     `json:"category"`
	Description string     `json:"description,omitempty"`
	Position    string     `json:"position"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// NewProductResponse construye la salida de un producto.
func NewProductResponse(p entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		SKU:         p.SKU,
		Quantity:    p.Quantity,
		Unit:        p.Unit,
		Category:    p.Category,
		Description: p.Description,
		Position:    p.Position,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// NewProductList convierte una lista de productos.
func NewProductList(products []entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, NewProductResponse(p))
	}
	return out
}

// ProductListResponse listado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}

// OccupyResponse salida de POST /api/shelf/:position/occupy.
type OccupyResponse struct {
	Success bool            `json:"success"`
	Product ProductResponse `json:"product"`
	Shelf   ShelfResponse   `json:"shelf"`
}

// EditProductResponse salida de PUT /api/product/:id.
type EditProductResponse struct {
	Success bool            `json:"success"`
	Product ProductResponse `json:"product"`
}
