package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-estanterias/internal/application/dto"
	"github.com/jhoicas/wms-estanterias/internal/application/warehouse"
)

// ProductHandler maneja la edición y consulta de productos.
type ProductHandler struct {
	store    *warehouse.Store
	log      zerolog.Logger
	validate *validator.Validate
}

// NewProductHandler construye el handler.
func NewProductHandler(store *warehouse.Store, log zerolog.Logger) *ProductHandler {
	return &ProductHandler{store: store, log: log, validate: newValidator()}
}

// Update godoc
// @Summary      Editar producto
// @Description  Reemplaza los campos editables; no cambia la estantería que lo contiene.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del producto"
// @Param        body  body  dto.ProductDraftRequest  true  "Nuevos datos"
// @Success      200  {object}  dto.EditProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/product/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := pathParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: err.Error()})
	}
	in, ok, err := bindDraft(c, h.validate)
	if !ok {
		return err
	}
	product, err := h.store.EditProduct(c.UserContext(), id, in.ToDraft())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.EditProductResponse{Success: true, Product: dto.NewProductResponse(product)})
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/product/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: err.Error()})
	}
	product, err := h.store.Product(id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.NewProductResponse(product))
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	items := dto.NewProductList(h.store.Products())
	return c.JSON(dto.ProductListResponse{Items: items, Total: len(items)})
}
