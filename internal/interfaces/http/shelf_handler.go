package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-estanterias/internal/application/dto"
	"github.com/jhoicas/wms-estanterias/internal/application/warehouse"
)

// ShelfHandler maneja ocupar, vaciar y consultar estanterías.
type ShelfHandler struct {
	store    *warehouse.Store
	log      zerolog.Logger
	validate *validator.Validate
}

// NewShelfHandler construye el handler.
func NewShelfHandler(store *warehouse.Store, log zerolog.Logger) *ShelfHandler {
	return &ShelfHandler{store: store, log: log, validate: newValidator()}
}

// Occupy godoc
// @Summary      Ocupar estantería
// @Tags         shelves
// @Accept       json
// @Produce      json
// @Param        position  path  string                   true  "Posición, ej. Rua A-01-01"
// @Param        body      body  dto.ProductDraftRequest  true  "Producto a colocar"
// @Success      200  {object}  dto.OccupyResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shelf/{position}/occupy [post]
func (h *ShelfHandler) Occupy(c *fiber.Ctx) error {
	position, err := pathParam(c, "position")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_POSITION", Message: err.Error()})
	}
	in, ok, err := bindDraft(c, h.validate)
	if !ok {
		return err
	}
	product, shelf, err := h.store.OccupyShelf(c.UserContext(), position, in.ToDraft())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.OccupyResponse{
		Success: true,
		Product: dto.NewProductResponse(product),
		Shelf:   dto.NewShelfResponse(shelf),
	})
}

// Vacate godoc
// @Summary      Vaciar estantería
// @Tags         shelves
// @Produce      json
// @Param        position  path  string  true  "Posición, ej. Rua A-01-01"
// @Success      200  {object}  dto.VacateResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shelf/{position}/vacate [post]
func (h *ShelfHandler) Vacate(c *fiber.Ctx) error {
	position, err := pathParam(c, "position")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_POSITION", Message: err.Error()})
	}
	shelf, err := h.store.VacateShelf(c.UserContext(), position)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.VacateResponse{Success: true, Shelf: dto.NewShelfResponse(shelf)})
}

// Get godoc
// @Summary      Obtener estantería con su producto
// @Tags         shelves
// @Produce      json
// @Param        position  path  string  true  "Posición, ej. Rua A-01-01"
// @Success      200  {object}  dto.ShelfDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shelf/{position} [get]
func (h *ShelfHandler) Get(c *fiber.Ctx) error {
	position, err := pathParam(c, "position")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_POSITION", Message: err.Error()})
	}
	shelf, product, err := h.store.Shelf(position)
	if err != nil {
		return respondError(c, h.log, err)
	}
	out := dto.ShelfDetailResponse{Shelf: dto.NewShelfResponse(shelf)}
	if product != nil {
		p := dto.NewProductResponse(*product)
		out.Product = &p
	}
	return c.JSON(out)
}
