package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-estanterias/internal/application/dto"
	"github.com/jhoicas/wms-estanterias/internal/application/warehouse"
	"github.com/jhoicas/wms-estanterias/internal/domain/entity"
)

// WarehouseHandler expone la foto del almacén, la búsqueda y el registro de transacciones.
type WarehouseHandler struct {
	store    *warehouse.Store
	log      zerolog.Logger
	validate *validator.Validate
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(store *warehouse.Store, log zerolog.Logger) *WarehouseHandler {
	return &WarehouseHandler{store: store, log: log, validate: newValidator()}
}

// Snapshot godoc
// @Summary      Estado completo del almacén
// @Tags         warehouse
// @Produce      json
// @Success      200  {object}  dto.WarehouseResponse
// @Router       /api/warehouse [get]
func (h *WarehouseHandler) Snapshot(c *fiber.Ctx) error {
	return c.JSON(dto.NewWarehouseResponse(h.store.Snapshot()))
}

// Search godoc
// @Summary      Buscar estanterías
// @Description  q busca en la posición o en el nombre del producto (sin distinguir mayúsculas).
// @Tags         warehouse
// @Produce      json
// @Param        q       query  string  false  "Término"
// @Param        filter  query  string  false  "all | available | occupied"
// @Success      200  {array}   dto.ShelfResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/search [get]
func (h *WarehouseHandler) Search(c *fiber.Ctx) error {
	filter, err := entity.ParseStatusFilter(c.Query("filter"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.NewShelfList(h.store.Query(c.Query("q"), filter)))
}

// Transactions godoc
// @Summary      Registro de transacciones
// @Tags         warehouse
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(50)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.TransactionListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/transactions [get]
func (h *WarehouseHandler) Transactions(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	if fields := validationFields(h.validate, page); fields != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida", Fields: fields})
	}
	page.DefaultPage()
	items, total := h.store.Transactions(page.Limit, page.Offset)
	return c.JSON(dto.TransactionListResponse{
		Items: dto.NewTransactionList(items),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	})
}
