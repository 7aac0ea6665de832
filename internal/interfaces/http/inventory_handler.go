package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/merkato-api/internal/application/dto"
	"github.com/tu-usuario/merkato-api/internal/application/inventory"
	"github.com/tu-usuario/merkato-api/internal/domain"
	"github.com/tu-usuario/merkato-api/internal/domain/repository"
)

// InventoryHandler maneja los ítems de inventario, sus ajustes y el libro mayor
// de movimientos (protegido, solo admin).
type InventoryHandler struct {
	items  *inventory.ItemUseCase
	adjust *inventory.AdjustStockUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(items *inventory.ItemUseCase, adjust *inventory.AdjustStockUseCase) *InventoryHandler {
	return &InventoryHandler{items: items, adjust: adjust}
}

// CreateItem godoc
// @Summary      Crear ítem de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "sku, name, quantity, price, niveles opcionales"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/items [post]
func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.items.Create(in)
	if err != nil {
		return mapInventoryError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetItem godoc
// @Summary      Obtener ítem por ID
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Item ID"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [get]
func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	out, err := h.items.GetByID(c.Params("id"))
	if err != nil {
		return mapInventoryError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ítem no encontrado"})
	}
	return c.JSON(out)
}

// ListItems godoc
// @Summary      Listar ítems de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        category_id  query  string  false  "Filtrar por categoría"
// @Param        priority     query  string  false  "low | medium | high"
// @Param        search       query  string  false  "Busca en nombre, SKU y descripción"
// @Param        limit        query  int     false  "Tamaño de página (default 20)"
// @Param        offset       query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.ItemListResponse
// @Router       /api/inventory/items [get]
func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	filter := repository.ItemFilter{
		CategoryID: c.Query("category_id"),
		Priority:   c.Query("priority"),
		Search:     c.Query("search"),
		Limit:      c.QueryInt("limit", 20),
		Offset:     c.QueryInt("offset", 0),
	}
	out, err := h.items.List(filter)
	if err != nil {
		return mapInventoryError(c, err)
	}
	return c.JSON(out)
}

// UpdateItem godoc
// @Summary      Actualizar atributos del ítem (no la cantidad)
// @Description  La cantidad solo cambia vía el endpoint de ajuste, que registra el movimiento.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "Item ID"
// @Param        body  body  dto.UpdateItemRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.ItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [put]
func (h *InventoryHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.items.Update(c.Params("id"), in)
	if err != nil {
		return mapInventoryError(c, err)
	}
	return c.JSON(out)
}

// DeleteItem godoc
// @Summary      Eliminar ítem de inventario
// @Tags         inventory
// @Security     Bearer
// @Param        id  path  string  true  "Item ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [delete]
func (h *InventoryHandler) DeleteItem(c *fiber.Ctx) error {
	if err := h.items.Delete(c.Params("id")); err != nil {
		return mapInventoryError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AdjustQuantity godoc
// @Summary      Ajustar la cantidad de un ítem
// @Description  Aplica un delta atómico (positivo o negativo) y agrega el movimiento
//
//	al libro mayor en la misma transacción. Rechaza stock negativo.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "Item ID"
// @Param        body  body  dto.AdjustQuantityRequest  true  "quantity_change, change_type, reason"
// @Success      200   {object}  dto.AdjustQuantityResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/adjust [post]
func (h *InventoryHandler) AdjustQuantity(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.AdjustQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.adjust.AdjustFromRequest(c.Context(), userID, c.Params("id"), in)
	if err != nil {
		return mapInventoryError(c, err)
	}
	return c.JSON(dto.AdjustQuantityResponse{
		Message:          "cantidad ajustada",
		PreviousQuantity: result.PreviousQuantity,
		NewQuantity:      result.NewQuantity,
		QuantityChanged:  result.QuantityChanged,
	})
}

// LowStock godoc
// @Summary      Ítems con stock bajo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ItemResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.items.LowStock()
	if err != nil {
		return mapInventoryError(c, err)
	}
	return c.JSON(out)
}

// OutOfStock godoc
// @Summary      Ítems agotados
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ItemResponse
// @Router       /api/inventory/out-of-stock [get]
func (h *InventoryHandler) OutOfStock(c *fiber.Ctx) error {
	out, err := h.items.OutOfStock()
	if err != nil {
		return mapInventoryError(c, err)
	}
	return c.JSON(out)
}

// Overstocked godoc
// @Summary      Ítems sobre-stockeados
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ItemResponse
// @Router       /api/inventory/overstocked [get]
func (h *InventoryHandler) Overstocked(c *fiber.Ctx) error {
	out, err := h.items.Overstocked()
	if err != nil {
		return mapInventoryError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen agregado del inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SummaryResponse
// @Router       /api/inventory/summary [get]
func (h *InventoryHandler) Summary(c *fiber.Ctx) error {
	out, err := h.items.Summary()
	if err != nil {
		return mapInventoryError(c, err)
	}
	return c.JSON(out)
}

// ListChanges godoc
// @Summary      Movimientos de un ítem
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "Item ID"
// @Param        type    query  string  false  "restock | sale | adjustment | damaged | returned"
// @Param        limit   query  int     false  "Tamaño de página"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.ChangeResponse
// @Router       /api/inventory/items/{id}/changes [get]
func (h *InventoryHandler) ListChanges(c *fiber.Ctx) error {
	filter := repository.ChangeFilter{
		ItemID:     c.Params("id"),
		ChangeType: c.Query("type"),
		Limit:      c.QueryInt("limit", 20),
		Offset:     c.QueryInt("offset", 0),
	}
	out, err := h.items.ListChanges(filter)
	if err != nil {
		return mapInventoryError(c, err)
	}
	return c.JSON(out)
}

// RecentChanges godoc
// @Summary      Movimientos recientes de todo el inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ChangeResponse
// @Router       /api/inventory/changes [get]
func (h *InventoryHandler) RecentChanges(c *fiber.Ctx) error {
	out, err := h.items.RecentChanges()
	if err != nil {
		return mapInventoryError(c, err)
	}
	return c.JSON(out)
}

// mapInventoryError traduce errores de dominio a respuestas HTTP.
func mapInventoryError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ítem no encontrado"})
	case errors.Is(err, domain.ErrZeroDelta):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "ZERO_DELTA", Message: "quantity_change debe ser distinto de cero"})
	case errors.Is(err, domain.ErrInvalidChangeType):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_CHANGE_TYPE", Message: "change_type inválido"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente: la cantidad no puede quedar negativa"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "recurso duplicado"})
	case errors.Is(err, domain.ErrTxConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "TX_CONFLICT", Message: "conflicto de concurrencia, reintente"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
