package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/merkato-api/internal/application/dto"
	"github.com/tu-usuario/merkato-api/internal/application/order"
	"github.com/tu-usuario/merkato-api/internal/domain"
	"github.com/tu-usuario/merkato-api/internal/domain/entity"
)

// OrderHandler maneja pedidos y checkout (protegido).
type OrderHandler struct {
	uc *order.PlaceOrderUseCase
}

// NewOrderHandler construye el handler de pedidos.
func NewOrderHandler(uc *order.PlaceOrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

func actorFrom(c *fiber.Ctx) order.Actor {
	return order.Actor{UID: GetUserID(c), Email: GetEmail(c)}
}

// Create godoc
// @Summary      Crear pedido
// @Description  Valida stock de todas las líneas, congela precios y descuenta el
//
//	inventario en una sola transacción. Todo o nada.
//
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "items, shipping_info, payment_method (cbe | telebirr)"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.PlaceOrder(c.Context(), actorFrom(c), in)
	if err != nil {
		return mapOrderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener pedido por ID (dueño o admin)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Order ID"
// @Success      200  {object}  dto.OrderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	isAdmin := GetRole(c) == entity.RoleAdmin
	out, err := h.uc.GetOrder(c.Context(), actorFrom(c), isAdmin, c.Params("id"))
	if err != nil {
		return mapOrderError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar pedidos del usuario autenticado
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página (default 20)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListOrders(c.Context(), actorFrom(c), c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return mapOrderError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Confirmar resultado de pago (admin)
// @Description  Transición pending -> paid | canceled; registra el payment_ref de la pasarela.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Order ID"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "status (paid | canceled), payment_ref"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	isAdmin := GetRole(c) == entity.RoleAdmin
	out, err := h.uc.ConfirmPayment(c.Context(), isAdmin, c.Params("id"), in.Status, in.PaymentRef)
	if err != nil {
		return mapOrderError(c, err)
	}
	return c.JSON(out)
}

// CheckoutCBE godoc
// @Summary      Checkout con pasarela CBE
// @Description  Crea el pedido y devuelve la URL de pago de la pasarela.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "items y shipping_info"
// @Success      201   {object}  dto.CheckoutResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/checkout/cbe [post]
func (h *OrderHandler) CheckoutCBE(c *fiber.Ctx) error {
	return h.checkout(c, entity.PaymentMethodCBE)
}

// CheckoutTelebirr godoc
// @Summary      Checkout con pasarela Telebirr
// @Description  Crea el pedido y devuelve la URL de pago de la pasarela.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "items y shipping_info"
// @Success      201   {object}  dto.CheckoutResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/checkout/telebirr [post]
func (h *OrderHandler) CheckoutTelebirr(c *fiber.Ctx) error {
	return h.checkout(c, entity.PaymentMethodTelebirr)
}

func (h *OrderHandler) checkout(c *fiber.Ctx, method string) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Checkout(c.Context(), actorFrom(c), method, in)
	if err != nil {
		return mapOrderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func mapOrderError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrEmptyOrder):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_ORDER", Message: "el pedido no tiene líneas"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrProductInactive):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "PRODUCT_INACTIVE", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrTxConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "TX_CONFLICT", Message: "conflicto de concurrencia, reintente"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al pedido"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
