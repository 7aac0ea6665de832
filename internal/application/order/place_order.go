package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/merkato-api/internal/application/dto"
	"github.com/tu-usuario/merkato-api/internal/domain"
	"github.com/tu-usuario/merkato-api/internal/domain/entity"
	"github.com/tu-usuario/merkato-api/internal/domain/repository"
)

// Actor identidad autenticada del comprador, provista por el middleware de auth.
type Actor struct {
	UID   string
	Email string
}

// PlaceOrderUseCase crea un pedido y descuenta el inventario en una sola
// transacción: o el pedido y todos sus descuentos quedan confirmados, o ninguno.
type PlaceOrderUseCase struct {
	txRunner    OrderTxRunner
	inventoryUC InventoryUseCase
	productRepo repository.ProductRepository
	itemRepo    repository.InventoryItemRepository
	orderRepo   repository.OrderRepository
	notifier    Notifier
}

// NewPlaceOrderUseCase construye el caso de uso. notifier puede ser nil.
func NewPlaceOrderUseCase(
	txRunner OrderTxRunner,
	inventoryUC InventoryUseCase,
	productRepo repository.ProductRepository,
	itemRepo repository.InventoryItemRepository,
	orderRepo repository.OrderRepository,
	notifier Notifier,
) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{
		txRunner:    txRunner,
		inventoryUC: inventoryUC,
		productRepo: productRepo,
		itemRepo:    itemRepo,
		orderRepo:   orderRepo,
		notifier:    notifier,
	}
}

// línea validada con su producto e ítem de respaldo resueltos.
type resolvedLine struct {
	product *entity.Product
	itemID  string
	qty     int
	size    string
}

// PlaceOrder valida todas las líneas (sin cumplimiento parcial), congela los
// precios, y en una transacción descuenta cada línea vía ApplySaleInTx y persiste
// cabecera y líneas. Tras el commit notifica al colaborador externo; su falla se
// registra y se descarta.
func (uc *PlaceOrderUseCase) PlaceOrder(ctx context.Context, actor Actor, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	method := in.PaymentMethod
	if method == "" {
		method = entity.PaymentMethodCBE
	}
	if method != entity.PaymentMethodCBE && method != entity.PaymentMethodTelebirr {
		return nil, domain.ErrInvalidInput
	}

	// Pasada de validación, solo lecturas: no toma ningún bloqueo.
	lines := make([]resolvedLine, 0, len(in.Items))
	total := decimal.Zero
	for _, reqLine := range in.Items {
		if reqLine.ProductID == "" || reqLine.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(reqLine.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, reqLine.ProductID)
		}
		if !product.Active {
			return nil, fmt.Errorf("%w: %s", domain.ErrProductInactive, product.Name)
		}
		item, err := uc.itemRepo.GetByProductID(product.ID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, fmt.Errorf("%w: %s sin inventario", domain.ErrNotFound, product.Name)
		}
		if item.Quantity < reqLine.Quantity {
			return nil, fmt.Errorf("%w: %s", domain.ErrInsufficientStock, product.Name)
		}
		lines = append(lines, resolvedLine{
			product: product,
			itemID:  item.ID,
			qty:     reqLine.Quantity,
			size:    reqLine.Size,
		})
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(reqLine.Quantity))))
	}

	now := time.Now()
	orderID := uuid.New().String() // referencia del pedido en las entradas del ledger
	ord := &entity.Order{
		ID:            orderID,
		UserUID:       actor.UID,
		Email:         actor.Email,
		Total:         total,
		Status:        entity.OrderStatusPending,
		PaymentMethod: method,
		ShippingInfo:  in.ShippingInfo,
		CreatedAt:     now,
	}
	for _, line := range lines {
		ord.Items = append(ord.Items, &entity.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   orderID,
			ProductID: line.product.ID,
			Quantity:  line.qty,
			Price:     line.product.Price, // congelado al momento de la compra
			Size:      line.size,
		})
	}

	// Commit atómico: descuentos de inventario + cabecera + líneas, o nada.
	err := uc.txRunner.RunOrder(ctx, func(
		itemRepo repository.InventoryItemRepository,
		changeRepo repository.InventoryChangeRepository,
		orderRepo repository.OrderRepository,
	) error {
		reason := fmt.Sprintf("order #%s", orderID)
		for _, line := range lines {
			// Bajo bloqueo de fila la suficiencia se revalida; si otro pedido
			// ganó la carrera, aquí falla y se revierte todo.
			if err := uc.inventoryUC.ApplySaleInTx(
				itemRepo, changeRepo,
				line.itemID, line.qty,
				actor.UID, reason, now,
			); err != nil {
				return err
			}
		}
		if err := orderRepo.Create(ord); err != nil {
			return err
		}
		for _, item := range ord.Items {
			if err := orderRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Notificación post-commit (fire-and-forget): nunca revierte el pedido.
	if uc.notifier != nil {
		if err := uc.notifier.OrderPlaced(ctx, ord.ID, ord.Email, ord.Total, ord.PaymentMethod); err != nil {
			log.Warn().Err(err).Str("order_id", ord.ID).Msg("notificación de pedido falló")
		}
	}

	return toOrderResponse(ord), nil
}

// GetOrder obtiene un pedido con sus líneas. Solo el comprador (o un admin) puede verlo.
func (uc *PlaceOrderUseCase) GetOrder(ctx context.Context, actor Actor, isAdmin bool, id string) (*dto.OrderResponse, error) {
	ord, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, domain.ErrNotFound
	}
	if !isAdmin && ord.UserUID != actor.UID {
		return nil, domain.ErrForbidden
	}
	items, err := uc.orderRepo.GetItems(id)
	if err != nil {
		return nil, err
	}
	ord.Items = items
	return toOrderResponse(ord), nil
}

// ListOrders lista los pedidos del comprador autenticado.
func (uc *PlaceOrderUseCase) ListOrders(ctx context.Context, actor Actor, limit, offset int) ([]dto.OrderResponse, error) {
	orders, err := uc.orderRepo.ListByUser(actor.UID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, ord := range orders {
		items, err := uc.orderRepo.GetItems(ord.ID)
		if err != nil {
			return nil, err
		}
		ord.Items = items
		out = append(out, *toOrderResponse(ord))
	}
	return out, nil
}

// ConfirmPayment registra el resultado del pago de un pedido. La única
// transición permitida es pending -> paid | canceled; un pedido ya resuelto
// no se vuelve a tocar. Solo un admin puede confirmarlo (el callback de la
// pasarela lo opera la tienda).
func (uc *PlaceOrderUseCase) ConfirmPayment(ctx context.Context, isAdmin bool, id, status, paymentRef string) (*dto.OrderResponse, error) {
	if !isAdmin {
		return nil, domain.ErrForbidden
	}
	if status != entity.OrderStatusPaid && status != entity.OrderStatusCanceled {
		return nil, fmt.Errorf("%w: estado %q no permitido", domain.ErrInvalidInput, status)
	}
	ord, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, domain.ErrNotFound
	}
	if ord.Status != entity.OrderStatusPending {
		return nil, fmt.Errorf("%w: el pedido ya está %s", domain.ErrInvalidInput, ord.Status)
	}
	if err := uc.orderRepo.UpdateStatus(id, status, paymentRef); err != nil {
		return nil, err
	}
	ord.Status = status
	if paymentRef != "" {
		ord.PaymentRef = paymentRef
	}
	items, err := uc.orderRepo.GetItems(id)
	if err != nil {
		return nil, err
	}
	ord.Items = items
	return toOrderResponse(ord), nil
}

// URLs stub de las pasarelas; la integración real es un colaborador externo.
const (
	cbeGatewayURL      = "https://cbe-payment-gateway.com/pay?ref="
	telebirrGatewayURL = "https://telebirr-gateway.com/pay?ref="
)

// Checkout crea el pedido y responde con la URL de pago de la pasarela elegida.
// El inicio de pago se apila sobre un PlaceOrder exitoso: nunca corre antes del
// commit y su resultado no afecta el estado confirmado del pedido.
func (uc *PlaceOrderUseCase) Checkout(ctx context.Context, actor Actor, method string, in dto.CreateOrderRequest) (*dto.CheckoutResponse, error) {
	in.PaymentMethod = method
	created, err := uc.PlaceOrder(ctx, actor, in)
	if err != nil {
		return nil, err
	}
	base := cbeGatewayURL
	if method == entity.PaymentMethodTelebirr {
		base = telebirrGatewayURL
	}
	return &dto.CheckoutResponse{
		OrderID:    created.ID,
		PaymentURL: base + created.ID,
		Status:     "payment_initiated",
	}, nil
}

func toOrderResponse(ord *entity.Order) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:            ord.ID,
		UserUID:       ord.UserUID,
		Email:         ord.Email,
		Total:         ord.Total,
		Status:        ord.Status,
		PaymentMethod: ord.PaymentMethod,
		PaymentRef:    ord.PaymentRef,
		ShippingInfo:  ord.ShippingInfo,
		CreatedAt:     ord.CreatedAt,
		Items:         make([]dto.OrderItemResponse, 0, len(ord.Items)),
	}
	for _, item := range ord.Items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Size:      item.Size,
			Subtotal:  item.Subtotal(),
		})
	}
	return resp
}
