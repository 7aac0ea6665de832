package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/merkato-api/internal/application/dto"
	"github.com/tu-usuario/merkato-api/internal/domain"
	"github.com/tu-usuario/merkato-api/internal/domain/entity"
	"github.com/tu-usuario/merkato-api/internal/domain/repository"
)

// AdjustStockUseCase aplica cambios de cantidad de forma transaccional: bloquea la
// fila del ítem (SELECT FOR UPDATE), valida que la cantidad no quede negativa y
// escribe la nueva cantidad junto con exactamente una entrada del ledger.
// Es el único dueño de la mutación de InventoryItem.Quantity.
type AdjustStockUseCase struct {
	txRunner TxRunner
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(txRunner TxRunner) *AdjustStockUseCase {
	return &AdjustStockUseCase{txRunner: txRunner}
}

// AdjustmentInput entrada para aplicar un cambio de cantidad.
type AdjustmentInput struct {
	Delta      int // con signo, nunca cero
	ChangeType string
	Reason     string
	Notes      string
}

// AdjustmentResult cantidades antes y después de aplicar el delta.
type AdjustmentResult struct {
	PreviousQuantity int
	NewQuantity      int
	QuantityChanged  int
}

// Adjust aplica el delta al ítem como una unidad atómica: lee la cantidad bajo
// bloqueo de fila, calcula new = current + delta, rechaza con ErrInsufficientStock
// si quedaría negativa y persiste cantidad + entrada del ledger en la misma tx.
// Dos llamadas concurrentes sobre el mismo ítem nunca observan el mismo
// previous_quantity y tienen éxito ambas.
func (uc *AdjustStockUseCase) Adjust(ctx context.Context, userID, itemID string, in AdjustmentInput) (*AdjustmentResult, error) {
	if in.Delta == 0 {
		return nil, domain.ErrZeroDelta
	}
	if !entity.ValidChangeType(in.ChangeType) {
		return nil, domain.ErrInvalidChangeType
	}
	if itemID == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var result AdjustmentResult
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		changeRepo repository.InventoryChangeRepository,
	) error {
		res, err := applyChange(itemRepo, changeRepo, itemID, in, userID, now)
		if err != nil {
			return err
		}
		result = *res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// AdjustFromRequest adapta el body HTTP al caso de uso Adjust.
func (uc *AdjustStockUseCase) AdjustFromRequest(ctx context.Context, userID, itemID string, in dto.AdjustQuantityRequest) (*AdjustmentResult, error) {
	return uc.Adjust(ctx, userID, itemID, AdjustmentInput{
		Delta:      in.QuantityChange,
		ChangeType: in.ChangeType,
		Reason:     in.Reason,
		Notes:      in.Notes,
	})
}

// ApplySaleInTx descuenta una venta usando los repositorios del caller (misma
// transacción). Implementa la interfaz order.InventoryUseCase: si retorna error
// (ej. ErrInsufficientStock) el caller hace rollback de todo el pedido.
func (uc *AdjustStockUseCase) ApplySaleInTx(
	itemRepo repository.InventoryItemRepository,
	changeRepo repository.InventoryChangeRepository,
	itemID string,
	quantity int,
	userID, reason string,
	now time.Time,
) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	_, err := applyChange(itemRepo, changeRepo, itemID, AdjustmentInput{
		Delta:      -quantity,
		ChangeType: entity.ChangeTypeSale,
		Reason:     reason,
	}, userID, now)
	return err
}

// applyChange núcleo del motor: read-validate-write-audit bajo la tx del caller.
func applyChange(
	itemRepo repository.InventoryItemRepository,
	changeRepo repository.InventoryChangeRepository,
	itemID string,
	in AdjustmentInput,
	userID string,
	now time.Time,
) (*AdjustmentResult, error) {
	// Bloquea la fila del ítem: serializa el read-modify-write por ítem
	item, err := itemRepo.GetForUpdate(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	previous := item.Quantity
	newQty := previous + in.Delta
	if newQty < 0 {
		return nil, domain.ErrInsufficientStock
	}

	if err := itemRepo.UpdateQuantity(itemID, newQty); err != nil {
		return nil, err
	}
	change := &entity.InventoryChange{
		ID:               uuid.New().String(),
		ItemID:           itemID,
		ChangeType:       in.ChangeType,
		QuantityChanged:  in.Delta,
		PreviousQuantity: previous,
		NewQuantity:      newQty,
		Reason:           in.Reason,
		Notes:            in.Notes,
		ChangedBy:        userID,
		CreatedAt:        now,
	}
	if err := changeRepo.Create(change); err != nil {
		return nil, err
	}
	return &AdjustmentResult{
		PreviousQuantity: previous,
		NewQuantity:      newQty,
		QuantityChanged:  in.Delta,
	}, nil
}
