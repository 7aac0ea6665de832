package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/merkato-api/internal/application/inventory"
	"github.com/tu-usuario/merkato-api/internal/domain"
	"github.com/tu-usuario/merkato-api/internal/domain/entity"
)

const (
	testItemID = "00000000-0000-0000-0000-00000000000a"
	testUserID = "00000000-0000-0000-0000-000000000001"
)

func newAdjustFixture(quantity int) (*inventory.AdjustStockUseCase, *memItemRepo, *memChangeRepo) {
	itemRepo := newMemItemRepo(&entity.InventoryItem{
		ID:                testItemID,
		SKU:               "SKU-001",
		Name:              "Camiseta básica",
		Quantity:          quantity,
		MinimumStockLevel: 5,
		MaximumStockLevel: 100,
	})
	changeRepo := &memChangeRepo{}
	uc := inventory.NewAdjustStockUseCase(&memTxRunner{itemRepo: itemRepo, changeRepo: changeRepo})
	return uc, itemRepo, changeRepo
}

func TestAdjust_DecrementoAplicaYRegistraMovimiento(t *testing.T) {
	uc, itemRepo, changeRepo := newAdjustFixture(20)

	res, err := uc.Adjust(context.Background(), testUserID, testItemID, inventory.AdjustmentInput{
		Delta:      -5,
		ChangeType: entity.ChangeTypeSale,
		Reason:     "venta mostrador",
	})
	require.NoError(t, err)

	assert.Equal(t, 20, res.PreviousQuantity)
	assert.Equal(t, 15, res.NewQuantity)
	assert.Equal(t, -5, res.QuantityChanged)

	item, _ := itemRepo.GetByID(testItemID)
	assert.Equal(t, 15, item.Quantity, "la cantidad persistida debe coincidir con el resultado")

	// Exactamente una entrada del ledger, con los snapshots correctos
	require.Len(t, changeRepo.changes, 1)
	change := changeRepo.changes[0]
	assert.Equal(t, entity.ChangeTypeSale, change.ChangeType)
	assert.Equal(t, -5, change.QuantityChanged)
	assert.Equal(t, 20, change.PreviousQuantity)
	assert.Equal(t, 15, change.NewQuantity)
	assert.Equal(t, testUserID, change.ChangedBy)
	assert.Equal(t, change.PreviousQuantity+change.QuantityChanged, change.NewQuantity,
		"el movimiento debe ser auto-consistente")
}

func TestAdjust_IncrementoRestock(t *testing.T) {
	uc, itemRepo, _ := newAdjustFixture(3)

	res, err := uc.Adjust(context.Background(), testUserID, testItemID, inventory.AdjustmentInput{
		Delta:      50,
		ChangeType: entity.ChangeTypeRestock,
		Reason:     "reposición semanal",
	})
	require.NoError(t, err)
	assert.Equal(t, 53, res.NewQuantity)

	item, _ := itemRepo.GetByID(testItemID)
	assert.Equal(t, 53, item.Quantity)
}

func TestAdjust_StockInsuficienteNoCambiaNada(t *testing.T) {
	uc, itemRepo, changeRepo := newAdjustFixture(15)

	_, err := uc.Adjust(context.Background(), testUserID, testItemID, inventory.AdjustmentInput{
		Delta:      -20,
		ChangeType: entity.ChangeTypeSale,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	item, _ := itemRepo.GetByID(testItemID)
	assert.Equal(t, 15, item.Quantity, "un ajuste rechazado no debe tocar la cantidad")
	assert.Empty(t, changeRepo.changes, "un ajuste rechazado no debe dejar entrada en el ledger")
}

func TestAdjust_DecrementoExactoAgotaElStock(t *testing.T) {
	uc, itemRepo, _ := newAdjustFixture(10)

	res, err := uc.Adjust(context.Background(), testUserID, testItemID, inventory.AdjustmentInput{
		Delta:      -10,
		ChangeType: entity.ChangeTypeDamaged,
		Reason:     "lote dañado",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.NewQuantity, "llegar exactamente a cero es válido")

	item, _ := itemRepo.GetByID(testItemID)
	assert.Equal(t, 0, item.Quantity)
}

func TestAdjust_DeltaCeroRechazado(t *testing.T) {
	uc, _, changeRepo := newAdjustFixture(10)

	_, err := uc.Adjust(context.Background(), testUserID, testItemID, inventory.AdjustmentInput{
		Delta:      0,
		ChangeType: entity.ChangeTypeAdjustment,
	})
	assert.ErrorIs(t, err, domain.ErrZeroDelta)
	assert.Empty(t, changeRepo.changes)
}

func TestAdjust_TipoDeCambioInvalido(t *testing.T) {
	uc, _, _ := newAdjustFixture(10)

	_, err := uc.Adjust(context.Background(), testUserID, testItemID, inventory.AdjustmentInput{
		Delta:      1,
		ChangeType: "donation",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidChangeType)
}

func TestAdjust_ItemInexistente(t *testing.T) {
	uc, _, _ := newAdjustFixture(10)

	_, err := uc.Adjust(context.Background(), testUserID, "no-existe", inventory.AdjustmentInput{
		Delta:      1,
		ChangeType: entity.ChangeTypeRestock,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdjust_AjustesSecuencialesEncadenanSnapshots(t *testing.T) {
	uc, _, changeRepo := newAdjustFixture(10)
	ctx := context.Background()

	_, err := uc.Adjust(ctx, testUserID, testItemID, inventory.AdjustmentInput{Delta: -4, ChangeType: entity.ChangeTypeSale})
	require.NoError(t, err)
	_, err = uc.Adjust(ctx, testUserID, testItemID, inventory.AdjustmentInput{Delta: 2, ChangeType: entity.ChangeTypeReturned})
	require.NoError(t, err)

	require.Len(t, changeRepo.changes, 2)
	first, second := changeRepo.changes[0], changeRepo.changes[1]
	assert.Equal(t, first.NewQuantity, second.PreviousQuantity,
		"el previous del segundo movimiento debe ser el new del primero")
	assert.Equal(t, 8, second.NewQuantity)
}

func TestApplySaleInTx_CantidadNoPositivaRechazada(t *testing.T) {
	uc, itemRepo, changeRepo := newAdjustFixture(10)

	err := uc.ApplySaleInTx(itemRepo, changeRepo, testItemID, 0, testUserID, "order #x", time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = uc.ApplySaleInTx(itemRepo, changeRepo, testItemID, -3, testUserID, "order #x", time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplySaleInTx_DescuentaComoVenta(t *testing.T) {
	uc, itemRepo, changeRepo := newAdjustFixture(10)

	err := uc.ApplySaleInTx(itemRepo, changeRepo, testItemID, 4, testUserID, "order #abc", time.Now())
	require.NoError(t, err)

	item, _ := itemRepo.GetByID(testItemID)
	assert.Equal(t, 6, item.Quantity)

	require.Len(t, changeRepo.changes, 1)
	assert.Equal(t, entity.ChangeTypeSale, changeRepo.changes[0].ChangeType)
	assert.Equal(t, "order #abc", changeRepo.changes[0].Reason)
	assert.Equal(t, -4, changeRepo.changes[0].QuantityChanged)
}
