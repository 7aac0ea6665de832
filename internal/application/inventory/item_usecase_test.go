package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/merkato-api/internal/application/dto"
	"github.com/tu-usuario/merkato-api/internal/application/inventory"
	"github.com/tu-usuario/merkato-api/internal/domain"
	"github.com/tu-usuario/merkato-api/internal/domain/entity"
)

func newItemFixture(items ...*entity.InventoryItem) (*inventory.ItemUseCase, *memItemRepo) {
	itemRepo := newMemItemRepo(items...)
	uc := inventory.NewItemUseCase(itemRepo, &memChangeRepo{}, inventory.ItemDefaults{
		MinimumStockLevel: 5,
		MaximumStockLevel: 100,
	})
	return uc, itemRepo
}

func intPtr(n int) *int { return &n }

func TestItemCreate_AplicaDefaultsDeUmbral(t *testing.T) {
	uc, _ := newItemFixture()

	out, err := uc.Create(dto.CreateItemRequest{
		SKU:      "SKU-100",
		Name:     "Gorra clásica",
		Quantity: 30,
		Price:    decimal.RequireFromString("350.00"),
	})
	require.NoError(t, err)

	assert.Equal(t, 5, out.MinimumStockLevel, "sin mínimo explícito aplica el default configurado")
	assert.Equal(t, 100, out.MaximumStockLevel, "sin máximo explícito aplica el default configurado")
	assert.Equal(t, entity.PriorityMedium, out.Priority, "prioridad por defecto es medium")
	assert.Equal(t, "normal", out.StockStatus)
	assert.True(t, out.TotalValue.Equal(decimal.RequireFromString("10500.00")),
		"total_value = quantity * price")
}

func TestItemCreate_SKUDuplicado(t *testing.T) {
	uc, _ := newItemFixture(&entity.InventoryItem{ID: "a", SKU: "SKU-100", Name: "Existente"})

	_, err := uc.Create(dto.CreateItemRequest{SKU: "SKU-100", Name: "Otro", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestItemCreate_UmbralesInvalidos(t *testing.T) {
	uc, _ := newItemFixture()

	_, err := uc.Create(dto.CreateItemRequest{
		SKU:               "SKU-101",
		Name:              "Ítem",
		MinimumStockLevel: intPtr(10),
		MaximumStockLevel: intPtr(10),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "min debe ser estrictamente menor que max")
}

func TestItemCreate_PrioridadInvalida(t *testing.T) {
	uc, _ := newItemFixture()

	_, err := uc.Create(dto.CreateItemRequest{SKU: "SKU-102", Name: "Ítem", Priority: "urgent"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestItemUpdate_NoTocaLaCantidad(t *testing.T) {
	uc, itemRepo := newItemFixture(&entity.InventoryItem{
		ID:                "item-1",
		SKU:               "SKU-1",
		Name:              "Original",
		Quantity:          42,
		MinimumStockLevel: 5,
		MaximumStockLevel: 100,
	})

	newName := "Renombrado"
	out, err := uc.Update("item-1", dto.UpdateItemRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Renombrado", out.Name)
	assert.Equal(t, 42, out.Quantity, "update de atributos nunca modifica la cantidad")

	persisted, _ := itemRepo.GetByID("item-1")
	assert.Equal(t, 42, persisted.Quantity)
}

func TestItemUpdate_Inexistente(t *testing.T) {
	uc, _ := newItemFixture()
	name := "x"
	_, err := uc.Update("no-existe", dto.UpdateItemRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProyecciones_ClasificanPorUmbrales(t *testing.T) {
	uc, _ := newItemFixture(
		&entity.InventoryItem{ID: "agotado", SKU: "A", Quantity: 0, MinimumStockLevel: 5, MaximumStockLevel: 100},
		&entity.InventoryItem{ID: "bajo", SKU: "B", Quantity: 4, MinimumStockLevel: 5, MaximumStockLevel: 100},
		&entity.InventoryItem{ID: "normal", SKU: "C", Quantity: 50, MinimumStockLevel: 5, MaximumStockLevel: 100},
		&entity.InventoryItem{ID: "sobre", SKU: "D", Quantity: 120, MinimumStockLevel: 5, MaximumStockLevel: 100},
	)

	low, err := uc.LowStock()
	require.NoError(t, err)
	out, err := uc.OutOfStock()
	require.NoError(t, err)
	over, err := uc.Overstocked()
	require.NoError(t, err)

	// agotado también cuenta como bajo (quantity <= min)
	assert.Len(t, low, 2)
	require.Len(t, out, 1)
	assert.Equal(t, "agotado", out[0].ID)
	require.Len(t, over, 1)
	assert.Equal(t, "sobre", over[0].ID)
	assert.Equal(t, "overstocked", over[0].StockStatus)
}

func TestSummary_Agregados(t *testing.T) {
	uc, _ := newItemFixture(
		&entity.InventoryItem{ID: "a", SKU: "A", Quantity: 2, Price: decimal.RequireFromString("10.00"), MinimumStockLevel: 5, MaximumStockLevel: 100},
		&entity.InventoryItem{ID: "b", SKU: "B", Quantity: 10, Price: decimal.RequireFromString("3.50"), MinimumStockLevel: 5, MaximumStockLevel: 100},
	)

	s, err := uc.Summary()
	require.NoError(t, err)
	assert.Equal(t, 2, s.TotalItems)
	assert.True(t, s.TotalValue.Equal(decimal.RequireFromString("55.00")),
		"valor total = suma de quantity*price, fue %s", s.TotalValue)
	assert.Equal(t, 1, s.LowStockCount)
	assert.Equal(t, 0, s.OutOfStockCount)
}

func TestItemDelete(t *testing.T) {
	uc, itemRepo := newItemFixture(&entity.InventoryItem{ID: "item-1", SKU: "SKU-1"})

	require.NoError(t, uc.Delete("item-1"))
	got, _ := itemRepo.GetByID("item-1")
	assert.Nil(t, got)

	assert.ErrorIs(t, uc.Delete("item-1"), domain.ErrNotFound)
}

func TestItemGetByID_LecturasRepetidasIdenticas(t *testing.T) {
	uc, _ := newItemFixture(&entity.InventoryItem{
		ID:                "a",
		SKU:               "SKU-100",
		Name:              "Gorra clásica",
		Quantity:          7,
		Price:             decimal.RequireFromString("350.00"),
		MinimumStockLevel: 5,
		MaximumStockLevel: 10,
	})

	first, err := uc.GetByID("a")
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := uc.GetByID("a")
	require.NoError(t, err)
	require.NotNil(t, second)

	// Sin ajustes intermedios, leer no cambia nada: mismas cantidades,
	// misma clasificación y mismo valor total en cada llamada.
	assert.Equal(t, first, second)
	assert.Equal(t, 7, second.Quantity)
	assert.Equal(t, "normal", second.StockStatus)
	assert.True(t, first.TotalValue.Equal(second.TotalValue))
}
