package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/merkato-api/internal/application/dto"
	"github.com/tu-usuario/merkato-api/internal/domain"
	"github.com/tu-usuario/merkato-api/internal/domain/entity"
	"github.com/tu-usuario/merkato-api/internal/domain/repository"
)

// ItemDefaults umbrales por defecto cuando el request no los trae.
// Los variantes del esquema original discrepan en si min/max son obligatorios;
// aquí se resuelve por configuración explícita.
type ItemDefaults struct {
	MinimumStockLevel int
	MaximumStockLevel int
}

// ItemUseCase CRUD y proyecciones de lectura de ítems de inventario.
// La cantidad no se toca aquí: eso es del AdjustStockUseCase.
type ItemUseCase struct {
	itemRepo   repository.InventoryItemRepository
	changeRepo repository.InventoryChangeRepository
	defaults   ItemDefaults
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(itemRepo repository.InventoryItemRepository, changeRepo repository.InventoryChangeRepository, defaults ItemDefaults) *ItemUseCase {
	return &ItemUseCase{itemRepo: itemRepo, changeRepo: changeRepo, defaults: defaults}
}

// Create crea un ítem. Valida SKU único y min < max.
func (uc *ItemUseCase) Create(in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.SKU == "" || in.Name == "" || in.Quantity < 0 || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.itemRepo.GetBySKU(in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	minLevel := uc.defaults.MinimumStockLevel
	if in.MinimumStockLevel != nil {
		minLevel = *in.MinimumStockLevel
	}
	maxLevel := uc.defaults.MaximumStockLevel
	if in.MaximumStockLevel != nil {
		maxLevel = *in.MaximumStockLevel
	}
	if minLevel < 0 || maxLevel <= minLevel {
		return nil, domain.ErrInvalidInput
	}
	priority := in.Priority
	if priority == "" {
		priority = entity.PriorityMedium
	}
	if priority != entity.PriorityLow && priority != entity.PriorityMedium && priority != entity.PriorityHigh {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	item := &entity.InventoryItem{
		ID:                uuid.New().String(),
		ProductID:         in.ProductID,
		SKU:               in.SKU,
		Name:              in.Name,
		Description:       in.Description,
		Quantity:          in.Quantity,
		Price:             in.Price,
		MinimumStockLevel: minLevel,
		MaximumStockLevel: maxLevel,
		Priority:          priority,
		Location:          in.Location,
		CategoryID:        in.CategoryID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByID obtiene un ítem por ID, o nil si no existe.
func (uc *ItemUseCase) GetByID(id string) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	return toItemResponse(item), nil
}

// Update actualiza un ítem sin tocar Quantity (esa va por el ledger).
func (uc *ItemUseCase) Update(id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.Price = *in.Price
	}
	if in.MinimumStockLevel != nil {
		item.MinimumStockLevel = *in.MinimumStockLevel
	}
	if in.MaximumStockLevel != nil {
		item.MaximumStockLevel = *in.MaximumStockLevel
	}
	if item.MinimumStockLevel < 0 || item.MaximumStockLevel <= item.MinimumStockLevel {
		return nil, domain.ErrInvalidInput
	}
	if in.Priority != nil {
		item.Priority = *in.Priority
	}
	if in.Location != nil {
		item.Location = *in.Location
	}
	if in.CategoryID != nil {
		item.CategoryID = *in.CategoryID
	}
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Delete elimina un ítem del inventario.
func (uc *ItemUseCase) Delete(id string) error {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.itemRepo.Delete(id)
}

// List lista ítems con filtros y paginación.
func (uc *ItemUseCase) List(filter repository.ItemFilter) (*dto.ItemListResponse, error) {
	items, err := uc.itemRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := &dto.ItemListResponse{
		Items: make([]dto.ItemResponse, 0, len(items)),
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}
	for _, item := range items {
		out.Items = append(out.Items, *toItemResponse(item))
	}
	return out, nil
}

// LowStock ítems en o por debajo de su mínimo.
func (uc *ItemUseCase) LowStock() ([]dto.ItemResponse, error) {
	return uc.project(uc.itemRepo.ListLowStock)
}

// OutOfStock ítems agotados.
func (uc *ItemUseCase) OutOfStock() ([]dto.ItemResponse, error) {
	return uc.project(uc.itemRepo.ListOutOfStock)
}

// Overstocked ítems en o por encima de su máximo.
func (uc *ItemUseCase) Overstocked() ([]dto.ItemResponse, error) {
	return uc.project(uc.itemRepo.ListOverstocked)
}

func (uc *ItemUseCase) project(list func() ([]*entity.InventoryItem, error)) ([]dto.ItemResponse, error) {
	items, err := list()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, *toItemResponse(item))
	}
	return out, nil
}

// Summary estadísticas agregadas del inventario.
func (uc *ItemUseCase) Summary() (*dto.SummaryResponse, error) {
	s, err := uc.itemRepo.Summary()
	if err != nil {
		return nil, err
	}
	return &dto.SummaryResponse{
		TotalItems:       s.TotalItems,
		TotalValue:       s.TotalValue,
		LowStockCount:    s.LowStockCount,
		OutOfStockCount:  s.OutOfStockCount,
		OverstockedCount: s.OverstockedCount,
		CategoriesCount:  s.CategoriesCount,
	}, nil
}

// ListChanges lista entradas del ledger con filtros.
func (uc *ItemUseCase) ListChanges(filter repository.ChangeFilter) ([]dto.ChangeResponse, error) {
	changes, err := uc.changeRepo.List(filter)
	if err != nil {
		return nil, err
	}
	return toChangeResponses(changes), nil
}

// RecentChanges últimas entradas del ledger (máximo 50).
func (uc *ItemUseCase) RecentChanges() ([]dto.ChangeResponse, error) {
	changes, err := uc.changeRepo.ListRecent(50)
	if err != nil {
		return nil, err
	}
	return toChangeResponses(changes), nil
}

func toItemResponse(item *entity.InventoryItem) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:                item.ID,
		ProductID:         item.ProductID,
		SKU:               item.SKU,
		Name:              item.Name,
		Description:       item.Description,
		Quantity:          item.Quantity,
		Price:             item.Price,
		MinimumStockLevel: item.MinimumStockLevel,
		MaximumStockLevel: item.MaximumStockLevel,
		Priority:          item.Priority,
		Location:          item.Location,
		CategoryID:        item.CategoryID,
		StockStatus:       string(item.StockStatus()),
		TotalValue:        item.TotalValue(),
		IsLowStock:        item.IsLowStock(),
		IsOutOfStock:      item.IsOutOfStock(),
		CreatedAt:         item.CreatedAt,
		UpdatedAt:         item.UpdatedAt,
	}
}

func toChangeResponses(changes []*entity.InventoryChange) []dto.ChangeResponse {
	out := make([]dto.ChangeResponse, 0, len(changes))
	for _, c := range changes {
		out = append(out, dto.ChangeResponse{
			ID:               c.ID,
			ItemID:           c.ItemID,
			ChangeType:       c.ChangeType,
			QuantityChanged:  c.QuantityChanged,
			PreviousQuantity: c.PreviousQuantity,
			NewQuantity:      c.NewQuantity,
			Reason:           c.Reason,
			Notes:            c.Notes,
			ChangedBy:        c.ChangedBy,
			IsIncrease:       c.IsIncrease(),
			Timestamp:        c.CreatedAt,
		})
	}
	return out
}
