package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tu-usuario/merkato-api/internal/application/dto"
	"github.com/tu-usuario/merkato-api/internal/domain"
	"github.com/tu-usuario/merkato-api/internal/domain/entity"
	"github.com/tu-usuario/merkato-api/internal/domain/repository"
)

// CatalogCache cache de lectura del listado público de productos (puerto).
// Get devuelve (nil, nil) en miss; los errores del cache nunca rompen la lectura.
type CatalogCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	InvalidateAll(ctx context.Context) error
}

// ProductUseCase casos de uso del catálogo. El stock no se edita aquí: vive en el
// ítem de inventario que respalda al producto y solo cambia vía el ledger.
type ProductUseCase struct {
	repo     repository.ProductRepository
	itemRepo repository.InventoryItemRepository
	cache    CatalogCache // nil deshabilita el cache
}

// NewProductUseCase construye el caso de uso. cache puede ser nil.
func NewProductUseCase(repo repository.ProductRepository, itemRepo repository.InventoryItemRepository, cache CatalogCache) *ProductUseCase {
	return &ProductUseCase{repo: repo, itemRepo: itemRepo, cache: cache}
}

// Create crea un producto del catálogo.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.Slug == "" || in.CategoryID == "" || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetBySlug(in.Slug)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	sizes := in.Sizes
	if len(sizes) == 0 {
		sizes = json.RawMessage(`[]`)
	}
	product := &entity.Product{
		ID:          uuid.New().String(),
		CategoryID:  in.CategoryID,
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		Sizes:       sizes,
		Active:      active,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return uc.toResponse(product), nil
}

// GetByID obtiene un producto, o nil si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return uc.toResponse(product), nil
}

// ListActive lista productos activos, opcionalmente por categoría, con cache
// read-through de la primera página. La clave incluye el tamaño de página para
// que respuestas con limit distinto no se mezclen.
func (uc *ProductUseCase) ListActive(ctx context.Context, categorySlug string, limit, offset int) ([]dto.ProductResponse, error) {
	cacheable := uc.cache != nil && offset == 0
	cacheKey := fmt.Sprintf("catalog:%s:%d", categorySlug, limit)
	if cacheable {
		if raw, err := uc.cache.Get(ctx, cacheKey); err == nil && raw != nil {
			var cached []dto.ProductResponse
			if json.Unmarshal(raw, &cached) == nil {
				return cached, nil
			}
		}
	}

	products, err := uc.repo.ListActive(categorySlug, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *uc.toResponse(p))
	}

	if cacheable {
		if raw, err := json.Marshal(out); err == nil {
			if err := uc.cache.Set(ctx, cacheKey, raw); err != nil {
				log.Debug().Err(err).Msg("no se pudo escribir el cache del catálogo")
			}
		}
	}
	return out, nil
}

// Update actualiza un producto y deja el precio de lista nuevo; las líneas de
// pedidos ya creados conservan su precio congelado.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.CategoryID != nil {
		product.CategoryID = *in.CategoryID
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	if len(in.Sizes) > 0 {
		product.Sizes = in.Sizes
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return uc.toResponse(product), nil
}

func (uc *ProductUseCase) invalidate(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.InvalidateAll(ctx); err != nil {
		log.Debug().Err(err).Msg("no se pudo invalidar el cache del catálogo")
	}
}

func (uc *ProductUseCase) toResponse(p *entity.Product) *dto.ProductResponse {
	stock := 0
	// El stock del producto es el del ítem que lo respalda (si existe).
	if item, err := uc.itemRepo.GetByProductID(p.ID); err == nil && item != nil {
		stock = item.Quantity
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		Sizes:       p.Sizes,
		Active:      p.Active,
		Stock:       stock,
		CreatedAt:   p.CreatedAt,
	}
}
