package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/merkato-api/internal/application/dto"
	"github.com/tu-usuario/merkato-api/internal/application/usecase"
	"github.com/tu-usuario/merkato-api/internal/domain/entity"
	apphttp "github.com/tu-usuario/merkato-api/internal/interfaces/http"
)

// Fakes mínimos del catálogo para las rutas públicas de lectura.

type fewProductsRepo struct {
	products map[string]*entity.Product
}

func (r *fewProductsRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fewProductsRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}
func (r *fewProductsRepo) GetBySlug(string) (*entity.Product, error) { return nil, nil }
func (r *fewProductsRepo) Update(*entity.Product) error              { return nil }
func (r *fewProductsRepo) ListActive(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fewProductsRepo) Delete(string) error { return nil }

type fewCategoriesRepo struct {
	categories map[string]*entity.Category
}

func (r *fewCategoriesRepo) Create(c *entity.Category) error { r.categories[c.ID] = c; return nil }
func (r *fewCategoriesRepo) GetByID(id string) (*entity.Category, error) {
	if c, ok := r.categories[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}
func (r *fewCategoriesRepo) GetBySlug(string) (*entity.Category, error) { return nil, nil }
func (r *fewCategoriesRepo) Update(*entity.Category) error              { return nil }
func (r *fewCategoriesRepo) List() ([]*entity.Category, error)          { return nil, nil }
func (r *fewCategoriesRepo) Delete(string) error                        { return nil }

func buildCatalogApp() *fiber.App {
	products := &fewProductsRepo{products: map[string]*entity.Product{
		"prod-1": {
			ID:     "prod-1",
			Name:   "Camiseta básica",
			Slug:   "camiseta-basica",
			Price:  decimal.RequireFromString("450.00"),
			Active: true,
		},
	}}
	categories := &fewCategoriesRepo{categories: map[string]*entity.Category{
		"cat-1": {ID: "cat-1", Name: "Ropa", Slug: "ropa"},
	}}

	productUC := usecase.NewProductUseCase(products, &oneItemRepo{}, nil)
	categoryUC := usecase.NewCategoryUseCase(categories)

	app := fiber.New()
	app.Get("/api/products/:id", apphttp.NewProductHandler(productUC).GetByID)
	app.Get("/api/categories/:id", apphttp.NewCategoryHandler(categoryUC).GetByID)
	return app
}

func TestGetProductEndpoint_Existente200(t *testing.T) {
	app := buildCatalogApp()

	req := httptest.NewRequest(http.MethodGet, "/api/products/prod-1", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body dto.ProductResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "prod-1", body.ID)
}

func TestGetProductEndpoint_Inexistente404(t *testing.T) {
	app := buildCatalogApp()

	req := httptest.NewRequest(http.MethodGet, "/api/products/no-existe", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "NOT_FOUND", body.Code)
}

func TestGetCategoryEndpoint_Inexistente404(t *testing.T) {
	app := buildCatalogApp()

	req := httptest.NewRequest(http.MethodGet, "/api/categories/no-existe", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "NOT_FOUND", body.Code)
}
