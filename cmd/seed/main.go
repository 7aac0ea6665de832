// seed puebla la base con datos de demo: usuario admin, categorías, productos
// del catálogo y sus ítems de inventario con stock inicial.
//
// Uso: go run ./cmd/seed
// Lee la misma configuración que el API (DATABASE_URL o DB_*).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/merkato-api/internal/domain/entity"
	"github.com/tu-usuario/merkato-api/internal/infrastructure/postgres"
	"github.com/tu-usuario/merkato-api/pkg/config"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración: %v", err)
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("conexión a PostgreSQL: %v", err)
	}
	defer pool.Close()

	now := time.Now()

	// Usuario admin (password por env o default de desarrollo)
	adminPass := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPass == "" {
		adminPass = "admin12345"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPass), bcrypt.DefaultCost)
	if err != nil {
		fail("hash de password: %v", err)
	}
	userRepo := postgres.NewUserRepository(pool)
	admin := &entity.User{
		ID:           uuid.New().String(),
		Email:        "admin@merkato.local",
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		CreatedAt:    now,
	}
	if existing, _ := userRepo.GetByEmail(admin.Email); existing == nil {
		if err := userRepo.Create(admin); err != nil {
			fail("crear admin: %v", err)
		}
		fmt.Println("admin creado:", admin.Email)
	} else {
		fmt.Println("admin ya existe:", admin.Email)
	}

	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	itemRepo := postgres.NewInventoryItemRepository(pool)

	type seedProduct struct {
		name, slug, sku string
		price           string
		stock           int
		sizes           string
	}
	seeds := map[string][]seedProduct{
		"Camisetas": {
			{"Camiseta básica", "camiseta-basica", "TSHIRT-001", "450.00", 40, `["S","M","L","XL"]`},
			{"Camiseta estampada", "camiseta-estampada", "TSHIRT-002", "620.00", 25, `["M","L"]`},
		},
		"Calzado": {
			{"Zapatillas urbanas", "zapatillas-urbanas", "SHOE-001", "2800.00", 12, `["40","41","42","43"]`},
		},
		"Accesorios": {
			{"Gorra clásica", "gorra-clasica", "CAP-001", "350.00", 60, `[]`},
		},
	}

	for catName, products := range seeds {
		slug := slugOf(catName)
		cat, _ := categoryRepo.GetBySlug(slug)
		if cat == nil {
			cat = &entity.Category{
				ID:        uuid.New().String(),
				Name:      catName,
				Slug:      slug,
				CreatedAt: now,
			}
			if err := categoryRepo.Create(cat); err != nil {
				fail("crear categoría %s: %v", catName, err)
			}
			fmt.Println("categoría creada:", catName)
		}
		for _, sp := range products {
			if existing, _ := productRepo.GetBySlug(sp.slug); existing != nil {
				continue
			}
			price, err := decimal.NewFromString(sp.price)
			if err != nil {
				fail("precio inválido %s: %v", sp.price, err)
			}
			product := &entity.Product{
				ID:         uuid.New().String(),
				CategoryID: cat.ID,
				Name:       sp.name,
				Slug:       sp.slug,
				Price:      price,
				Sizes:      []byte(sp.sizes),
				Active:     true,
				CreatedAt:  now,
			}
			if err := productRepo.Create(product); err != nil {
				fail("crear producto %s: %v", sp.name, err)
			}
			item := &entity.InventoryItem{
				ID:                uuid.New().String(),
				ProductID:         product.ID,
				SKU:               sp.sku,
				Name:              sp.name,
				Quantity:          sp.stock,
				Price:             price,
				MinimumStockLevel: cfg.Inventory.DefaultMinimumStockLevel,
				MaximumStockLevel: cfg.Inventory.DefaultMaximumStockLevel,
				Priority:          entity.PriorityMedium,
				CategoryID:        cat.ID,
				CreatedAt:         now,
				UpdatedAt:         now,
			}
			if err := itemRepo.Create(item); err != nil {
				fail("crear ítem %s: %v", sp.sku, err)
			}
			fmt.Printf("producto creado: %s (stock %d)\n", sp.name, sp.stock)
		}
	}

	fmt.Println("seed completado")
}

func slugOf(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == ' ' || r == '-' || r == '_':
			out = append(out, '-')
		}
	}
	return string(out)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
