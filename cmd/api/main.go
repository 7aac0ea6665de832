package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/merkato-api/internal/application/auth"
	"github.com/tu-usuario/merkato-api/internal/application/inventory"
	apporder "github.com/tu-usuario/merkato-api/internal/application/order"
	"github.com/tu-usuario/merkato-api/internal/application/usecase"
	infrakafka "github.com/tu-usuario/merkato-api/internal/infrastructure/kafka"
	"github.com/tu-usuario/merkato-api/internal/infrastructure/mail"
	"github.com/tu-usuario/merkato-api/internal/infrastructure/postgres"
	infraredis "github.com/tu-usuario/merkato-api/internal/infrastructure/redis"
	httpRouter "github.com/tu-usuario/merkato-api/internal/interfaces/http"
	"github.com/tu-usuario/merkato-api/pkg/config"
	"github.com/tu-usuario/merkato-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	itemRepo := postgres.NewInventoryItemRepository(pool)
	changeRepo := postgres.NewInventoryChangeRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cache del catálogo (opcional: REDIS_ADDR vacío lo deshabilita)
	var catalogCache usecase.CatalogCache
	if cfg.Redis.Addr != "" {
		cache, err := infraredis.NewCatalogCache(ctx, cfg.Redis.Addr, cfg.Redis.Password,
			cfg.Redis.DB, time.Duration(cfg.Redis.TTLSeconds)*time.Second)
		if err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, catálogo sin cache")
		} else {
			catalogCache = cache
			defer cache.Close()
		}
	}

	// Notificadores post-commit de pedidos (opcionales)
	var notifiers apporder.MultiNotifier
	if len(cfg.Kafka.Brokers) > 0 {
		publisher, err := infrakafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			log.Warn().Err(err).Msg("Kafka no disponible, pedidos sin eventos")
		} else {
			notifiers = append(notifiers, publisher)
			defer publisher.Close()
		}
	}
	var mailer *mail.Sender
	if cfg.SMTP.Host != "" {
		mailer = mail.NewSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username,
			cfg.SMTP.Password, cfg.SMTP.From, cfg.SMTP.AdminEmail)
		notifiers = append(notifiers, mailer)
	}
	var notifier apporder.Notifier
	if len(notifiers) > 0 {
		notifier = notifiers
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	productUC := usecase.NewProductUseCase(productRepo, itemRepo, catalogCache)
	adjustUC := inventory.NewAdjustStockUseCase(txRunner)
	itemUC := inventory.NewItemUseCase(itemRepo, changeRepo, inventory.ItemDefaults{
		MinimumStockLevel: cfg.Inventory.DefaultMinimumStockLevel,
		MaximumStockLevel: cfg.Inventory.DefaultMaximumStockLevel,
	})
	orderUC := apporder.NewPlaceOrderUseCase(txRunner, adjustUC, productRepo, itemRepo, orderRepo, notifier)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Merkato API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	var contactMailer httpRouter.ContactMailer
	if mailer != nil {
		contactMailer = mailer
	}
	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		CategoryUC: categoryUC,
		ProductUC:  productUC,
		ItemUC:     itemUC,
		AdjustUC:   adjustUC,
		OrderUC:    orderUC,
		Mailer:     contactMailer,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
