package main

import (
	"context"
	"log"

	"github.com/damianGG/posadzki-zywiczne-sub001/external/przelewy24"
	"github.com/damianGG/posadzki-zywiczne-sub001/external/resend"

	"github.com/damianGG/posadzki-zywiczne-sub001/internal/cartstore"
	"github.com/damianGG/posadzki-zywiczne-sub001/internal/config"
	"github.com/damianGG/posadzki-zywiczne-sub001/internal/db"
	"github.com/damianGG/posadzki-zywiczne-sub001/internal/logger"
	"github.com/damianGG/posadzki-zywiczne-sub001/internal/repository"
	"github.com/damianGG/posadzki-zywiczne-sub001/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	zl, err := logger.New()
	if err != nil {
		log.Fatal(err)
	}
	defer zl.Sync()

	cfg := config.Load(zl)

	// ======================
	// INFRA
	// ======================
	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		zl.Fatal("database connect failed", zap.Error(err))
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.DatabaseURL, cfg.Migrations); err != nil {
		zl.Fatal("migrations failed", zap.Error(err))
	}
	zl.Info("database migrations completed")

	var store cartstore.Store
	switch cfg.CartStore {
	case config.CartStoreRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			zl.Fatal("redis connect failed", zap.Error(err))
		}
		store = cartstore.NewRedisStore(rdb)
	default:
		store = cartstore.NewCookieStore(cfg.CartSecret)
	}
	zl.Info("cart store ready", zap.String("backend", cfg.CartStore))

	// ======================
	// EXTERNALS
	// ======================
	gateway := przelewy24.NewClient(przelewy24.Config{
		MerchantID: cfg.P24.MerchantID,
		PosID:      cfg.P24.PosID,
		APIKey:     cfg.P24.APIKey,
		CRC:        cfg.P24.CRC,
		Sandbox:    cfg.P24.Sandbox,
	})

	var mailer services.Mailer
	if m, err := resend.NewResendMailer(cfg.ResendFrom); err != nil {
		zl.Warn("confirmation emails disabled", zap.Error(err))
	} else {
		mailer = m
	}

	// ======================
	// REPOSITORIES
	// ======================
	kitRepo := repository.NewKitRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)

	// ======================
	// SERVICES
	// ======================
	validator := services.NewCartValidator(kitRepo)
	orderSvc := services.NewOrderService(orderRepo, paymentRepo, validator, gateway, zl, cfg.Currency, cfg.PublicURL)
	paymentSvc := services.NewPaymentService(orderRepo, paymentRepo, gateway, mailer, zl)
	authSvc := services.NewAuthService(adminRepo)

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := authSvc.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			zl.Fatal("admin bootstrap failed", zap.Error(err))
		}
	}

	// ======================
	// ECHO
	// ======================
	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	api := e.Group("/api")

	// ======================
	// ROUTES (ONLY REGISTRATION)
	// ======================
	registerKitRoutes(api, kitRepo)
	registerCartRoutes(api, store, validator)
	registerCheckoutRoutes(api, store, orderSvc)
	registerOrderRoutes(api, orderSvc, paymentSvc)
	registerPaymentRoutes(api, paymentSvc)
	registerAuthRoutes(api, authSvc)

	// ======================
	// SERVER
	// ======================
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
