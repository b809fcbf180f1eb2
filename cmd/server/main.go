package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/sneakshop/backend/internal/cart"
	"github.com/sneakshop/backend/internal/catalog"
	"github.com/sneakshop/backend/internal/checkout"
	"github.com/sneakshop/backend/internal/config"
	"github.com/sneakshop/backend/internal/coupon"
	"github.com/sneakshop/backend/internal/events"
	"github.com/sneakshop/backend/internal/httpserver"
	"github.com/sneakshop/backend/internal/inventory"
	"github.com/sneakshop/backend/internal/models"
	"github.com/sneakshop/backend/internal/order"
	"github.com/sneakshop/backend/internal/payment"
	"github.com/sneakshop/backend/internal/pricing"
	"github.com/sneakshop/backend/internal/tradein"
	"github.com/sneakshop/backend/pkg/db"
	"github.com/sneakshop/backend/pkg/logging"
	loggingmw "github.com/sneakshop/backend/pkg/middleware/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)

	e := echo.New()
	e.HideBanner = true

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(loggingmw.RequestLogger(logger))

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gormDB, err := db.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&models.Product{}, &models.ProductVariant{}, &models.CartItem{},
		&models.Coupon{}, &models.Order{}, &models.OrderItem{}, &models.TradeIn{},
	); err != nil {
		log.Fatalf("migrate error: %v", err)
	}

	producer := events.NewProducer(cfg.KafkaBrokers, cfg.OrderTopic)
	if !producer.Enabled() {
		logger.Warn("kafka_disabled", "reason", "no brokers configured")
	}

	couponRepo := &coupon.GormRepo{DB: gormDB}
	orderSvc := &order.Service{Repo: &order.GormRepo{DB: gormDB}}
	stockSvc := &inventory.Service{Store: &inventory.GormStore{DB: gormDB}}
	paymentAdapter := &payment.Adapter{
		Provider: &payment.SimulatedProvider{},
		Timeout:  cfg.PaymentTimeout,
	}

	checkoutSvc := &checkout.Service{
		Coupons:  couponRepo,
		Stock:    stockSvc,
		Payments: paymentAdapter,
		Orders:   orderSvc,
		Events:   producer,
		Pricing: pricing.Options{
			VATRate:               cfg.VATRate,
			ShippingCost:          cfg.ShippingCost,
			FreeShippingThreshold: cfg.FreeShippingThreshold,
			Currency:              cfg.Currency,
		},
	}

	httpserver.Register(e, &httpserver.Deps{
		CheckoutHandler: &httpserver.CheckoutHTTP{Svc: checkoutSvc},
		CartHandler:     &httpserver.CartHTTP{Store: &cart.Store{Repo: &cart.GormRepo{DB: gormDB}}},
		OrderHandler:    &httpserver.OrderHTTP{Svc: orderSvc, Producer: producer},
		ProductHandler:  &httpserver.ProductHTTP{Svc: &catalog.Service{Repo: &catalog.GormRepo{DB: gormDB}}},
		CouponHandler:   &httpserver.CouponHTTP{Repo: couponRepo},
		TradeInHandler:  &httpserver.TradeInHTTP{Svc: &tradein.Service{Repo: &tradein.GormRepo{DB: gormDB}}, Producer: producer},
	})

	go func() {
		addr := ":" + strconv.Itoa(cfg.ServerPort)
		logger.Info("server_starting", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info("server_stopping")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("echo_shutdown", "error", err)
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka_close", "error", err)
	}

	sqlDB, err := gormDB.DB()
	if err == nil {
		sqlDB.Close()
	}

	logger.Info("server_stopped")
}
