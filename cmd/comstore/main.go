package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"comstore/internal/catalog"
	"comstore/internal/config"
	"comstore/internal/etl"
	"comstore/internal/http/handlers"
	applog "comstore/internal/log"
	"comstore/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := repos.OpenDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Catalog sync: fetch client + reconciler, driven by the scheduler on
	// a fixed period with an immediate first run.
	source := catalog.NewClient(cfg.CatalogBaseURL)
	reconciler := etl.NewReconciler(db, source)
	scheduler := etl.NewScheduler(cfg.SyncInterval, reconciler)
	scheduler.Start(context.Background(), true)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "something went wrong"})
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	app.Use(requestid.New())
	app.Use(logger.New())

	deps := handlers.NewDeps(db)

	app.Get("/products", deps.ProductHandler.List)
	app.Get("/products/sort", deps.ProductHandler.Sorted)
	app.Get("/products/category/:id", deps.ProductHandler.ByCategory)
	app.Get("/product/:id", deps.ProductHandler.Detail)
	app.Get("/categories", deps.CategoryHandler.List)
	app.Get("/search", limiter.New(limiter.Config{Max: 20, Expiration: time.Minute}), deps.SearchHandler.Search)

	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, try again later"})
		},
	}), deps.AuthHandler.Login)
	app.Post("/adduser", deps.AuthHandler.Register)
	app.Post("/basket/add", deps.BasketHandler.Add)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	// Let an in-flight sync run wind down before the process exits.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := scheduler.Stop(ctx); err != nil {
			applog.Error(nil, "sync.scheduler.stop.error", err, nil)
		}
		_ = app.Shutdown()
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
