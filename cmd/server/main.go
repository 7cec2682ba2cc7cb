package main

import (
	"log"
	"net/http"

	"lease_flow_app_go/config"
	"lease_flow_app_go/db"
	"lease_flow_app_go/handlers"
	"lease_flow_app_go/middleware"
	"lease_flow_app_go/models"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(
		&models.Company{},
		&models.User{},
		&models.Client{},
		&models.Leaser{},
		&models.Offer{},
		&models.EquipmentLine{},
		&models.EquipmentAttribute{},
		&models.EquipmentSpecification{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	// API routes (identity resolved by the upstream gateway)
	api := e.Group("/api")
	api.Use(middleware.ResolveIdentity())
	{
		api.GET("/offers", handlers.GetOffersHandler)
		api.POST("/offers", handlers.CreateOfferHandler)
		api.GET("/offers/export", handlers.ExportOffersHandler)
		api.GET("/offers/:id", handlers.GetOfferHandler)
		api.GET("/offers/:id/pdf", handlers.DownloadOfferPDFHandler)

		// Admin-only routes
		adminRoutes := api.Group("")
		adminRoutes.Use(middleware.RequireRole(models.RoleAdmin))
		{
			adminRoutes.DELETE("/offers/:id", handlers.DeleteOfferHandler)
		}
	}

	// Start server
	log.Printf("Starting server on port %s (%s)", cfg.ServerPort, cfg.Environment)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
