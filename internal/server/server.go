package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"go.uber.org/zap"

	"jotter/internal/database"
)

type FiberServer struct {
	*fiber.App

	store *database.Store
	log   *zap.Logger
}

func New(store *database.Store, log *zap.Logger) *FiberServer {
	server := &FiberServer{
		App: fiber.New(fiber.Config{
			ServerHeader: "jotter",
			AppName:      "jotter",
		}),
		store: store,
		log:   log,
	}
	server.App.Use(favicon.New())
	// The frontend can be served from anywhere, so every origin, method
	// and header is accepted.
	server.App.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		MaxAge:       3600,
	}))
	server.App.Use(logger.New())
	server.App.Use(pprof.New(pprof.Config{
		Next: nil, // Use this if you want to exclude specific routes
	}))
	return server
}
