package mockapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"stuma/internal/log"
)

// Server serves the marketplace API surface over a Store.
type Server struct {
	store *Store
	app   *fiber.App
}

func NewServer(store *Store) *Server {
	s := &Server{store: store}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Error("mockapi.error", err, map[string]any{"path": c.Path()})
			return message(c, fiber.StatusInternalServerError, "internal error")
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	app.Use(requestid.New())
	app.Use(logger.New())

	api := app.Group("/api")
	api.Post("/auth/register", s.handleRegister)
	api.Post("/auth/login", s.handleLogin)
	api.Get("/items", s.handleItems)
	api.Post("/items", s.handleSell)
	api.Get("/profile", s.handleProfile)
	api.Put("/profile", s.handleUpdateProfile)
	api.Post("/profile/change-password", s.handleChangePassword)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return message(c, fiber.StatusNotFound, "not found")
	})

	s.app = app
	return s
}

// App exposes the fiber app for tests (app.Test) and for Listen.
func (s *Server) App() *fiber.App { return s.app }

func (s *Server) Listen(addr string) error { return s.app.Listen(addr) }
