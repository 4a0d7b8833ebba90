package app

import (
	"fmt"
	"log"
	"strings"

	"careerquest/internal/config"
	"careerquest/internal/delivery/http/middleware"
	"careerquest/internal/delivery/http/routes"
	v1 "careerquest/internal/delivery/http/routes/v1"
	"careerquest/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber *fiber.App
	Hub   *ws.Hub
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	hub := ws.NewHub(c.Logger)

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c, hub)

	return &App{Fiber: f, Hub: hub}
}

// Bootstrap assembles the container and the fiber app, and returns a
// cleanup for everything the container opened.
func Bootstrap(cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	app := New(c)
	go app.Hub.Run()

	cleanup := func() error {
		return c.Close()
	}
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewErrorMiddleware().Middleware())
	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container, hub *ws.Hub) {
	if app == nil {
		return
	}

	registry := routes.NewRegistry(v1.Deps{
		Config: c.Config,
		DB:     c.DB,
		Cache:  c.Cache,
		Hub:    hub,
		Logger: c.Logger,
	})
	registry.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
