package http

import "github.com/gofiber/fiber/v2"

// NewApp builds the fiber application with global middlewares and routes.
func NewApp(name string, middleware MiddlewareConfig, routes RouteConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               name,
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler(middleware.Logger, middleware.Metrics),
	})
	RegisterMiddlewares(app, middleware)
	RegisterRoutes(app, routes)
	return app
}
