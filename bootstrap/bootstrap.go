package bootstrap

import (
	"networth-backend/internal/app"
	"networth-backend/internal/config"

	"github.com/gofiber/fiber/v2"
)

// New creates the Fiber app for serverless deployments. The api handler
// imports this package, not internal, so it stays importable from outside.
// The scheduler is skipped: serverless instances are short-lived, so price
// refresh happens on request via GET /portfolio?refresh=true instead.
func New() (*fiber.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	fiberApp, _, _, _, err := app.CreateApp(cfg)
	return fiberApp, err
}
