package routers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"multipart-uploader/internal/delivery/http/handlers"
	"multipart-uploader/internal/domain/dto"
	"multipart-uploader/internal/pkg/metrics"
)

// SetupSystemRoutes registers the unauthenticated operational endpoints.
func SetupSystemRoutes(app *fiber.App, info dto.InfoResponse, m *metrics.Metrics) {
	systemHandler := handlers.NewSystemHandler(info)

	app.Get("/health", systemHandler.Health)
	app.Get("/info", systemHandler.Info)
	app.Get("/metrics", m.Handler())
	app.Get("/swagger/*", swagger.HandlerDefault)
}
