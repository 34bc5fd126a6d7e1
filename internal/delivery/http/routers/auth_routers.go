package routers

import (
	"github.com/gofiber/fiber/v2"

	"multipart-uploader/internal/delivery/http/handlers"
	"multipart-uploader/internal/usecases"
)

func SetupAuthRoutes(app *fiber.App, authService usecases.AuthService) {
	authHandler := handlers.NewAuthHandler(authService)

	app.Post("/auth/login", authHandler.Login)
}
