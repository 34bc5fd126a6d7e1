package routers

import (
	"github.com/gofiber/fiber/v2"

	"multipart-uploader/internal/delivery/http/handlers"
	"multipart-uploader/internal/delivery/http/middleware"
	"multipart-uploader/internal/usecases"
	"multipart-uploader/pkg/helper"
)

func SetupUploadRoutes(app *fiber.App, uploadService usecases.MultipartUploadService, validator *helper.Validator, tokens middleware.TokenValidator) {
	uploadHandler := handlers.NewUploadHandler(uploadService, validator)

	api := app.Group("/files-upload", middleware.RequireAuth(tokens))
	api.Post("/generate-multipart-urls", uploadHandler.GenerateMultipartURLs)
	api.Post("/complete-multiparts-upload", uploadHandler.CompleteMultipartUpload)
}
