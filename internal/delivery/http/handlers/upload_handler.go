package handlers

import (
	"github.com/gofiber/fiber/v2"

	"multipart-uploader/internal/delivery/http/middleware"
	"multipart-uploader/internal/domain/dto"
	"multipart-uploader/internal/usecases"
	apperrors "multipart-uploader/pkg/errors"
	"multipart-uploader/pkg/errors/i18n"
	"multipart-uploader/pkg/helper"
)

type UploadHandler struct {
	uploadService usecases.MultipartUploadService
	validator     *helper.Validator
}

func NewUploadHandler(uploadService usecases.MultipartUploadService, validator *helper.Validator) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		validator:     validator,
	}
}

// GenerateMultipartURLs
//
// @Summary      Initiate multipart upload
// @Description  Opens a multipart upload and returns one presigned PUT URL per part
// @Tags         Upload
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      dto.MultipartUploadRequestDTO  true  "File description"
// @Success      200      {object}  dto.APIResponse[dto.MultipartUploadResponseDTO]
// @Failure      400      {object}  dto.ValidationErrorResponse  "Validation errors"
// @Failure      401      {object}  dto.ErrorResponse
// @Failure      500      {object}  dto.ErrorResponse
// @Router       /files-upload/generate-multipart-urls [post]
func (h *UploadHandler) GenerateMultipartURLs(c *fiber.Ctx) error {
	req := new(dto.MultipartUploadRequestDTO)
	if err := c.BodyParser(req); err != nil {
		return apperrors.ErrInvalidRequestBody(err)
	}
	if fields := h.validator.Struct(req); fields != nil {
		return apperrors.ErrValidation(fields)
	}

	resp, err := h.uploadService.InitiateUpload(c.UserContext(), req, middleware.CallerIdentity(c))
	if err != nil {
		return err
	}

	return c.JSON(dto.APIResponse[*dto.MultipartUploadResponseDTO]{
		Success: true,
		Data:    resp,
		Message: i18n.T("UPLOAD_INITIATED"),
	})
}

// CompleteMultipartUpload
//
// @Summary      Complete multipart upload
// @Description  Assembles the uploaded parts into the final object
// @Tags         Upload
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      dto.CompleteUploadRequestDTO  true  "Upload session and part ETags"
// @Success      200      {object}  dto.APIResponse[any]
// @Failure      400      {object}  dto.ErrorResponse  "Validation errors or no uploaded parts"
// @Failure      401      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse  "Unknown upload id"
// @Failure      500      {object}  dto.ErrorResponse
// @Router       /files-upload/complete-multiparts-upload [post]
func (h *UploadHandler) CompleteMultipartUpload(c *fiber.Ctx) error {
	req := new(dto.CompleteUploadRequestDTO)
	if err := c.BodyParser(req); err != nil {
		return apperrors.ErrInvalidRequestBody(err)
	}
	if fields := h.validator.Struct(req); fields != nil {
		return apperrors.ErrValidation(fields)
	}

	if err := h.uploadService.CompleteUpload(c.UserContext(), req); err != nil {
		return err
	}

	return c.JSON(dto.APIResponse[any]{
		Success: true,
		Message: i18n.T("UPLOAD_COMPLETED"),
	})
}
