package errors

import (
	stderrors "errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"multipart-uploader/pkg/errors/i18n"
)

// ErrorHandler is the single place where errors become HTTP responses. It is
// installed as fiber's ErrorHandler so handlers only ever return errors.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		return HandleError(c, logger, err)
	}
}

func HandleError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	if err == nil {
		return nil
	}

	var ue *UploadError
	if !stderrors.As(err, &ue) {
		var fe *fiber.Error
		if stderrors.As(err, &fe) {
			ue = fromFiberError(fe)
		} else {
			ue = ErrInternal(err)
		}
	}

	fields := []zap.Field{
		zap.String("code", ue.Code),
		zap.Int("status", ue.Status),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
	}
	if ue.Err != nil {
		fields = append(fields, zap.Error(ue.Err))
	}
	if ue.Status >= fiber.StatusInternalServerError {
		logger.Error("request failed", fields...)
	} else {
		logger.Info("request rejected", fields...)
	}

	if ue.Code == CodeValidationFailed {
		return c.Status(ue.Status).JSON(fiber.Map{
			"success": false,
			"errors":  ue.Fields,
			"message": ue.Message,
		})
	}

	// Client sees only code, message and status.
	return c.Status(ue.Status).JSON(fiber.Map{
		"error":   ue.Code,
		"message": ue.Message,
		"status":  ue.Status,
	})
}

func fromFiberError(fe *fiber.Error) *UploadError {
	switch {
	case fe.Code == fiber.StatusNotFound:
		return &UploadError{Code: "NOT_FOUND", Message: i18n.T("NOT_FOUND"), Status: fe.Code, Err: fe}
	case fe.Code == fiber.StatusUnprocessableEntity:
		return ErrInvalidRequestBody(fe)
	case fe.Code < fiber.StatusInternalServerError:
		return &UploadError{Code: "BAD_REQUEST", Message: i18n.T("BAD_REQUEST"), Status: fe.Code, Err: fe}
	default:
		return ErrInternal(fe)
	}
}
