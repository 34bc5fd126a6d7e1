package handlers

import (
	"github.com/gofiber/fiber/v2"

	"multipart-uploader/internal/domain/dto"
	consts "multipart-uploader/pkg/constants"
)

type SystemHandler struct {
	info dto.InfoResponse
}

func NewSystemHandler(info dto.InfoResponse) *SystemHandler {
	return &SystemHandler{info: info}
}

// Health
//
// @Summary      Health check
// @Tags         System
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Router       /health [get]
func (h *SystemHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{Status: consts.StatusOK})
}

// Info
//
// @Summary      Service information
// @Tags         System
// @Produce      json
// @Success      200  {object}  dto.InfoResponse
// @Router       /info [get]
func (h *SystemHandler) Info(c *fiber.Ctx) error {
	return c.JSON(h.info)
}
