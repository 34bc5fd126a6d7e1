package handlers

import (
	"github.com/gofiber/fiber/v2"

	"multipart-uploader/internal/usecases"
)

type AuthHandler struct {
	authService usecases.AuthService
}

func NewAuthHandler(authService usecases.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login
//
// @Summary      Login
// @Description  Exchanges username and password for a bearer token
// @Tags         Auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      200       {object}  dto.LoginResponseDTO
// @Failure      401       {object}  dto.ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	username := c.FormValue("username", c.Query("username"))
	password := c.FormValue("password", c.Query("password"))

	resp, err := h.authService.Login(c.UserContext(), username, password)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
