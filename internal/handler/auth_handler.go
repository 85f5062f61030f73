package handler

import (
	"strings"

	"quiz-gen/internal/domain"
	"quiz-gen/internal/dto"
	"quiz-gen/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles account and token HTTP requests
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register godoc
// @Summary Create an account
// @Description Registers a user with a unique username
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Account details"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("Invalid request body")
	}

	if _, err := h.authService.Register(c.UserContext(), &req); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "User created"})
}

// Login godoc
// @Summary Obtain tokens
// @Description Exchanges username and password for an access and a refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("Invalid request body")
	}

	var missing domain.ValidationErrors
	if strings.TrimSpace(req.Username) == "" {
		missing = append(missing, domain.NewMissingFieldError("username"))
	}
	if req.Password == "" {
		missing = append(missing, domain.NewMissingFieldError("password"))
	}
	if len(missing) > 0 {
		return missing
	}

	access, refresh, err := h.authService.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.TokenResponse{Access: access, Refresh: refresh})
}

// RefreshToken godoc
// @Summary Refresh tokens
// @Description Exchanges a refresh token for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /token/refresh [post]
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("Invalid request body")
	}
	if strings.TrimSpace(req.Refresh) == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("refresh")}
	}

	access, refresh, err := h.authService.RefreshToken(c.UserContext(), req.Refresh)
	if err != nil {
		return err
	}

	return c.JSON(dto.TokenResponse{Access: access, Refresh: refresh})
}
