package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dmitrijs2005/trackit/internal/common"
	"github.com/dmitrijs2005/trackit/internal/server/models"
	"github.com/dmitrijs2005/trackit/internal/server/services"
)

// UserService is the slice of the user service the auth handlers need.
type UserService interface {
	Register(ctx context.Context, email, username, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	GuestLogin(ctx context.Context) (*services.AuthResult, error)
}

type AuthHandler struct {
	users UserService
}

func NewAuthHandler(users UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

type signupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Signup creates an account. Conflicts and credential-rule failures come back
// as 400 with the exact reason in detail.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return respondError(c, http.StatusBadRequest, "email, username and password are required")
	}

	user, err := h.users.Register(c.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrEmailTaken):
			return respondError(c, http.StatusBadRequest, "Email already registered")
		case errors.Is(err, common.ErrUsernameTaken):
			return respondError(c, http.StatusBadRequest, "Username already taken")
		case errors.Is(err, common.ErrPasswordLength):
			return respondError(c, http.StatusBadRequest, "Password must be at least 8 characters long")
		case errors.Is(err, common.ErrorValidation):
			return respondError(c, http.StatusBadRequest, err.Error())
		default:
			return respondError(c, http.StatusInternalServerError, "failed to create user")
		}
	}

	return respondJSON(c, http.StatusCreated, toUserPayload(user))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and returns a bearer token with the identity.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid JSON payload")
	}

	result, err := h.users.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return respondError(c, http.StatusUnauthorized, "Incorrect email or password")
		}
		return respondError(c, http.StatusInternalServerError, "failed to login")
	}

	return respondJSON(c, http.StatusOK, toTokenPayload(result))
}

// GuestLogin mints a short-lived demo token without touching the database.
func (h *AuthHandler) GuestLogin(c *fiber.Ctx) error {
	result, err := h.users.GuestLogin(c.Context())
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Failed to create guest access")
	}

	return respondJSON(c, http.StatusOK, toTokenPayload(result))
}
