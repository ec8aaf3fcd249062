package handler

import (
	"context"      // provides context with cancellation for DB calls
	"database/sql" // SQL database interactions
	"net/http"     // HTTP status codes and primitives
	"strings"      // string manipulation utilities
	"time"         // timeouts for DB calls

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/iliyamo/travel-journal/internal/config"     // app configuration
	"github.com/iliyamo/travel-journal/internal/repository" // DB repositories
	"github.com/iliyamo/travel-journal/internal/utils"      // helper functions (hashing, token issuing)
)

// AuthHandler bundles dependencies for the account endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewAuthHandler(cfg config.Config, u UserStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type createAccountReq struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userPart is the public projection of a user returned after registration
// and login.  It deliberately carries nothing but the display fields.
type userPart struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// CreateAccount: register a user and return a token immediately.
func (h *AuthHandler) CreateAccount(c echo.Context) error {
	var req createAccountReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "invalid body"})
	}
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.FullName == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "All fields are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.FullName, req.Email, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "User already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "create user failed"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, uid, h.Cfg.AccessTTLHours)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "issue token failed"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"error":       false,
		"user":        userPart{FullName: req.FullName, Email: req.Email},
		"accessToken": access.Token,
		"message":     "Registration Successful",
	})
}

// Login: verify credentials and return a fresh token.  An unknown email and
// a wrong password are reported differently, matching the API contract.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "Email and Password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "Invalid Credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, h.Cfg.AccessTTLHours)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "issue token failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"error":       false,
		"message":     "Login Successful",
		"user":        userPart{FullName: u.FullName, Email: u.Email},
		"accessToken": access.Token,
	})
}

// GetUser returns the persisted record of the authenticated identity.  When
// the token's subject no longer resolves to a user the request is rejected
// as unauthenticated, not as a missing resource.
func (h *AuthHandler) GetUser(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.NoContent(http.StatusUnauthorized)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.NoContent(http.StatusUnauthorized)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "query failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{"user": u, "message": ""})
}
