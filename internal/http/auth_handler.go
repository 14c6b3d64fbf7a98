package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gapgap-ai/internal/service"
)

// AuthHandler mantiene dependencias para el endpoint de autenticación.
type AuthHandler struct {
	logger   *zap.Logger
	authServ *service.AuthService
	jwtServ  *service.JWTService
}

// NewAuthHandler crea una instancia de AuthHandler con dependencias necesarias.
func NewAuthHandler(logger *zap.Logger, authServ *service.AuthService, jwtServ *service.JWTService) *AuthHandler {
	return &AuthHandler{
		logger:   logger,
		authServ: authServ,
		jwtServ:  jwtServ,
	}
}

// Handle maneja POST /auth. El body lleva action: "login" o "register".
func (h *AuthHandler) Handle(c *gin.Context) {
	var req struct {
		Action   string `json:"action" binding:"required"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid auth request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	switch req.Action {
	case "register":
		user, err := h.authServ.Register(c.Request.Context(), service.RegisterInput{
			Email:    req.Email,
			Password: req.Password,
			Name:     req.Name,
		})
		if err != nil {
			switch {
			case errors.Is(err, service.ErrMissingFields):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Email, password and name required"})
			case errors.Is(err, service.ErrEmailTaken):
				c.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
			default:
				h.logger.Error("register failed", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not register"})
			}
			return
		}
		token, err := h.jwtServ.Generate(user)
		if err != nil {
			h.logger.Error("token issue failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})

	case "login":
		user, err := h.authServ.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrMissingFields):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password required"})
			case errors.Is(err, service.ErrInvalidCredentials):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			default:
				h.logger.Error("login failed", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not login"})
			}
			return
		}
		token, err := h.jwtServ.Generate(user)
		if err != nil {
			h.logger.Error("token issue failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user, "token": token})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
	}
}
