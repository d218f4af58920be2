package handler

import (
	"errors"
	"net/http"
	"time"

	"stayspot/internal/config"
	"stayspot/internal/http-api/dto"
	"stayspot/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc service.AuthService
	cfg *config.Config
}

func NewAuthHandler(svc service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{svc: svc, cfg: cfg}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	rg.POST("/register", h.Register)
	rg.POST("/login", h.Login)
	rg.GET("/me", requireAuth, h.Me)
}

// Register creates a new user account
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var in dto.RegisterRequest
	if !bindJSON(c, &in) {
		return
	}

	user, err := h.svc.Register(in.Username, in.Password, in.Email, in.FirstName, in.LastName)
	if err != nil {
		if errors.Is(err, service.ErrNameInUse) || errors.Is(err, service.ErrEmailInUse) {
			c.JSON(http.StatusForbidden, gin.H{"message": err.Error(), "statusCode": 403})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error(), "statusCode": 500})
		return
	}

	c.JSON(http.StatusOK, user)
}

// Login authenticates a user and issues an access token
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var in dto.LoginRequest
	if !bindJSON(c, &in) {
		return
	}

	token, user, err := h.svc.Login(in.Username, in.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials", "statusCode": 401})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error(), "statusCode": 500})
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		AccessToken: token,
		UserID:      user.ID,
		Username:    user.Username,
		ExpiresIn:   int64(h.cfg.AccessTokenTTL / time.Second),
	})
}

// Me returns the authenticated user's profile
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.svc.GetUser(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User couldn't be found", "statusCode": 404})
		return
	}

	c.JSON(http.StatusOK, user)
}
