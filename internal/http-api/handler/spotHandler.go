package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"stayspot/internal/http-api/dto"
	"stayspot/internal/http-api/service"
	"stayspot/internal/http-api/validation"

	"github.com/gin-gonic/gin"
)

type SpotHandler struct {
	svc service.SpotService
}

func NewSpotHandler(svc service.SpotService) *SpotHandler {
	return &SpotHandler{svc: svc}
}

// RegisterRoutes registers spot routes. Reads are public; writes go
// through the auth middleware.
func (h *SpotHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.GET("/:spot_id", h.Get)
	rg.POST("", requireAuth, h.Create)
	rg.PUT("/:spot_id", requireAuth, h.Update)
	rg.DELETE("/:spot_id", requireAuth, h.Delete)
	rg.POST("/:spot_id/images", requireAuth, h.AddImage)
}

// bindJSON binds the request body and writes the documented validation
// error shape on failure. Returns false if a response was already written.
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		if fieldErrs := validation.Errors(err); fieldErrs != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"message":    "Validation error",
				"statusCode": 400,
				"errors":     fieldErrs,
			})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error(), "statusCode": 400})
		}
		return false
	}
	return true
}

// currentUserID reads the authenticated user id set by AuthMiddleware.
func currentUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required", "statusCode": 401})
		return "", false
	}
	return userID.(string), true
}

// List returns every spot
// GET /api/spots
func (h *SpotHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	spots, err := h.svc.GetAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error(), "statusCode": 500})
		return
	}

	c.JSON(http.StatusOK, gin.H{"Spots": spots})
}

// Get returns one spot with images, owner and review aggregates
// GET /api/spots/:spot_id
func (h *SpotHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("spot_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Spot couldn't be found", "statusCode": 404})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	spot, err := h.svc.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrSpotNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Spot couldn't be found", "statusCode": 404})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error(), "statusCode": 500})
		return
	}

	c.JSON(http.StatusOK, spot)
}

// Create persists a new spot owned by the authenticated user
// POST /api/spots
func (h *SpotHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var in dto.CreateSpotDTO
	if !bindJSON(c, &in) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	spot, err := h.svc.Create(ctx, userID, in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error(), "statusCode": 500})
		return
	}

	c.JSON(http.StatusOK, spot)
}

// Update applies the nine edit fields to a spot the user owns
// PUT /api/spots/:spot_id
func (h *SpotHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("spot_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Spot couldn't be found", "statusCode": 404})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var in dto.UpdateSpotDTO
	if !bindJSON(c, &in) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	spot, err := h.svc.Update(ctx, id, userID, in)
	if err != nil {
		// A non-owner gets the same 404 as a missing spot.
		if errors.Is(err, service.ErrSpotNotFound) || errors.Is(err, service.ErrNotSpotOwner) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Spot couldn't be found", "statusCode": 404})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error(), "statusCode": 500})
		return
	}

	c.JSON(http.StatusOK, spot)
}

// Delete removes a spot the user owns
// DELETE /api/spots/:spot_id
func (h *SpotHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("spot_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Spot couldn't be found", "statusCode": 404})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, service.ErrSpotNotFound) || errors.Is(err, service.ErrNotSpotOwner) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Spot couldn't be found", "statusCode": 404})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error(), "statusCode": 500})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully deleted", "statusCode": 200})
}

// AddImage attaches an image to a spot the user owns
// POST /api/spots/:spot_id/images
func (h *SpotHandler) AddImage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("spot_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Spot couldn't be found", "statusCode": 404})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var in dto.CreateImageDTO
	if !bindJSON(c, &in) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	image, err := h.svc.AddImage(ctx, id, userID, in.URL)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSpotNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Spot couldn't be found", "statusCode": 404})
		case errors.Is(err, service.ErrNotSpotOwner):
			c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden", "statusCode": 403})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error(), "statusCode": 500})
		}
		return
	}

	c.JSON(http.StatusOK, image)
}
