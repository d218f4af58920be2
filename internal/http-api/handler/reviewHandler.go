package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"stayspot/internal/http-api/dto"
	"stayspot/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	svc service.ReviewService
}

func NewReviewHandler(svc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

// RegisterRoutes registers the review routes nested under a spot.
func (h *ReviewHandler) RegisterRoutes(spots *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	reviews := spots.Group("/:spot_id/reviews")
	{
		reviews.GET("", h.List)
		reviews.POST("", requireAuth, h.Create)
	}
}

// RegisterImageRoutes registers the image route nested under a review.
func (h *ReviewHandler) RegisterImageRoutes(reviews *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	reviews.POST("/:review_id/images", requireAuth, h.AddImage)
}

// List returns all reviews for a spot
// GET /api/spots/:spot_id/reviews
func (h *ReviewHandler) List(c *gin.Context) {
	spotID, err := strconv.ParseInt(c.Param("spot_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Spot couldn't be found", "statusCode": 404})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	reviews, err := h.svc.GetSpotReviews(ctx, spotID)
	if err != nil {
		if errors.Is(err, service.ErrSpotNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Spot couldn't be found", "statusCode": 404})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error(), "statusCode": 500})
		return
	}

	c.JSON(http.StatusOK, gin.H{"Reviews": reviews})
}

// Create persists a new review by the authenticated user for a spot
// POST /api/spots/:spot_id/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	spotID, err := strconv.ParseInt(c.Param("spot_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Spot couldn't be found", "statusCode": 404})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var in dto.CreateReviewDTO
	if !bindJSON(c, &in) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	review, err := h.svc.CreateReview(ctx, userID, spotID, in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSpotNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Spot couldn't be found", "statusCode": 404})
		case errors.Is(err, service.ErrDuplicateReview):
			c.JSON(http.StatusForbidden, gin.H{"message": "User already has a review for this spot", "statusCode": 403})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error(), "statusCode": 500})
		}
		return
	}

	c.JSON(http.StatusOK, review)
}

// AddImage attaches an image to a review the user wrote
// POST /api/reviews/:review_id/images
func (h *ReviewHandler) AddImage(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.Param("review_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Review couldn't be found", "statusCode": 404})
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

	image, err := h.svc.AddImage(ctx, reviewID, userID, in.URL)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Review couldn't be found", "statusCode": 404})
		case errors.Is(err, service.ErrNotReviewAuthor):
			c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden", "statusCode": 403})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error(), "statusCode": 500})
		}
		return
	}

	c.JSON(http.StatusOK, image)
}
