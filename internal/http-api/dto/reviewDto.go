package dto

import (
	"time"

	"stayspot/internal/http-api/models"
)

// CreateReviewDTO for leaving a review on a spot
type CreateReviewDTO struct {
	Review string `json:"review" binding:"required"`
	Stars  int    `json:"stars" binding:"required,min=1,max=5"`
}

// ReviewResponse for returning a review with its author and images
type ReviewResponse struct {
	ID        int64           `json:"id"`
	UserID    string          `json:"userId"`
	SpotID    int64           `json:"spotId"`
	Review    string          `json:"review"`
	Stars     int             `json:"stars"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	User      OwnerResponse   `json:"User"`
	Images    []ImageResponse `json:"Images"`
}

// FromModelToReviewResponse converts a Review model (with User and Images
// preloaded) to a ReviewResponse DTO
func FromModelToReviewResponse(review *models.Review) *ReviewResponse {
	images := make([]ImageResponse, 0, len(review.Images))
	for _, img := range review.Images {
		images = append(images, ImageResponse{ID: img.ID, URL: img.URL})
	}

	return &ReviewResponse{
		ID:        review.ID,
		UserID:    review.UserID,
		SpotID:    review.SpotID,
		Review:    review.Review,
		Stars:     review.Stars,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
		User: OwnerResponse{
			ID:        review.User.ID,
			FirstName: review.User.FirstName,
			LastName:  review.User.LastName,
		},
		Images: images,
	}
}
