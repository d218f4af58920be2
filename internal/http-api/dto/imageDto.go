package dto

// CreateImageDTO for attaching an image to a spot or a review
type CreateImageDTO struct {
	URL string `json:"url" binding:"required"`
}
