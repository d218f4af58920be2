package dto

import (
	"time"

	"stayspot/internal/http-api/models"
)

// CreateSpotDTO carries the ten listing fields for spot creation.
// Every field is required; name is capped below 50 characters.
type CreateSpotDTO struct {
	Address      string  `json:"address" binding:"required"`
	City         string  `json:"city" binding:"required"`
	State        string  `json:"state" binding:"required"`
	Country      string  `json:"country" binding:"required"`
	Lat          float64 `json:"lat" binding:"required"`
	Lng          float64 `json:"lng" binding:"required"`
	Name         string  `json:"name" binding:"required,max=49"`
	Description  string  `json:"description" binding:"required"`
	Price        float64 `json:"price" binding:"required"`
	PreviewImage string  `json:"previewImage" binding:"required"`
}

// UpdateSpotDTO is the edit rule set: same as creation but previewImage
// is not required.
type UpdateSpotDTO struct {
	Address     string  `json:"address" binding:"required"`
	City        string  `json:"city" binding:"required"`
	State       string  `json:"state" binding:"required"`
	Country     string  `json:"country" binding:"required"`
	Lat         float64 `json:"lat" binding:"required"`
	Lng         float64 `json:"lng" binding:"required"`
	Name        string  `json:"name" binding:"required,max=49"`
	Description string  `json:"description" binding:"required"`
	Price       float64 `json:"price" binding:"required"`
}

// ToModel converts a CreateSpotDTO to a Spot model (ownerId is set by the
// service from the authenticated user, never from the payload).
func (d CreateSpotDTO) ToModel() models.Spot {
	return models.Spot{
		Address:      d.Address,
		City:         d.City,
		State:        d.State,
		Country:      d.Country,
		Lat:          d.Lat,
		Lng:          d.Lng,
		Name:         d.Name,
		Description:  d.Description,
		Price:        d.Price,
		PreviewImage: d.PreviewImage,
	}
}

// OwnerResponse is the owner projection embedded in spot details.
type OwnerResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// ImageResponse is the image projection embedded in spot and review
// details (type discriminator and timestamps excluded).
type ImageResponse struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

// SpotDetailResponse is a single spot with its images, owner and the
// review aggregates attached.
type SpotDetailResponse struct {
	ID            int64           `json:"id"`
	OwnerID       string          `json:"ownerId"`
	Address       string          `json:"address"`
	City          string          `json:"city"`
	State         string          `json:"state"`
	Country       string          `json:"country"`
	Lat           float64         `json:"lat"`
	Lng           float64         `json:"lng"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         float64         `json:"price"`
	PreviewImage  string          `json:"previewImage"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	NumReviews    int64           `json:"numReviews"`
	AvgStarRating *float64        `json:"avgStarRating"`
	Images        []ImageResponse `json:"Images"`
	Owner         OwnerResponse   `json:"Owner"`
}

// FromModelToSpotDetail converts a Spot model (with Images and Owner
// preloaded) to a SpotDetailResponse. Aggregates are filled by the service.
func FromModelToSpotDetail(spot *models.Spot) *SpotDetailResponse {
	images := make([]ImageResponse, 0, len(spot.Images))
	for _, img := range spot.Images {
		images = append(images, ImageResponse{ID: img.ID, URL: img.URL})
	}

	return &SpotDetailResponse{
		ID:           spot.ID,
		OwnerID:      spot.OwnerID,
		Address:      spot.Address,
		City:         spot.City,
		State:        spot.State,
		Country:      spot.Country,
		Lat:          spot.Lat,
		Lng:          spot.Lng,
		Name:         spot.Name,
		Description:  spot.Description,
		Price:        spot.Price,
		PreviewImage: spot.PreviewImage,
		CreatedAt:    spot.CreatedAt,
		UpdatedAt:    spot.UpdatedAt,
		Images:       images,
		Owner: OwnerResponse{
			ID:        spot.Owner.ID,
			FirstName: spot.Owner.FirstName,
			LastName:  spot.Owner.LastName,
		},
	}
}
