package service

import (
	"context"
	"errors"
	"math"

	"stayspot/internal/http-api/cache"
	"stayspot/internal/http-api/dto"
	"stayspot/internal/http-api/models"
	"stayspot/internal/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrSpotNotFound = errors.New("spot not found")
	ErrNotSpotOwner = errors.New("spot does not belong to the current user")
)

type SpotService interface {
	GetAll(ctx context.Context) ([]models.Spot, error)
	GetByID(ctx context.Context, id int64) (*dto.SpotDetailResponse, error)
	Create(ctx context.Context, ownerID string, in dto.CreateSpotDTO) (*models.Spot, error)
	Update(ctx context.Context, id int64, userID string, in dto.UpdateSpotDTO) (*models.Spot, error)
	Delete(ctx context.Context, id int64, userID string) error
	AddImage(ctx context.Context, spotID int64, userID string, url string) (*models.Image, error)
}

type spotService struct {
	spotRepo   repository.SpotRepository
	reviewRepo repository.ReviewRepository
	imageRepo  repository.ImageRepository
	aggCache   *cache.AggregateCache
}

func NewSpotService(
	spotRepo repository.SpotRepository,
	reviewRepo repository.ReviewRepository,
	imageRepo repository.ImageRepository,
	aggCache *cache.AggregateCache,
) SpotService {
	return &spotService{
		spotRepo:   spotRepo,
		reviewRepo: reviewRepo,
		imageRepo:  imageRepo,
		aggCache:   aggCache,
	}
}

// GetAll returns every spot, unpaginated. The result is never nil so an
// empty table renders as an empty JSON array.
func (s *spotService) GetAll(ctx context.Context) ([]models.Spot, error) {
	spots, err := s.spotRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if spots == nil {
		spots = []models.Spot{}
	}
	return spots, nil
}

// GetByID returns a spot with its images, owner and review aggregates.
// avgStarRating stays nil when the spot has no reviews.
func (s *spotService) GetByID(ctx context.Context, id int64) (*dto.SpotDetailResponse, error) {
	spot, err := s.spotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSpotNotFound
		}
		return nil, err
	}

	resp := dto.FromModelToSpotDetail(spot)

	agg, err := s.aggCache.Get(ctx, id)
	if err != nil || agg == nil {
		// Cache miss or cache trouble: fall through to the database.
		count, err := s.reviewRepo.CountBySpot(ctx, id)
		if err != nil {
			return nil, err
		}
		avg, err := s.reviewRepo.AverageStars(ctx, id)
		if err != nil {
			return nil, err
		}
		agg = &cache.SpotAggregates{NumReviews: count, AvgStars: avg}
		_ = s.aggCache.Set(ctx, id, *agg)
	}

	resp.NumReviews = agg.NumReviews
	if agg.NumReviews > 0 {
		rounded := math.Round(agg.AvgStars*10) / 10
		resp.AvgStarRating = &rounded
	}
	return resp, nil
}

// Create persists a new spot owned by the authenticated user.
func (s *spotService) Create(ctx context.Context, ownerID string, in dto.CreateSpotDTO) (*models.Spot, error) {
	spot := in.ToModel()
	spot.OwnerID = ownerID
	if err := s.spotRepo.Create(ctx, &spot); err != nil {
		return nil, err
	}
	return &spot, nil
}

// Update applies the nine edit fields to a spot the user owns.
func (s *spotService) Update(ctx context.Context, id int64, userID string, in dto.UpdateSpotDTO) (*models.Spot, error) {
	spot, err := s.spotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSpotNotFound
		}
		return nil, err
	}

	// Only the owning user may mutate a spot.
	if spot.OwnerID != userID {
		return nil, ErrNotSpotOwner
	}

	spot.Address = in.Address
	spot.City = in.City
	spot.State = in.State
	spot.Country = in.Country
	spot.Lat = in.Lat
	spot.Lng = in.Lng
	spot.Name = in.Name
	spot.Description = in.Description
	spot.Price = in.Price

	if err := s.spotRepo.Update(ctx, spot); err != nil {
		return nil, err
	}
	return spot, nil
}

// Delete removes a spot the user owns.
func (s *spotService) Delete(ctx context.Context, id int64, userID string) error {
	spot, err := s.spotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSpotNotFound
		}
		return err
	}

	if spot.OwnerID != userID {
		return ErrNotSpotOwner
	}

	if err := s.spotRepo.Delete(ctx, id); err != nil {
		return err
	}

	_ = s.aggCache.Invalidate(ctx, id)
	return nil
}

// AddImage attaches an image to a spot the user owns.
func (s *spotService) AddImage(ctx context.Context, spotID int64, userID string, url string) (*models.Image, error) {
	spot, err := s.spotRepo.GetByID(ctx, spotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSpotNotFound
		}
		return nil, err
	}

	if spot.OwnerID != userID {
		return nil, ErrNotSpotOwner
	}

	image := &models.Image{
		ImageableID:   spotID,
		ImageableType: "Spot",
		URL:           url,
	}
	if err := s.imageRepo.Create(image); err != nil {
		return nil, err
	}
	return image, nil
}
