package service

import (
	"context"
	"errors"

	"stayspot/internal/http-api/cache"
	"stayspot/internal/http-api/dto"
	"stayspot/internal/http-api/models"
	"stayspot/internal/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrDuplicateReview = errors.New("user already has a review for this spot")
	ErrNotReviewAuthor = errors.New("review does not belong to the current user")
)

type ReviewService interface {
	GetSpotReviews(ctx context.Context, spotID int64) ([]dto.ReviewResponse, error)
	CreateReview(ctx context.Context, userID string, spotID int64, in dto.CreateReviewDTO) (*dto.ReviewResponse, error)
	AddImage(ctx context.Context, reviewID int64, userID string, url string) (*models.Image, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	spotRepo   repository.SpotRepository
	imageRepo  repository.ImageRepository
	aggCache   *cache.AggregateCache
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	spotRepo repository.SpotRepository,
	imageRepo repository.ImageRepository,
	aggCache *cache.AggregateCache,
) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		spotRepo:   spotRepo,
		imageRepo:  imageRepo,
		aggCache:   aggCache,
	}
}

// GetSpotReviews retrieves all reviews for a spot with their author and
// images joined.
func (s *reviewService) GetSpotReviews(ctx context.Context, spotID int64) ([]dto.ReviewResponse, error) {
	// Check if the parent spot exists
	if _, err := s.spotRepo.GetByID(ctx, spotID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSpotNotFound
		}
		return nil, err
	}

	reviews, err := s.reviewRepo.GetBySpot(ctx, spotID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, *dto.FromModelToReviewResponse(&reviews[i]))
	}
	return responses, nil
}

// CreateReview persists a new review tied to the authenticated user and
// the spot. At most one review per (user, spot) pair: the pre-check keeps
// the common case cheap and the unique index closes the race, with a
// duplicate-key insert reported the same way as a pre-check hit.
func (s *reviewService) CreateReview(ctx context.Context, userID string, spotID int64, in dto.CreateReviewDTO) (*dto.ReviewResponse, error) {
	// Check if the parent spot exists
	if _, err := s.spotRepo.GetByID(ctx, spotID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSpotNotFound
		}
		return nil, err
	}

	// Check if the user already reviewed this spot
	if _, err := s.reviewRepo.GetByUserAndSpot(ctx, userID, spotID); err == nil {
		return nil, ErrDuplicateReview
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	review := &models.Review{
		UserID: userID,
		SpotID: spotID,
		Review: in.Review,
		Stars:  in.Stars,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateReview
		}
		return nil, err
	}

	_ = s.aggCache.Invalidate(ctx, spotID)

	// Reload with user data
	review, err := s.reviewRepo.GetByID(ctx, review.ID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(review), nil
}

// AddImage attaches an image to a review the user wrote.
func (s *reviewService) AddImage(ctx context.Context, reviewID int64, userID string, url string) (*models.Image, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	if review.UserID != userID {
		return nil, ErrNotReviewAuthor
	}

	image := &models.Image{
		ImageableID:   reviewID,
		ImageableType: "Review",
		URL:           url,
	}
	if err := s.imageRepo.Create(image); err != nil {
		return nil, err
	}
	return image, nil
}
