package repository

import (
	"context"

	"stayspot/internal/http-api/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id int64) (*models.Review, error)
	GetByUserAndSpot(ctx context.Context, userID string, spotID int64) (*models.Review, error)
	GetBySpot(ctx context.Context, spotID int64) ([]models.Review, error)
	CountBySpot(ctx context.Context, spotID int64) (int64, error)
	AverageStars(ctx context.Context, spotID int64) (float64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create a new review. The composite unique index on (user_id, spot_id)
// makes a concurrent duplicate insert surface as gorm.ErrDuplicatedKey.
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).Preload("User").Preload("Images").First(&review, id).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// GetByUserAndSpot retrieves a user's review for a specific spot
func (r *reviewRepository) GetByUserAndSpot(ctx context.Context, userID string, spotID int64) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).Where("user_id = ? AND spot_id = ?", userID, spotID).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// GetBySpot retrieves all reviews for a spot with their author and images
// eagerly joined.
func (r *reviewRepository) GetBySpot(ctx context.Context, spotID int64) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).Where("spot_id = ?", spotID).
		Preload("User").
		Preload("Images").
		Order("created_at").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// CountBySpot counts the reviews for a spot
func (r *reviewRepository) CountBySpot(ctx context.Context, spotID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).Where("spot_id = ?", spotID).Count(&count).Error
	return count, err
}

// AverageStars calculates the average star rating for a spot
func (r *reviewRepository) AverageStars(ctx context.Context, spotID int64) (float64, error) {
	var avg struct {
		Average float64
	}

	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("COALESCE(AVG(stars), 0) as average").
		Where("spot_id = ?", spotID).
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}

	return avg.Average, nil
}
