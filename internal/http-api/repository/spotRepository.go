package repository

import (
	"context"

	"stayspot/internal/http-api/models"

	"gorm.io/gorm"
)

type SpotRepository interface {
	GetAll(ctx context.Context) ([]models.Spot, error)
	GetByID(ctx context.Context, id int64) (*models.Spot, error)
	Create(ctx context.Context, spot *models.Spot) error
	Update(ctx context.Context, spot *models.Spot) error
	Delete(ctx context.Context, id int64) error
}

type spotRepository struct {
	db *gorm.DB
}

func NewSpotRepository(db *gorm.DB) SpotRepository {
	return &spotRepository{db: db}
}

// GetAll returns every spot with the plain attribute projection, no
// pagination or filtering.
func (r *spotRepository) GetAll(ctx context.Context) ([]models.Spot, error) {
	// Initialized so an empty table serializes as [] rather than null.
	spots := make([]models.Spot, 0)
	if err := r.db.WithContext(ctx).Order("id").Find(&spots).Error; err != nil {
		return nil, err
	}
	return spots, nil
}

// GetByID loads one spot with its Images and Owner eagerly joined.
func (r *spotRepository) GetByID(ctx context.Context, id int64) (*models.Spot, error) {
	var spot models.Spot
	err := r.db.WithContext(ctx).
		Preload("Images").
		Preload("Owner").
		First(&spot, id).Error
	if err != nil {
		return nil, err
	}
	return &spot, nil
}

func (r *spotRepository) Create(ctx context.Context, spot *models.Spot) error {
	return r.db.WithContext(ctx).Create(spot).Error
}

func (r *spotRepository) Update(ctx context.Context, spot *models.Spot) error {
	return r.db.WithContext(ctx).Save(spot).Error
}

func (r *spotRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Spot{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
