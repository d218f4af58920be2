package repository

import (
	"stayspot/internal/http-api/models"

	"gorm.io/gorm"
)

type ImageRepository interface {
	Create(image *models.Image) error
}

type imageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(image *models.Image) error {
	return r.db.Create(image).Error
}
