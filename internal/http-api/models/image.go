package models

import "time"

// Image is attached to either a Spot or a Review, resolved by the
// (ImageableID, ImageableType) pair rather than a single foreign key.
type Image struct {
	ID            int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	ImageableID   int64     `json:"imageableId" gorm:"not null;index:idx_images_imageable"`
	ImageableType string    `json:"imageableType" gorm:"size:32;not null;index:idx_images_imageable"`
	URL           string    `json:"url" gorm:"type:text;not null"`
	CreatedAt     time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (Image) TableName() string {
	return "images"
}
