package models

import "time"

type Spot struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	OwnerID      string    `json:"ownerId" gorm:"type:uuid;not null;index"`
	Address      string    `json:"address" gorm:"not null"`
	City         string    `json:"city" gorm:"not null"`
	State        string    `json:"state" gorm:"not null"`
	Country      string    `json:"country" gorm:"not null"`
	Lat          float64   `json:"lat" gorm:"not null"`
	Lng          float64   `json:"lng" gorm:"not null"`
	Name         string    `json:"name" gorm:"size:49;not null"`
	Description  string    `json:"description" gorm:"type:text;not null"`
	Price        float64   `json:"price" gorm:"not null"`
	PreviewImage string    `json:"previewImage" gorm:"type:text"`
	CreatedAt    time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"autoUpdateTime"`

	// Associations
	Owner  User    `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE;"`
	Images []Image `json:"-" gorm:"polymorphic:Imageable;polymorphicValue:Spot"`
}

func (Spot) TableName() string {
	return "spots"
}
