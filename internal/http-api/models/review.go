package models

import "time"

type Review struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_spot"`
	SpotID    int64     `json:"spotId" gorm:"not null;uniqueIndex:idx_reviews_user_spot"`
	Review    string    `json:"review" gorm:"type:text;not null"`
	Stars     int       `json:"stars" gorm:"not null;check:stars >= 1 AND stars <= 5"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`

	// Associations
	User   User    `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Spot   Spot    `json:"-" gorm:"foreignKey:SpotID;constraint:OnDelete:CASCADE;"`
	Images []Image `json:"-" gorm:"polymorphic:Imageable;polymorphicValue:Review"`
}

func (Review) TableName() string {
	return "reviews"
}
