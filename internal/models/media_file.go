package models

import "gorm.io/gorm"

type MediaFile struct {
	gorm.Model

	UserID       uint   `gorm:"not null;index"`
	Filename     string `gorm:"uniqueIndex;not null"` // on-disk name, "media_<epoch-ms><ext>"
	OriginalName string `gorm:"not null"`
	MimeType     string `gorm:"not null"`
	Size         int64  `gorm:"not null"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
