package models

import (
	"time"

	"gorm.io/gorm"
)

// Delivery channels for a notification.
const (
	MethodEmail = "email"
	MethodPush  = "push"
	MethodInApp = "in-app"
)

// Notification is a user's copy of an alert. ReadAt is non-nil exactly
// when Read is true.
type Notification struct {
	gorm.Model

	UserID  uint   `gorm:"not null;index"`
	AlertID uint   `gorm:"not null;index"`
	Method  string `gorm:"not null"`
	Read    bool   `gorm:"not null;default:false;index"`
	ReadAt  *time.Time

	// Relationships
	User  User  `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Alert Alert `gorm:"foreignKey:AlertID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
