package models

import "gorm.io/gorm"

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

type User struct {
	gorm.Model

	TenantID     uint   `gorm:"not null;index"`
	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null;default:member"`

	// Relationships
	Tenant        Tenant         `gorm:"foreignKey:TenantID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Notifications []Notification `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	MediaFiles    []MediaFile    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
