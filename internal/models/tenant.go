package models

import "gorm.io/gorm"

type Tenant struct {
	gorm.Model

	Name string `gorm:"not null"`
	Slug string `gorm:"uniqueIndex;not null"`

	// Relationships
	Users  []User  `gorm:"foreignKey:TenantID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Alerts []Alert `gorm:"foreignKey:TenantID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
