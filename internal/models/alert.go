package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Alert struct {
	gorm.Model

	TenantID uint           `gorm:"not null;index"`
	Type     string         `gorm:"not null"` // "system", "campaign", "billing", etc.
	Severity string         `gorm:"not null"` // "info", "warning", "critical"
	Title    string         `gorm:"not null"`
	Message  string
	Metadata datatypes.JSON `gorm:"type:jsonb"`

	// Relationships
	Tenant        Tenant         `gorm:"foreignKey:TenantID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Notifications []Notification `gorm:"foreignKey:AlertID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
