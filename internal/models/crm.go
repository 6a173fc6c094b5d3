package models

import "gorm.io/gorm"

// CrmTagMapping mirrors a label defined in the CRM vendor account.
type CrmTagMapping struct {
	gorm.Model

	TenantID    uint   `gorm:"not null;uniqueIndex:idx_tenant_vendor_tag"`
	VendorTagID int64  `gorm:"not null;uniqueIndex:idx_tenant_vendor_tag"`
	Name        string `gorm:"not null"`

	// Relationships
	Tenant Tenant `gorm:"foreignKey:TenantID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

// CrmContactLink records which vendor contact a local contact email maps to.
type CrmContactLink struct {
	gorm.Model

	TenantID        uint   `gorm:"not null;uniqueIndex:idx_tenant_contact_email"`
	Email           string `gorm:"not null;uniqueIndex:idx_tenant_contact_email"`
	VendorContactID int64  `gorm:"not null"`

	// Relationships
	Tenant Tenant `gorm:"foreignKey:TenantID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
