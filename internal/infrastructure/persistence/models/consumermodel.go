package models

import (
	"time"

	"gorm.io/datatypes"

	"candlepin/internal/shared/constants"
)

// InstalledProductJSON is the stored shape of an installed product.
type InstalledProductJSON struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	Version     string `json:"version,omitempty"`
	Arch        string `json:"arch,omitempty"`
}

// ConsumerModel is the persistence model for consumers. Guests live in
// their own table so they can be looked up across hosts.
type ConsumerModel struct {
	ID                   uint                                      `gorm:"primarykey"`
	UUID                 string                                    `gorm:"not null;size:64;uniqueIndex:idx_consumer_uuid"`
	Name                 string                                    `gorm:"not null;size:255"`
	OwnerID              uint                                      `gorm:"not null;index"`
	Type                 string                                    `gorm:"not null;size:32"`
	InstalledProducts    datatypes.JSONSlice[InstalledProductJSON] `gorm:"column:installed_products"`
	Facts                datatypes.JSONType[map[string]string]
	Role                 string                      `gorm:"size:255"`
	Usage                string                      `gorm:"size:255"`
	AddOns               datatypes.JSONSlice[string] `gorm:"column:add_ons"`
	ServiceLevel         string                      `gorm:"size:255"`
	CloudProfileModified *time.Time
	LastCheckin          *time.Time
	EntitlementStatus    string               `gorm:"size:32"`
	ComplianceHash       string               `gorm:"size:64"`
	Guests               []ConsumerGuestModel `gorm:"foreignKey:ConsumerID;constraint:OnDelete:CASCADE"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (ConsumerModel) TableName() string {
	return constants.TableConsumers
}

// ConsumerGuestModel is one guest reported by a host consumer. Position
// keeps the reported order.
type ConsumerGuestModel struct {
	ID         uint   `gorm:"primarykey"`
	ConsumerID uint   `gorm:"not null;uniqueIndex:idx_consumer_guest,priority:1"`
	GuestID    string `gorm:"not null;size:255;uniqueIndex:idx_consumer_guest,priority:2;index:idx_guest_id"`
	Position   int    `gorm:"not null"`
	Attributes datatypes.JSONType[map[string]string]
	CreatedAt  time.Time
}

func (ConsumerGuestModel) TableName() string {
	return constants.TableConsumerGuests
}
