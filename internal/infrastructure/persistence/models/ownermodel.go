package models

import (
	"time"

	"candlepin/internal/shared/constants"
)

// OwnerModel is the persistence model for owners.
type OwnerModel struct {
	ID                    uint   `gorm:"primarykey"`
	Key                   string `gorm:"not null;size:255;uniqueIndex:idx_owner_key"`
	DisplayName           string `gorm:"size:255"`
	ContentAccessMode     string `gorm:"not null;size:32"`
	ContentAccessModeList string `gorm:"not null;size:255"`
	Anonymous             bool   `gorm:"not null;default:false"`
	Claimed               bool   `gorm:"not null;default:false"`
	ClaimantOwner         string `gorm:"size:255"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (OwnerModel) TableName() string {
	return constants.TableOwners
}
