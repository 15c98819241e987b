package models

import (
	"time"

	"candlepin/internal/shared/constants"
)

// EntitlementModel is the persistence model for entitlements.
type EntitlementModel struct {
	ID         uint  `gorm:"primarykey"`
	ConsumerID uint  `gorm:"not null;index"`
	PoolID     uint  `gorm:"not null;index"`
	Quantity   int64 `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (EntitlementModel) TableName() string {
	return constants.TableEntitlements
}
