package models

import (
	"time"

	"candlepin/internal/shared/constants"
)

// ContentOverrideModel is the persistence model for content overrides.
type ContentOverrideModel struct {
	ID           uint   `gorm:"primarykey"`
	ConsumerID   uint   `gorm:"not null;uniqueIndex:idx_consumer_override,priority:1"`
	ContentLabel string `gorm:"not null;size:255;uniqueIndex:idx_consumer_override,priority:2"`
	Name         string `gorm:"not null;size:255;uniqueIndex:idx_consumer_override,priority:3"`
	Value        string `gorm:"not null;size:255"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (ContentOverrideModel) TableName() string {
	return constants.TableContentOverrides
}
