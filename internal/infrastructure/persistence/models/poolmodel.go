package models

import (
	"time"

	"gorm.io/datatypes"

	"candlepin/internal/shared/constants"
)

// PoolModel is the persistence model for pools. Version guards the
// consumed counter against concurrent binds.
type PoolModel struct {
	ID                 uint                        `gorm:"primarykey"`
	OwnerID            uint                        `gorm:"not null;index:idx_pool_owner_dates,priority:1"`
	ProductID          string                      `gorm:"not null;size:64;index"`
	ProvidedProductIDs datatypes.JSONSlice[string] `gorm:"column:provided_product_ids"`
	Quantity           int64                       `gorm:"not null"`
	Consumed           int64                       `gorm:"not null;default:0"`
	StartDate          time.Time                   `gorm:"not null;index:idx_pool_owner_dates,priority:2"`
	EndDate            time.Time                   `gorm:"not null;index:idx_pool_owner_dates,priority:3"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Version            int `gorm:"not null;default:1"`
}

func (PoolModel) TableName() string {
	return constants.TablePools
}
