package models

import (
	"time"

	"gorm.io/datatypes"

	"candlepin/internal/shared/constants"
)

// ProductModel is the persistence model for products. Product ids are
// unique per owner.
type ProductModel struct {
	ID         uint   `gorm:"primarykey"`
	OwnerID    uint   `gorm:"not null;uniqueIndex:idx_owner_product,priority:1"`
	ProductID  string `gorm:"not null;size:64;uniqueIndex:idx_owner_product,priority:2"`
	Name       string `gorm:"size:255"`
	Attributes datatypes.JSONType[map[string]string]
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (ProductModel) TableName() string {
	return constants.TableProducts
}
