package dto

import (
	"time"

	"candlepin/internal/domain/pool"
	"candlepin/internal/domain/product"
)

type CreateProductRequest struct {
	ID         string            `json:"id" binding:"required,max=64"`
	Name       string            `json:"name" binding:"max=255"`
	Attributes map[string]string `json:"attributes"`
}

type ProductResponse struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

func ToProductResponse(p *product.Product) *ProductResponse {
	return &ProductResponse{
		ID:         p.ID(),
		Name:       p.Name(),
		Attributes: p.Attributes(),
	}
}

type CreatePoolRequest struct {
	ProductID          string    `json:"product_id" binding:"required"`
	ProvidedProductIDs []string  `json:"provided_product_ids"`
	Quantity           int64     `json:"quantity"`
	StartDate          time.Time `json:"start_date" binding:"required"`
	EndDate            time.Time `json:"end_date" binding:"required"`
}

type PoolResponse struct {
	ID                 uint      `json:"id"`
	ProductID          string    `json:"product_id"`
	ProvidedProductIDs []string  `json:"provided_product_ids,omitempty"`
	Quantity           int64     `json:"quantity"`
	Consumed           int64     `json:"consumed"`
	Unlimited          bool      `json:"unlimited"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
}

func ToPoolResponse(p *pool.Pool) *PoolResponse {
	return &PoolResponse{
		ID:                 p.ID(),
		ProductID:          p.ProductID(),
		ProvidedProductIDs: p.ProvidedProductIDs(),
		Quantity:           p.Quantity(),
		Consumed:           p.Consumed(),
		Unlimited:          p.IsUnlimited(),
		StartDate:          p.StartDate(),
		EndDate:            p.EndDate(),
	}
}

func ToPoolResponses(pools []*pool.Pool) []*PoolResponse {
	out := make([]*PoolResponse, 0, len(pools))
	for _, p := range pools {
		out = append(out, ToPoolResponse(p))
	}
	return out
}
