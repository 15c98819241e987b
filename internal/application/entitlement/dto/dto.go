package dto

import (
	"time"

	"candlepin/internal/domain/entitlement"
	"candlepin/internal/domain/pool"
)

// EntitlementResponse is an entitlement with the pool facts a client needs.
type EntitlementResponse struct {
	ID                 uint      `json:"id"`
	ConsumerUUID       string    `json:"consumer_uuid"`
	PoolID             uint      `json:"pool_id"`
	ProductID          string    `json:"product_id,omitempty"`
	ProvidedProductIDs []string  `json:"provided_product_ids,omitempty"`
	Quantity           int64     `json:"quantity"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
	CreatedAt          time.Time `json:"created_at"`
}

// ToEntitlementResponse joins an entitlement with its pool. p may be nil
// when the pool is no longer known.
func ToEntitlementResponse(e *entitlement.Entitlement, consumerUUID string, p *pool.Pool) *EntitlementResponse {
	resp := &EntitlementResponse{
		ID:           e.ID(),
		ConsumerUUID: consumerUUID,
		PoolID:       e.PoolID(),
		Quantity:     e.Quantity(),
		CreatedAt:    e.CreatedAt(),
	}
	if p != nil {
		resp.ProductID = p.ProductID()
		resp.ProvidedProductIDs = p.ProvidedProductIDs()
		resp.StartDate = p.StartDate()
		resp.EndDate = p.EndDate()
	}
	return resp
}

// ExpireResult reports one expiry sweep.
type ExpireResult struct {
	Revoked int      `json:"revoked"`
	Failed  []string `json:"failed,omitempty"`
}
