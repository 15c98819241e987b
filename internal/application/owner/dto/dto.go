package dto

import (
	"time"

	"candlepin/internal/domain/owner"
)

type CreateOwnerRequest struct {
	Key                   string `json:"key" binding:"required,max=255"`
	DisplayName           string `json:"display_name" binding:"max=255"`
	ContentAccessMode     string `json:"content_access_mode" binding:"omitempty,oneof=entitlement org_environment"`
	ContentAccessModeList string `json:"content_access_mode_list"`
	Anonymous             bool   `json:"anonymous"`
}

type UpdateContentAccessRequest struct {
	ContentAccessMode     string `json:"content_access_mode"`
	ContentAccessModeList string `json:"content_access_mode_list"`
}

type ClaimOwnerRequest struct {
	ClaimantOwnerKey string `json:"claimant_owner_key" binding:"required"`
}

type OwnerResponse struct {
	ID                    uint      `json:"id"`
	Key                   string    `json:"key"`
	DisplayName           string    `json:"display_name"`
	ContentAccessMode     string    `json:"content_access_mode"`
	ContentAccessModeList string    `json:"content_access_mode_list"`
	Anonymous             bool      `json:"anonymous"`
	Claimed               bool      `json:"claimed"`
	ClaimantOwner         string    `json:"claimant_owner,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
}

func ToOwnerResponse(o *owner.Owner) *OwnerResponse {
	return &OwnerResponse{
		ID:                    o.ID(),
		Key:                   o.Key(),
		DisplayName:           o.DisplayName(),
		ContentAccessMode:     o.ContentAccessMode().String(),
		ContentAccessModeList: owner.JoinContentAccessModes(o.ContentAccessModeList()),
		Anonymous:             o.Anonymous(),
		Claimed:               o.Claimed(),
		ClaimantOwner:         o.ClaimantOwner(),
		CreatedAt:             o.CreatedAt(),
	}
}

// ClaimOwnerResponse reports the claimed owner and how many consumers moved
// to the claimant.
type ClaimOwnerResponse struct {
	Owner          *OwnerResponse `json:"owner"`
	MovedConsumers int64          `json:"moved_consumers"`
}
