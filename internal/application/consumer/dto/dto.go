package dto

import (
	"time"

	"candlepin/internal/domain/consumer"
)

type InstalledProductDTO struct {
	ProductID   string `json:"product_id" binding:"required"`
	ProductName string `json:"product_name,omitempty"`
	Version     string `json:"version,omitempty"`
	Arch        string `json:"arch,omitempty"`
}

type GuestIDDTO struct {
	GuestID    string            `json:"guest_id" binding:"required"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

type SystemPurposeDTO struct {
	Role         string   `json:"role"`
	Usage        string   `json:"usage"`
	AddOns       []string `json:"addons"`
	ServiceLevel string   `json:"service_level"`
}

type RegisterConsumerRequest struct {
	UUID              string                `json:"uuid" binding:"omitempty,max=64"`
	Name              string                `json:"name" binding:"max=255"`
	Type              string                `json:"type" binding:"omitempty,oneof=system person hypervisor distributor"`
	InstalledProducts []InstalledProductDTO `json:"installed_products"`
	Facts             map[string]string     `json:"facts"`
	SystemPurpose     *SystemPurposeDTO     `json:"system_purpose"`
	GuestIDs          []GuestIDDTO          `json:"guest_ids"`
}

// UpdateConsumerRequest leaves absent sections untouched.
type UpdateConsumerRequest struct {
	Name              *string                `json:"name" binding:"omitempty,max=255"`
	InstalledProducts *[]InstalledProductDTO `json:"installed_products"`
	Facts             map[string]string      `json:"facts"`
	SystemPurpose     *SystemPurposeDTO      `json:"system_purpose"`
	GuestIDs          *[]GuestIDDTO          `json:"guest_ids"`
}

type PutGuestRequest struct {
	Attributes map[string]string `json:"attributes"`
}

type ConsumerResponse struct {
	ID                   uint                  `json:"id"`
	UUID                 string                `json:"uuid"`
	Name                 string                `json:"name"`
	Type                 string                `json:"type"`
	OwnerID              uint                  `json:"owner_id"`
	InstalledProducts    []InstalledProductDTO `json:"installed_products"`
	Facts                map[string]string     `json:"facts"`
	SystemPurpose        SystemPurposeDTO      `json:"system_purpose"`
	GuestIDs             []GuestIDDTO          `json:"guest_ids"`
	EntitlementStatus    string                `json:"entitlement_status,omitempty"`
	CloudProfileModified *time.Time            `json:"cloud_profile_modified,omitempty"`
	LastCheckin          *time.Time            `json:"last_checkin,omitempty"`
	CreatedAt            time.Time             `json:"created_at"`
	UpdatedAt            time.Time             `json:"updated_at"`
}

func ToConsumerResponse(c *consumer.Consumer) *ConsumerResponse {
	installed := make([]InstalledProductDTO, 0, len(c.InstalledProducts()))
	for _, p := range c.InstalledProducts() {
		installed = append(installed, InstalledProductDTO(p))
	}
	sp := c.SystemPurpose()

	return &ConsumerResponse{
		ID:                c.ID(),
		UUID:              c.UUID(),
		Name:              c.Name(),
		Type:              c.Type().String(),
		OwnerID:           c.OwnerID(),
		InstalledProducts: installed,
		Facts:             c.Facts(),
		SystemPurpose: SystemPurposeDTO{
			Role:         sp.Role,
			Usage:        sp.Usage,
			AddOns:       sp.AddOns,
			ServiceLevel: sp.ServiceLevel,
		},
		GuestIDs:             ToGuestIDDTOs(c.GuestIDs()),
		EntitlementStatus:    c.EntitlementStatus(),
		CloudProfileModified: c.CloudProfileModified(),
		LastCheckin:          c.LastCheckin(),
		CreatedAt:            c.CreatedAt(),
		UpdatedAt:            c.UpdatedAt(),
	}
}

func ToGuestIDDTOs(guests []consumer.GuestID) []GuestIDDTO {
	out := make([]GuestIDDTO, 0, len(guests))
	for _, g := range guests {
		out = append(out, GuestIDDTO{GuestID: g.ID, Attributes: g.Attributes})
	}
	return out
}

func FromGuestIDDTOs(in []GuestIDDTO) []consumer.GuestID {
	out := make([]consumer.GuestID, 0, len(in))
	for _, g := range in {
		out = append(out, consumer.NewGuestID(g.GuestID, g.Attributes))
	}
	return out
}

func FromInstalledProductDTOs(in []InstalledProductDTO) []consumer.InstalledProduct {
	out := make([]consumer.InstalledProduct, 0, len(in))
	for _, p := range in {
		out = append(out, consumer.InstalledProduct(p))
	}
	return out
}

func (sp SystemPurposeDTO) ToDomain() consumer.SystemPurpose {
	return consumer.SystemPurpose{
		Role:         sp.Role,
		Usage:        sp.Usage,
		AddOns:       sp.AddOns,
		ServiceLevel: sp.ServiceLevel,
	}
}

type ContentOverrideDTO struct {
	ContentLabel string `json:"content_label"`
	Name         string `json:"name"`
	Value        string `json:"value,omitempty"`
}

func ToContentOverrideDTOs(overrides []consumer.ContentOverride) []ContentOverrideDTO {
	out := make([]ContentOverrideDTO, 0, len(overrides))
	for _, o := range overrides {
		out = append(out, ContentOverrideDTO{ContentLabel: o.ContentLabel, Name: o.Name, Value: o.Value})
	}
	return out
}

// ContentOverrideResult is the outcome of a bulk override change. Items
// that failed validation are listed in Failed and do not stop the others.
type ContentOverrideResult struct {
	Overrides []ContentOverrideDTO `json:"overrides"`
	Failed    []string             `json:"failed,omitempty"`
}
