package dto

import (
	"time"

	"candlepin/internal/domain/compliance"
)

type ReasonDTO struct {
	Key        string            `json:"key"`
	Message    string            `json:"message"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

type ComplianceStatusResponse struct {
	Status               string            `json:"status"`
	Compliant            bool              `json:"compliant"`
	Date                 time.Time         `json:"date"`
	CompliantUntil       *time.Time        `json:"compliant_until,omitempty"`
	ProductStatuses      map[string]string `json:"product_statuses"`
	CompliantProducts    map[string][]uint `json:"compliant_products"`
	NonCompliantProducts []string          `json:"non_compliant_products"`
	Reasons              []ReasonDTO       `json:"reasons"`
	Hash                 string            `json:"hash"`
}

type PurposeStatusResponse struct {
	Status           string            `json:"status"`
	Date             time.Time         `json:"date"`
	NonCompliantRole *string           `json:"non_compliant_role"`
	CompliantRole    map[string][]uint `json:"compliant_role"`
	Reasons          []string          `json:"reasons"`
}

func ToComplianceStatusResponse(s *compliance.Status) *ComplianceStatusResponse {
	reasons := make([]ReasonDTO, 0, len(s.Reasons))
	for _, r := range s.Reasons {
		reasons = append(reasons, ReasonDTO(r))
	}
	nonCompliant := s.NonCompliantProducts
	if nonCompliant == nil {
		nonCompliant = []string{}
	}

	return &ComplianceStatusResponse{
		Status:               s.Status,
		Compliant:            s.IsCompliant(),
		Date:                 s.Date,
		CompliantUntil:       s.CompliantUntil,
		ProductStatuses:      s.ProductStatuses,
		CompliantProducts:    s.CompliantProducts,
		NonCompliantProducts: nonCompliant,
		Reasons:              reasons,
		Hash:                 s.Hash(),
	}
}

func ToPurposeStatusResponse(s *compliance.PurposeStatus) *PurposeStatusResponse {
	reasons := s.Reasons
	if reasons == nil {
		reasons = []string{}
	}
	return &PurposeStatusResponse{
		Status:           s.Status,
		Date:             s.Date,
		NonCompliantRole: s.NonCompliantRole,
		CompliantRole:    s.CompliantRole,
		Reasons:          reasons,
	}
}
