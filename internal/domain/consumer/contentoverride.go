package consumer

import (
	"fmt"
	"strings"
	"time"

	"candlepin/internal/shared/errors"
)

const maxOverrideFieldLength = 255

// blockedOverrideNames cannot be overridden because they identify the
// content itself.
var blockedOverrideNames = map[string]bool{
	"name":  true,
	"label": true,
}

// ContentOverride replaces one repository attribute for a consumer.
type ContentOverride struct {
	ContentLabel string
	Name         string
	Value        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewContentOverride validates and normalizes an override. Names are
// case-insensitive and stored lower case.
func NewContentOverride(label, name, value string) (ContentOverride, error) {
	label = strings.TrimSpace(label)
	name = strings.ToLower(strings.TrimSpace(name))

	if err := checkOverrideField("content label", label); err != nil {
		return ContentOverride{}, err
	}
	if err := checkOverrideField("name", name); err != nil {
		return ContentOverride{}, err
	}
	if err := checkOverrideField("value", value); err != nil {
		return ContentOverride{}, err
	}
	if blockedOverrideNames[name] {
		return ContentOverride{}, errors.NewValidationError("content override name is not allowed", name)
	}

	now := time.Now().UTC()
	return ContentOverride{
		ContentLabel: label,
		Name:         name,
		Value:        value,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func checkOverrideField(field, value string) error {
	if value == "" {
		return errors.NewValidationError(fmt.Sprintf("content override %s is required", field))
	}
	if len(value) > maxOverrideFieldLength {
		return errors.NewValidationError(
			fmt.Sprintf("content override %s must be at most %d characters", field, maxOverrideFieldLength),
		)
	}
	return nil
}
