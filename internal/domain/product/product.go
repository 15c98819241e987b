package product

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"candlepin/internal/shared/errors"
)

// Well known product attributes.
const (
	AttributeRoles  = "roles"
	AttributeUsage  = "usage"
	AttributeAddons = "addons"
)

// Product is a catalogue entry that pools grant access to.
type Product struct {
	id         string
	ownerID    uint
	name       string
	attributes map[string]string
	createdAt  time.Time
}

func NewProduct(id string, ownerID uint, name string, attributes map[string]string) (*Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.NewValidationError("product id is required")
	}
	if ownerID == 0 {
		return nil, errors.NewValidationError("product owner is required")
	}
	if name == "" {
		name = id
	}
	return &Product{
		id:         id,
		ownerID:    ownerID,
		name:       name,
		attributes: copyAttributes(attributes),
		createdAt:  time.Now().UTC(),
	}, nil
}

func ReconstructProduct(id string, ownerID uint, name string, attributes map[string]string, createdAt time.Time) (*Product, error) {
	if id == "" {
		return nil, fmt.Errorf("product ID cannot be empty")
	}
	return &Product{
		id:         id,
		ownerID:    ownerID,
		name:       name,
		attributes: copyAttributes(attributes),
		createdAt:  createdAt,
	}, nil
}

func (p *Product) ID() string                    { return p.id }
func (p *Product) OwnerID() uint                 { return p.ownerID }
func (p *Product) Name() string                  { return p.name }
func (p *Product) CreatedAt() time.Time          { return p.createdAt }
func (p *Product) Attributes() map[string]string { return copyAttributes(p.attributes) }

func (p *Product) Attribute(name string) string {
	return p.attributes[name]
}

// AttributeValues splits a comma separated attribute, trimming blanks.
func (p *Product) AttributeValues(name string) []string {
	raw := p.attributes[name]
	if raw == "" {
		return nil
	}
	var values []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

// Roles returns the system purpose roles this product satisfies.
func (p *Product) Roles() []string {
	return p.AttributeValues(AttributeRoles)
}

// AttributeKeys returns the attribute names in sorted order.
func (p *Product) AttributeKeys() []string {
	keys := make([]string, 0, len(p.attributes))
	for k := range p.attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func copyAttributes(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
