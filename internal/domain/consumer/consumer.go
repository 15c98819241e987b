package consumer

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"candlepin/internal/shared/errors"
)

const maxNameLength = 255

// CloudProfileFacts are the facts whose change alters the cloud profile.
var CloudProfileFacts = []string{
	"cpu.core(s)_per_socket",
	"cpu.cpu_socket(s)",
	"dmi.bios.vendor",
	"dmi.bios.version",
	"dmi.chassis.asset_tag",
	"dmi.system.manufacturer",
	"dmi.system.uuid",
	"memory.memtotal",
	"ocm.units",
	"uname.machine",
	"virt.is_guest",
}

// InstalledProduct is a product a consumer reports as installed.
type InstalledProduct struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	Version     string `json:"version,omitempty"`
	Arch        string `json:"arch,omitempty"`
}

// SystemPurpose is the declared intended use of a consumer.
type SystemPurpose struct {
	Role         string
	Usage        string
	AddOns       []string
	ServiceLevel string
}

func (sp SystemPurpose) normalized() SystemPurpose {
	addOns := make([]string, 0, len(sp.AddOns))
	for _, a := range sp.AddOns {
		if a = strings.TrimSpace(a); a != "" {
			addOns = append(addOns, a)
		}
	}
	sort.Strings(addOns)
	return SystemPurpose{
		Role:         strings.TrimSpace(sp.Role),
		Usage:        strings.TrimSpace(sp.Usage),
		AddOns:       addOns,
		ServiceLevel: strings.TrimSpace(sp.ServiceLevel),
	}
}

func (sp SystemPurpose) equal(other SystemPurpose) bool {
	if sp.Role != other.Role || sp.Usage != other.Usage || sp.ServiceLevel != other.ServiceLevel {
		return false
	}
	if len(sp.AddOns) != len(other.AddOns) {
		return false
	}
	for i := range sp.AddOns {
		if sp.AddOns[i] != other.AddOns[i] {
			return false
		}
	}
	return true
}

// Consumer is a registered system, person, hypervisor or distributor.
// Every mutator reports whether anything changed and bumps the cloud
// profile timestamp only in that case.
type Consumer struct {
	id                   uint
	uuid                 string
	name                 string
	ownerID              uint
	consumerType         Type
	installedProducts    []InstalledProduct
	facts                map[string]string
	purpose              SystemPurpose
	guestIDs             []GuestID
	cloudProfileModified *time.Time
	lastCheckin          *time.Time
	entitlementStatus    string
	complianceHash       string
	createdAt            time.Time
	updatedAt            time.Time
}

func NewConsumer(uuid, name string, ownerID uint, consumerType Type) (*Consumer, error) {
	uuid = strings.TrimSpace(uuid)
	if uuid == "" {
		return nil, errors.NewValidationError("consumer uuid is required")
	}
	if ownerID == 0 {
		return nil, errors.NewValidationError("consumer owner is required")
	}
	if name == "" {
		name = uuid
	}
	if len(name) > maxNameLength {
		return nil, errors.NewValidationError(fmt.Sprintf("consumer name must be at most %d characters", maxNameLength))
	}
	if _, err := ParseType(string(consumerType)); err != nil {
		return nil, err
	}
	if consumerType == "" {
		consumerType = TypeSystem
	}

	now := time.Now().UTC()
	return &Consumer{
		uuid:         uuid,
		name:         name,
		ownerID:      ownerID,
		consumerType: consumerType,
		facts:        make(map[string]string),
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ConsumerReconstructParams carries persisted consumer state.
type ConsumerReconstructParams struct {
	ID                   uint
	UUID                 string
	Name                 string
	OwnerID              uint
	Type                 string
	InstalledProducts    []InstalledProduct
	Facts                map[string]string
	Role                 string
	Usage                string
	AddOns               []string
	ServiceLevel         string
	GuestIDs             []GuestID
	CloudProfileModified *time.Time
	LastCheckin          *time.Time
	EntitlementStatus    string
	ComplianceHash       string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func ReconstructConsumer(p ConsumerReconstructParams) (*Consumer, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("consumer ID cannot be zero")
	}
	consumerType, err := ParseType(p.Type)
	if err != nil {
		return nil, err
	}
	facts := p.Facts
	if facts == nil {
		facts = make(map[string]string)
	}

	return &Consumer{
		id:                p.ID,
		uuid:              p.UUID,
		name:              p.Name,
		ownerID:           p.OwnerID,
		consumerType:      consumerType,
		installedProducts: p.InstalledProducts,
		facts:             facts,
		purpose: SystemPurpose{
			Role:         p.Role,
			Usage:        p.Usage,
			AddOns:       p.AddOns,
			ServiceLevel: p.ServiceLevel,
		}.normalized(),
		guestIDs:             p.GuestIDs,
		cloudProfileModified: p.CloudProfileModified,
		lastCheckin:          p.LastCheckin,
		entitlementStatus:    p.EntitlementStatus,
		complianceHash:       p.ComplianceHash,
		createdAt:            p.CreatedAt,
		updatedAt:            p.UpdatedAt,
	}, nil
}

func (c *Consumer) ID() uint                     { return c.id }
func (c *Consumer) UUID() string                 { return c.uuid }
func (c *Consumer) Name() string                 { return c.name }
func (c *Consumer) OwnerID() uint                { return c.ownerID }
func (c *Consumer) Type() Type                   { return c.consumerType }
func (c *Consumer) SystemPurpose() SystemPurpose { return c.purpose }
func (c *Consumer) Role() string                 { return c.purpose.Role }
func (c *Consumer) EntitlementStatus() string    { return c.entitlementStatus }
func (c *Consumer) ComplianceHash() string       { return c.complianceHash }
func (c *Consumer) CreatedAt() time.Time         { return c.createdAt }
func (c *Consumer) UpdatedAt() time.Time         { return c.updatedAt }

func (c *Consumer) InstalledProducts() []InstalledProduct {
	return append([]InstalledProduct(nil), c.installedProducts...)
}

// InstalledProductIDs returns the distinct installed product ids in order.
func (c *Consumer) InstalledProductIDs() []string {
	ids := make([]string, 0, len(c.installedProducts))
	for _, p := range c.installedProducts {
		ids = append(ids, p.ProductID)
	}
	return ids
}

func (c *Consumer) Facts() map[string]string {
	out := make(map[string]string, len(c.facts))
	for k, v := range c.facts {
		out[k] = v
	}
	return out
}

func (c *Consumer) GuestIDs() []GuestID {
	return append([]GuestID(nil), c.guestIDs...)
}

func (c *Consumer) HasGuest(guestID string) bool {
	for _, g := range c.guestIDs {
		if g.ID == guestID {
			return true
		}
	}
	return false
}

func (c *Consumer) CloudProfileModified() *time.Time { return c.cloudProfileModified }
func (c *Consumer) LastCheckin() *time.Time          { return c.lastCheckin }

// SetID sets the ID after persistence
func (c *Consumer) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("consumer ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("consumer ID cannot be zero")
	}
	c.id = id
	return nil
}

func (c *Consumer) touch(now time.Time) {
	c.updatedAt = now.UTC()
}

func (c *Consumer) bumpCloudProfile(now time.Time) {
	t := now.UTC()
	c.cloudProfileModified = &t
	c.touch(now)
}

// SetName renames the consumer.
func (c *Consumer) SetName(name string, now time.Time) (bool, error) {
	if name == "" || name == c.name {
		return false, nil
	}
	if len(name) > maxNameLength {
		return false, errors.NewValidationError(fmt.Sprintf("consumer name must be at most %d characters", maxNameLength))
	}
	c.name = name
	c.touch(now)
	return true, nil
}

// ConvertTo changes the consumer type, e.g. when a registered system starts
// reporting guests as a hypervisor.
func (c *Consumer) ConvertTo(t Type, now time.Time) bool {
	if c.consumerType == t {
		return false
	}
	c.consumerType = t
	c.touch(now)
	return true
}

// MoveToOwner reassigns the consumer to another owner.
func (c *Consumer) MoveToOwner(ownerID uint, now time.Time) {
	if c.ownerID == ownerID {
		return
	}
	c.ownerID = ownerID
	c.touch(now)
}

// SetGuestIDs replaces the guest list. Any addition, removal, reordering or
// attribute change counts as a change. A guest reported without attributes
// keeps the attributes it already has on this host.
func (c *Consumer) SetGuestIDs(guests []GuestID, now time.Time) bool {
	guests = carryGuestAttributes(c.guestIDs, NormalizeGuestIDs(guests))
	if guestListsEqual(c.guestIDs, guests) {
		return false
	}
	c.guestIDs = guests
	c.bumpCloudProfile(now)
	return true
}

// UpsertGuest adds a guest or replaces its attributes in place.
func (c *Consumer) UpsertGuest(guest GuestID, now time.Time) (bool, error) {
	guest.ID = strings.TrimSpace(guest.ID)
	if guest.ID == "" {
		return false, errors.NewValidationError("guest id is required")
	}
	for i, g := range c.guestIDs {
		if g.ID != guest.ID {
			continue
		}
		if g.equal(guest) {
			return false, nil
		}
		c.guestIDs[i] = guest
		c.bumpCloudProfile(now)
		return true, nil
	}
	c.guestIDs = append(c.guestIDs, guest)
	c.bumpCloudProfile(now)
	return true, nil
}

// RemoveGuest drops a guest if present.
func (c *Consumer) RemoveGuest(guestID string, now time.Time) bool {
	for i, g := range c.guestIDs {
		if g.ID == guestID {
			c.guestIDs = append(c.guestIDs[:i:i], c.guestIDs[i+1:]...)
			c.bumpCloudProfile(now)
			return true
		}
	}
	return false
}

// SetInstalledProducts replaces the installed product set. Order is not
// significant; duplicates by product id are collapsed.
func (c *Consumer) SetInstalledProducts(products []InstalledProduct, now time.Time) bool {
	byID := make(map[string]InstalledProduct, len(products))
	for _, p := range products {
		if p.ProductID = strings.TrimSpace(p.ProductID); p.ProductID != "" {
			byID[p.ProductID] = p
		}
	}
	normalized := make([]InstalledProduct, 0, len(byID))
	for _, p := range byID {
		normalized = append(normalized, p)
	}
	sort.Slice(normalized, func(i, j int) bool { return normalized[i].ProductID < normalized[j].ProductID })

	if len(normalized) == len(c.installedProducts) {
		same := true
		for i := range normalized {
			if normalized[i] != c.installedProducts[i] {
				same = false
				break
			}
		}
		if same {
			return false
		}
	}

	c.installedProducts = normalized
	c.bumpCloudProfile(now)
	return true
}

// SetFacts replaces all facts. The cloud profile timestamp moves only when
// a cloud profile fact changes.
func (c *Consumer) SetFacts(facts map[string]string, now time.Time) bool {
	if facts == nil {
		facts = map[string]string{}
	}

	changed := len(facts) != len(c.facts)
	if !changed {
		for k, v := range facts {
			if ov, ok := c.facts[k]; !ok || ov != v {
				changed = true
				break
			}
		}
	}
	if !changed {
		return false
	}

	cloudChanged := false
	for _, key := range CloudProfileFacts {
		if c.facts[key] != facts[key] {
			cloudChanged = true
			break
		}
	}

	c.facts = make(map[string]string, len(facts))
	for k, v := range facts {
		c.facts[k] = v
	}
	if cloudChanged {
		c.bumpCloudProfile(now)
	} else {
		c.touch(now)
	}
	return true
}

// SetSystemPurpose replaces role, usage, add-ons and service level.
func (c *Consumer) SetSystemPurpose(sp SystemPurpose, now time.Time) bool {
	sp = sp.normalized()
	if c.purpose.equal(sp) {
		return false
	}
	c.purpose = sp
	c.bumpCloudProfile(now)
	return true
}

// CheckIn records contact from the consumer.
func (c *Consumer) CheckIn(now time.Time) {
	t := now.UTC()
	c.lastCheckin = &t
}

// RecordCompliance stores the latest compliance status and its hash. It
// reports whether the hash differs from the stored one.
func (c *Consumer) RecordCompliance(status, hash string) bool {
	if c.complianceHash == hash && c.entitlementStatus == status {
		return false
	}
	c.entitlementStatus = status
	c.complianceHash = hash
	return true
}
