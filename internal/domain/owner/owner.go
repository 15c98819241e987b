package owner

import (
	"fmt"
	"strings"
	"time"

	"candlepin/internal/shared/errors"
)

const maxKeyLength = 255

// Owner is a tenant holding pools and consumers.
type Owner struct {
	id                    uint
	key                   string
	displayName           string
	contentAccessMode     ContentAccessMode
	contentAccessModeList []ContentAccessMode
	anonymous             bool
	claimed               bool
	claimantOwner         string
	createdAt             time.Time
	updatedAt             time.Time
}

// NewOwner creates an owner. An empty mode falls back to entitlement.
func NewOwner(key, displayName string, mode ContentAccessMode, anonymous bool) (*Owner, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, errors.NewValidationError("owner key is required")
	}
	if len(key) > maxKeyLength {
		return nil, errors.NewValidationError(fmt.Sprintf("owner key must be at most %d characters", maxKeyLength))
	}
	if mode == "" {
		mode = ContentAccessEntitlement
	}
	if _, err := ParseContentAccessMode(string(mode)); err != nil {
		return nil, err
	}
	if displayName == "" {
		displayName = key
	}

	now := time.Now().UTC()
	return &Owner{
		key:                   key,
		displayName:           displayName,
		contentAccessMode:     mode,
		contentAccessModeList: append([]ContentAccessMode(nil), DefaultContentAccessModeList...),
		anonymous:             anonymous,
		createdAt:             now,
		updatedAt:             now,
	}, nil
}

// OwnerReconstructParams carries persisted owner state.
type OwnerReconstructParams struct {
	ID                    uint
	Key                   string
	DisplayName           string
	ContentAccessMode     string
	ContentAccessModeList string
	Anonymous             bool
	Claimed               bool
	ClaimantOwner         string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func ReconstructOwner(p OwnerReconstructParams) (*Owner, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("owner ID cannot be zero")
	}
	mode, err := ParseContentAccessMode(p.ContentAccessMode)
	if err != nil {
		return nil, err
	}
	modes, err := ParseContentAccessModeList(p.ContentAccessModeList)
	if err != nil {
		return nil, err
	}

	return &Owner{
		id:                    p.ID,
		key:                   p.Key,
		displayName:           p.DisplayName,
		contentAccessMode:     mode,
		contentAccessModeList: modes,
		anonymous:             p.Anonymous,
		claimed:               p.Claimed,
		claimantOwner:         p.ClaimantOwner,
		createdAt:             p.CreatedAt,
		updatedAt:             p.UpdatedAt,
	}, nil
}

func (o *Owner) ID() uint                                   { return o.id }
func (o *Owner) Key() string                                { return o.key }
func (o *Owner) DisplayName() string                        { return o.displayName }
func (o *Owner) ContentAccessMode() ContentAccessMode       { return o.contentAccessMode }
func (o *Owner) ContentAccessModeList() []ContentAccessMode { return o.contentAccessModeList }
func (o *Owner) Anonymous() bool                            { return o.anonymous }
func (o *Owner) Claimed() bool                              { return o.claimed }
func (o *Owner) ClaimantOwner() string                      { return o.claimantOwner }
func (o *Owner) CreatedAt() time.Time                       { return o.createdAt }
func (o *Owner) UpdatedAt() time.Time                       { return o.updatedAt }

// SetID sets the ID after persistence
func (o *Owner) SetID(id uint) error {
	if o.id != 0 {
		return fmt.Errorf("owner ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("owner ID cannot be zero")
	}
	o.id = id
	return nil
}

func (o *Owner) SetDisplayName(name string) {
	if name == "" || name == o.displayName {
		return
	}
	o.displayName = name
	o.updatedAt = time.Now().UTC()
}

// SupportsMode reports whether mode is in the owner's mode list.
func (o *Owner) SupportsMode(mode ContentAccessMode) bool {
	for _, m := range o.contentAccessModeList {
		if m == mode {
			return true
		}
	}
	return false
}

// UpdateContentAccess applies a new mode list and mode. An empty list keeps
// the current list; an empty mode keeps the current mode when it is still
// allowed and otherwise falls back to the first listed mode. It reports
// whether the effective mode changed.
func (o *Owner) UpdateContentAccess(modeList []ContentAccessMode, mode ContentAccessMode) (bool, error) {
	if len(modeList) == 0 {
		modeList = o.contentAccessModeList
	}

	allowed := func(m ContentAccessMode) bool {
		for _, candidate := range modeList {
			if candidate == m {
				return true
			}
		}
		return false
	}

	if mode == "" {
		mode = o.contentAccessMode
		if !allowed(mode) {
			mode = modeList[0]
		}
	}
	if !allowed(mode) {
		return false, errors.NewValidationError(
			"content access mode is not present in the owner's content access mode list",
			fmt.Sprintf("mode=%s list=%s", mode, JoinContentAccessModes(modeList)),
		)
	}

	changed := mode != o.contentAccessMode
	o.contentAccessModeList = append([]ContentAccessMode(nil), modeList...)
	o.contentAccessMode = mode
	o.updatedAt = time.Now().UTC()
	return changed, nil
}

// ClaimBy marks an anonymous owner as claimed by claimant. Claiming again
// by the same claimant is a no-op; any other claimant conflicts.
func (o *Owner) ClaimBy(claimant *Owner) error {
	if claimant == nil {
		return errors.NewValidationError("claimant owner is required")
	}
	if !o.anonymous {
		return errors.NewValidationError("only anonymous owners can be claimed", o.key)
	}
	if claimant.anonymous {
		return errors.NewValidationError("an anonymous owner cannot claim another owner", claimant.key)
	}
	if claimant.key == o.key {
		return errors.NewValidationError("an owner cannot claim itself", o.key)
	}

	if o.claimed {
		if o.claimantOwner == claimant.key {
			return nil
		}
		return errors.NewConflictError(
			"owner has already been claimed by a different owner",
			fmt.Sprintf("owner=%s claimant=%s", o.key, o.claimantOwner),
		)
	}

	o.claimed = true
	o.claimantOwner = claimant.key
	o.updatedAt = time.Now().UTC()
	return nil
}
