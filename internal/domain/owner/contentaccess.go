package owner

import (
	"strings"

	"candlepin/internal/shared/errors"
)

// ContentAccessMode selects how content access is granted for an owner.
type ContentAccessMode string

const (
	// ContentAccessEntitlement enforces entitlements: compliance is computed.
	ContentAccessEntitlement ContentAccessMode = "entitlement"
	// ContentAccessOrgEnvironment grants all content to every consumer of
	// the owner, which disables compliance enforcement.
	ContentAccessOrgEnvironment ContentAccessMode = "org_environment"
)

// DefaultContentAccessModeList is the mode list of a freshly created owner.
var DefaultContentAccessModeList = []ContentAccessMode{ContentAccessEntitlement, ContentAccessOrgEnvironment}

// ParseContentAccessMode parses a mode name. An empty name resolves to
// entitlement mode.
func ParseContentAccessMode(value string) (ContentAccessMode, error) {
	switch ContentAccessMode(strings.TrimSpace(value)) {
	case "", ContentAccessEntitlement:
		return ContentAccessEntitlement, nil
	case ContentAccessOrgEnvironment:
		return ContentAccessOrgEnvironment, nil
	default:
		return "", errors.NewValidationError("unknown content access mode", value)
	}
}

func (m ContentAccessMode) String() string {
	return string(m)
}

// GateEnabled reports whether entitlement enforcement is bypassed.
func (m ContentAccessMode) GateEnabled() bool {
	return m == ContentAccessOrgEnvironment
}

// ParseContentAccessModeList parses a comma separated list of modes,
// dropping duplicates while keeping order.
func ParseContentAccessModeList(value string) ([]ContentAccessMode, error) {
	if strings.TrimSpace(value) == "" {
		return append([]ContentAccessMode(nil), DefaultContentAccessModeList...), nil
	}

	seen := make(map[ContentAccessMode]bool)
	var modes []ContentAccessMode
	for _, part := range strings.Split(value, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		mode, err := ParseContentAccessMode(part)
		if err != nil {
			return nil, err
		}
		if !seen[mode] {
			seen[mode] = true
			modes = append(modes, mode)
		}
	}
	return modes, nil
}

// JoinContentAccessModes renders a mode list in its persisted form.
func JoinContentAccessModes(modes []ContentAccessMode) string {
	parts := make([]string, len(modes))
	for i, m := range modes {
		parts[i] = m.String()
	}
	return strings.Join(parts, ",")
}

// Gate is the per-owner content-access switch consulted by the compliance
// and system purpose evaluators. It must be built from a freshly loaded
// owner for every evaluation.
type Gate struct {
	mode ContentAccessMode
}

// ResolveGate builds the gate for an owner's current mode.
func ResolveGate(o *Owner) Gate {
	if o == nil {
		return Gate{mode: ContentAccessEntitlement}
	}
	return Gate{mode: o.ContentAccessMode()}
}

func (g Gate) Enabled() bool {
	return g.mode.GateEnabled()
}

func (g Gate) Mode() ContentAccessMode {
	return g.mode
}
