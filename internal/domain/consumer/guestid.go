package consumer

import (
	"strings"
)

// GuestID identifies a virtual machine reported by a host.
type GuestID struct {
	ID         string            `json:"guest_id"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

func NewGuestID(id string, attributes map[string]string) GuestID {
	return GuestID{ID: strings.TrimSpace(id), Attributes: attributes}
}

func (g GuestID) equal(other GuestID) bool {
	if g.ID != other.ID || len(g.Attributes) != len(other.Attributes) {
		return false
	}
	for k, v := range g.Attributes {
		if ov, ok := other.Attributes[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// NormalizeGuestIDs drops blank ids and keeps the first occurrence of
// repeated ids, preserving order.
func NormalizeGuestIDs(guests []GuestID) []GuestID {
	seen := make(map[string]bool, len(guests))
	out := make([]GuestID, 0, len(guests))
	for _, g := range guests {
		g.ID = strings.TrimSpace(g.ID)
		if g.ID == "" || seen[g.ID] {
			continue
		}
		seen[g.ID] = true
		out = append(out, g)
	}
	return out
}

// GuestIDsFromStrings builds attribute-less guest ids.
func GuestIDsFromStrings(ids []string) []GuestID {
	guests := make([]GuestID, 0, len(ids))
	for _, id := range ids {
		guests = append(guests, NewGuestID(id, nil))
	}
	return NormalizeGuestIDs(guests)
}

// carryGuestAttributes fills attribute-less guests in incoming with the
// attributes of the same guest in existing. incoming is modified in place.
func carryGuestAttributes(existing, incoming []GuestID) []GuestID {
	if len(existing) == 0 {
		return incoming
	}
	known := make(map[string]map[string]string, len(existing))
	for _, g := range existing {
		if len(g.Attributes) > 0 {
			known[g.ID] = g.Attributes
		}
	}
	for i, g := range incoming {
		if len(g.Attributes) == 0 {
			if attrs, ok := known[g.ID]; ok {
				incoming[i].Attributes = attrs
			}
		}
	}
	return incoming
}

func guestListsEqual(a, b []GuestID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].equal(b[i]) {
			return false
		}
	}
	return true
}
