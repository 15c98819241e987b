// Package compliance computes point-in-time compliance and system purpose
// views of a consumer. Nothing here is persisted or cached; callers pass a
// freshly resolved content access gate on every evaluation.
package compliance

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	StatusValid    = "valid"
	StatusInvalid  = "invalid"
	StatusDisabled = "disabled"
)

const ReasonNotCovered = "NOTCOVERED"

// Reason explains why a product is not compliant.
type Reason struct {
	Key        string
	Message    string
	Attributes map[string]string
}

// Status is the compliance verdict for one consumer on one date.
type Status struct {
	Date                 time.Time
	Status               string
	CompliantUntil       *time.Time
	ProductStatuses      map[string]string
	CompliantProducts    map[string][]uint
	NonCompliantProducts []string
	Reasons              []Reason
}

// IsCompliant reports whether nothing is left uncovered. A disabled status
// counts as compliant since enforcement is off.
func (s *Status) IsCompliant() bool {
	return s.Status != StatusInvalid
}

// Hash is a stable digest of the verdict, excluding the evaluation date,
// used to detect compliance changes between evaluations.
func (s *Status) Hash() string {
	var b strings.Builder
	b.WriteString(s.Status)

	products := make([]string, 0, len(s.CompliantProducts))
	for id := range s.CompliantProducts {
		products = append(products, id)
	}
	sort.Strings(products)
	for _, id := range products {
		ents := append([]uint(nil), s.CompliantProducts[id]...)
		sort.Slice(ents, func(i, j int) bool { return ents[i] < ents[j] })
		fmt.Fprintf(&b, "|c:%s=%v", id, ents)
	}

	nonCompliant := append([]string(nil), s.NonCompliantProducts...)
	sort.Strings(nonCompliant)
	for _, id := range nonCompliant {
		fmt.Fprintf(&b, "|n:%s", id)
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
