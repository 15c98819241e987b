package compliance

import (
	"fmt"
	"time"

	"golang.org/x/text/cases"

	"candlepin/internal/domain/consumer"
	"candlepin/internal/domain/owner"
)

const (
	PurposeMatched      = "matched"
	PurposeMismatched   = "mismatched"
	PurposeNotSpecified = "not specified"
	PurposeDisabled     = "disabled"
)

// PurposeStatus is the system purpose verdict for a consumer. Only the
// role is matched; usage and add-ons are reported back unevaluated.
type PurposeStatus struct {
	Date             time.Time
	Status           string
	NonCompliantRole *string
	CompliantRole    map[string][]uint
	Reasons          []string
}

// PurposeEvaluator compares a consumer's declared role with the roles of
// the products it is entitled to.
type PurposeEvaluator struct{}

func NewPurposeEvaluator() *PurposeEvaluator {
	return &PurposeEvaluator{}
}

func (e *PurposeEvaluator) Evaluate(c *consumer.Consumer, gate owner.Gate, entitlements []EntitlementView, on time.Time) *PurposeStatus {
	if on.IsZero() {
		on = time.Now().UTC()
	}

	status := &PurposeStatus{
		Date:          on,
		CompliantRole: make(map[string][]uint),
	}

	if gate.Enabled() {
		status.Status = PurposeDisabled
		return status
	}

	role := c.Role()
	if role == "" {
		status.Status = PurposeNotSpecified
		return status
	}

	// Casers are stateful, so one per evaluation.
	fold := cases.Fold()
	want := fold.String(role)
	for _, ent := range entitlements {
		if !ent.activeOn(on) {
			continue
		}
		for _, r := range ent.Roles {
			if fold.String(r) == want {
				status.CompliantRole[role] = append(status.CompliantRole[role], ent.EntitlementID)
				break
			}
		}
	}

	if len(status.CompliantRole[role]) > 0 {
		status.Status = PurposeMatched
		return status
	}

	status.Status = PurposeMismatched
	status.NonCompliantRole = &role
	status.Reasons = append(status.Reasons,
		fmt.Sprintf("The requested role %q is not provided by a currently consumed subscription.", role))
	return status
}
