package compliance

import (
	"sort"
	"time"

	"candlepin/internal/domain/consumer"
	"candlepin/internal/domain/owner"
)

// EntitlementView is an entitlement joined with the pool and product data
// the evaluators need.
type EntitlementView struct {
	EntitlementID      uint
	PoolID             uint
	ProductID          string
	ProvidedProductIDs []string
	Quantity           int64
	StartDate          time.Time
	EndDate            time.Time
	Roles              []string
}

func (e EntitlementView) activeOn(t time.Time) bool {
	return !t.Before(e.StartDate) && !t.After(e.EndDate)
}

func (e EntitlementView) covers(productID string) bool {
	if e.ProductID == productID {
		return true
	}
	for _, id := range e.ProvidedProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}

// Evaluator computes compliance status.
type Evaluator struct{}

func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate computes the status of c on date on. A zero date means now.
func (e *Evaluator) Evaluate(c *consumer.Consumer, gate owner.Gate, entitlements []EntitlementView, on time.Time) *Status {
	if on.IsZero() {
		on = time.Now().UTC()
	}

	status := &Status{
		Date:              on,
		ProductStatuses:   make(map[string]string),
		CompliantProducts: make(map[string][]uint),
	}

	if gate.Enabled() {
		for _, id := range c.InstalledProductIDs() {
			status.ProductStatuses[id] = StatusDisabled
		}
		status.Status = StatusDisabled
		return status
	}

	if c.Type().IsManifest() {
		status.Status = StatusValid
		return status
	}

	var until *time.Time
	for _, product := range c.InstalledProducts() {
		covering := coveringEntitlements(product.ProductID, entitlements, on)
		if len(covering) == 0 {
			status.ProductStatuses[product.ProductID] = StatusInvalid
			status.NonCompliantProducts = append(status.NonCompliantProducts, product.ProductID)
			status.Reasons = append(status.Reasons, notCoveredReason(product))
			continue
		}

		status.ProductStatuses[product.ProductID] = StatusValid
		productUntil := covering[0].EndDate
		for _, ent := range covering {
			status.CompliantProducts[product.ProductID] = append(status.CompliantProducts[product.ProductID], ent.EntitlementID)
			if ent.EndDate.After(productUntil) {
				productUntil = ent.EndDate
			}
		}
		if until == nil || productUntil.Before(*until) {
			u := productUntil
			until = &u
		}
	}

	sort.Strings(status.NonCompliantProducts)
	if len(status.NonCompliantProducts) > 0 {
		status.Status = StatusInvalid
		return status
	}

	status.Status = StatusValid
	status.CompliantUntil = until
	return status
}

func coveringEntitlements(productID string, entitlements []EntitlementView, on time.Time) []EntitlementView {
	var out []EntitlementView
	for _, ent := range entitlements {
		if ent.activeOn(on) && ent.covers(productID) {
			out = append(out, ent)
		}
	}
	return out
}

func notCoveredReason(p consumer.InstalledProduct) Reason {
	name := p.ProductName
	if name == "" {
		name = p.ProductID
	}
	return Reason{
		Key:     ReasonNotCovered,
		Message: "Not supported by a valid subscription.",
		Attributes: map[string]string{
			"product_id": p.ProductID,
			"name":       name,
		},
	}
}
