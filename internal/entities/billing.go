// Package entities contains core business entities.
package entities

// Plan is what a Stripe price buys.
type Plan string

const (
	PlanPersonal Plan = "personal"
	PlanPro      Plan = "pro"
	PlanTeam     Plan = "team"
)

// Tier returns the tier granted by the plan to the paying user.
func (p Plan) Tier() Tier {
	switch p {
	case PlanPersonal:
		return TierPersonal
	case PlanPro, PlanTeam:
		return TierPro
	}
	return TierFree
}

// PriceMap resolves Stripe price ids to plans.
type PriceMap map[string]Plan

// Plan returns the plan for a price id.
func (m PriceMap) Plan(priceID string) (Plan, bool) {
	p, ok := m[priceID]
	return p, ok
}
