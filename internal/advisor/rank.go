package advisor

import (
	"sort"
	"strings"

	"switchplan-backend/internal/catalog"
)

const maxRecommendations = 5

// preferences is the fully-resolved filter input read from a session after
// the structured details submission.
type preferences struct {
	Budget          float64
	DataNeeded      float64
	CurrentProvider string // lowercased
	WillingToSwitch bool
	NeedsRoaming    bool
}

// filterPlans keeps plans within budget, with enough data, with US roaming
// when it is required, and — when the user is unwilling to switch — only
// plans from the current provider. Carrier comparison is done on the
// lowercased carrier field because the stored provider is lowercased at
// ingestion.
func filterPlans(plans []catalog.Plan, prefs preferences) []catalog.Plan {
	var out []catalog.Plan
	for _, p := range plans {
		if p.Price > prefs.Budget {
			continue
		}
		if p.DataGB < prefs.DataNeeded {
			continue
		}
		if prefs.NeedsRoaming && !p.USRoaming {
			continue
		}
		if !prefs.WillingToSwitch && strings.ToLower(p.Carrier) != prefs.CurrentProvider {
			continue
		}
		out = append(out, p)
	}
	return out
}

// rankPlans orders plans ascending by price, breaking price ties ascending by
// data allowance. The data tie-break ranks lower-data plans first among equal
// prices; that is the literal reference ordering, preserved even though
// descending data would be the more plausible "best value" intent.
func rankPlans(plans []catalog.Plan) {
	sort.SliceStable(plans, func(i, j int) bool {
		if plans[i].Price != plans[j].Price {
			return plans[i].Price < plans[j].Price
		}
		return plans[i].DataGB < plans[j].DataGB
	})
}

// topRecommendations filters, ranks, and truncates to the shortlist size.
func topRecommendations(plans []catalog.Plan, prefs preferences) []catalog.Plan {
	matched := filterPlans(plans, prefs)
	rankPlans(matched)
	if len(matched) > maxRecommendations {
		matched = matched[:maxRecommendations]
	}
	return matched
}
