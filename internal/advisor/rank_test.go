package advisor

import (
	"testing"

	"switchplan-backend/internal/catalog"
)

func rankFixture() []catalog.Plan {
	return []catalog.Plan{
		{Carrier: "Virgin", PlanName: "Virgin 20GB US", DataGB: 20, Price: 55, USRoaming: true, Code: "V1"},
		{Carrier: "Koodo", PlanName: "Koodo 10GB", DataGB: 10, Price: 40, Code: "K1"},
		{Carrier: "Fido", PlanName: "Fido 5GB", DataGB: 5, Price: 40, Code: "F1"},
		{Carrier: "Chatr", PlanName: "Chatr 2GB", DataGB: 2, Price: 25, Code: "C1"},
		{Carrier: "Fido", PlanName: "Fido 15GB US", DataGB: 15, Price: 50, USRoaming: true, Code: "F2"},
		{Carrier: "Lucky", PlanName: "Lucky 1GB", DataGB: 1, Price: 20, Code: "L1"},
	}
}

func codes(plans []catalog.Plan) []string {
	out := make([]string, len(plans))
	for i, p := range plans {
		out[i] = p.Code
	}
	return out
}

func assertCodes(t *testing.T, got []catalog.Plan, want ...string) {
	t.Helper()
	gotCodes := codes(got)
	if len(gotCodes) != len(want) {
		t.Fatalf("expected codes %v, got %v", want, gotCodes)
	}
	for i := range want {
		if gotCodes[i] != want[i] {
			t.Fatalf("expected codes %v, got %v", want, gotCodes)
		}
	}
}

func TestFilterPlans(t *testing.T) {
	tests := []struct {
		name  string
		prefs preferences
		want  []string
	}{
		{
			name:  "budget is a hard ceiling",
			prefs: preferences{Budget: 40, DataNeeded: 0, WillingToSwitch: true},
			want:  []string{"K1", "F1", "C1", "L1"},
		},
		{
			name:  "data need is a hard floor",
			prefs: preferences{Budget: 100, DataNeeded: 10, WillingToSwitch: true},
			want:  []string{"V1", "K1", "F2"},
		},
		{
			name:  "roaming required keeps only roaming plans",
			prefs: preferences{Budget: 100, NeedsRoaming: true, WillingToSwitch: true},
			want:  []string{"V1", "F2"},
		},
		{
			name:  "unwilling to switch locks to current carrier",
			prefs: preferences{Budget: 100, CurrentProvider: "fido", WillingToSwitch: false},
			want:  []string{"F1", "F2"},
		},
		{
			name:  "zero budget matches nothing priced above zero",
			prefs: preferences{Budget: 0, WillingToSwitch: true},
			want:  nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := filterPlans(rankFixture(), tt.prefs)
			assertCodes(t, got, tt.want...)
			for _, p := range got {
				if p.Price > tt.prefs.Budget {
					t.Fatalf("plan %s exceeds budget %.2f", p.Code, tt.prefs.Budget)
				}
				if p.DataGB < tt.prefs.DataNeeded {
					t.Fatalf("plan %s is below data need %.1f", p.Code, tt.prefs.DataNeeded)
				}
			}
		})
	}
}

func TestRankPlansAscendingPriceThenAscendingData(t *testing.T) {
	plans := rankFixture()
	rankPlans(plans)
	// At the $40 tie, the 5 GB plan ranks ahead of the 10 GB plan. That
	// lower-data-first tie-break is deliberate; see DESIGN.md.
	assertCodes(t, plans, "L1", "C1", "F1", "K1", "F2", "V1")
}

func TestTopRecommendationsTruncatesToFive(t *testing.T) {
	plans := rankFixture()
	got := topRecommendations(plans, preferences{Budget: 100, WillingToSwitch: true})
	if len(got) != maxRecommendations {
		t.Fatalf("expected a shortlist of %d, got %d", maxRecommendations, len(got))
	}
	assertCodes(t, got, "L1", "C1", "F1", "K1", "F2")
}
