package plans

import (
	"testing"

	"switchplan-backend/internal/catalog"
)

func featureTexts(features []Feature) map[string]bool {
	out := make(map[string]bool, len(features))
	for _, f := range features {
		out[f.Text] = f.Included
	}
	return out
}

func TestDisplayCarrier(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "fido", want: "Fido"},
		{raw: "public_mobile", want: "Public Mobile"},
		{raw: "freedom_prepaid", want: "Freedom"},
		{raw: " Koodo ", want: "Koodo"},
		{raw: "lucky_mobile", want: "Lucky Mobile"},
	}
	for _, tt := range tests {
		if got := displayCarrier(tt.raw); got != tt.want {
			t.Fatalf("displayCarrier(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestDisplayDataRendersSubGigInMegabytes(t *testing.T) {
	tests := []struct {
		dataGB float64
		want   string
	}{
		{dataGB: 0.25, want: "256MB"},
		{dataGB: 0.5, want: "512MB"},
		{dataGB: 1, want: "1"},
		{dataGB: 10, want: "10"},
	}
	for _, tt := range tests {
		if got := displayData(tt.dataGB); got != tt.want {
			t.Fatalf("displayData(%v) = %q, want %q", tt.dataGB, got, tt.want)
		}
	}
}

func TestNetworkSpeed(t *testing.T) {
	if got := networkSpeed("Chatr"); got != "4G LTE" {
		t.Fatalf("networkSpeed(Chatr) = %q, want 4G LTE", got)
	}
	if got := networkSpeed("Public Mobile"); got != "4G LTE" {
		t.Fatalf("networkSpeed(Public Mobile) = %q, want 4G LTE", got)
	}
	if got := networkSpeed("Rogers"); got != "5G" {
		t.Fatalf("networkSpeed(Rogers) = %q, want 5G", got)
	}
}

func TestToListed(t *testing.T) {
	p := catalog.Plan{
		Carrier:   "koodo",
		PlanName:  "Koodo 10GB US Unlimited",
		DataGB:    10,
		Price:     45,
		USRoaming: true,
		Code:      "K2",
		PlanType:  "postpaid",
	}

	listed := toListed(p)
	if listed.Carrier != "Koodo" {
		t.Fatalf("expected display carrier Koodo, got %q", listed.Carrier)
	}
	if listed.Data != "10" {
		t.Fatalf("expected data \"10\", got %q", listed.Data)
	}
	if listed.NetworkSpeed != "5G" {
		t.Fatalf("expected 5G, got %q", listed.NetworkSpeed)
	}
	if listed.Terms != termsLine {
		t.Fatalf("unexpected terms line %q", listed.Terms)
	}
	if listed.PlanCode != "K2" {
		t.Fatalf("expected plan code K2, got %q", listed.PlanCode)
	}

	features := featureTexts(listed.Features)
	for _, want := range []string{
		"Canada-wide Calling",
		"Unlimited Texting",
		"Data Access",
		"Data Rollover",
		"Unlimited Data",
		"US Roaming",
	} {
		if !features[want] {
			t.Fatalf("expected feature %q in %v", want, listed.Features)
		}
	}
	if features["Mexico Roaming"] {
		t.Fatalf("did not expect Mexico Roaming for %q", p.PlanName)
	}
}

func TestBuildFeaturesZeroDataOmitsDataAccess(t *testing.T) {
	p := catalog.Plan{Carrier: "chatr", PlanName: "Chatr Talk & Text", DataGB: 0, Price: 15, Code: "C0"}
	features := featureTexts(buildFeatures(p, "Chatr"))
	if features["Data Access"] {
		t.Fatalf("zero-data plan must not list Data Access")
	}
	if !features["Canada-wide Calling"] || !features["Unlimited Texting"] {
		t.Fatalf("baseline features missing: %v", features)
	}
}
