package plans

import (
	"fmt"
	"strings"

	"switchplan-backend/internal/catalog"
)

// Feature is one storefront bullet point on a plan card.
type Feature struct {
	Text     string `json:"text"`
	Included bool   `json:"included"`
}

// ListedPlan is the storefront shape of a catalog plan.
type ListedPlan struct {
	Carrier      string    `json:"carrier"`
	Price        float64   `json:"price"`
	Data         string    `json:"data"`
	NetworkSpeed string    `json:"network_speed"`
	Features     []Feature `json:"features"`
	Terms        string    `json:"terms"`
	PlanType     string    `json:"plan_type"`
	PlanCode     string    `json:"plan_code"`
}

const termsLine = "No term contract required. Prices may vary by region."

var carrierDisplay = map[string]string{
	"virgin":          "Virgin",
	"koodo":           "Koodo",
	"fido":            "Fido",
	"rogers":          "Rogers",
	"bell":            "Bell",
	"telus":           "Telus",
	"freedom":         "Freedom",
	"chatr":           "Chatr",
	"public_mobile":   "Public Mobile",
	"freedom_prepaid": "Freedom",
}

var lteOnlyCarriers = map[string]struct{}{
	"Chatr":         {},
	"Lucky":         {},
	"Public Mobile": {},
}

func toListed(p catalog.Plan) ListedPlan {
	carrier := displayCarrier(p.Carrier)
	return ListedPlan{
		Carrier:      carrier,
		Price:        p.Price,
		Data:         displayData(p.DataGB),
		NetworkSpeed: networkSpeed(carrier),
		Features:     buildFeatures(p, carrier),
		Terms:        termsLine,
		PlanType:     p.PlanType,
		PlanCode:     p.Code,
	}
}

func displayCarrier(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if display, ok := carrierDisplay[key]; ok {
		return display
	}
	return titleCase(key)
}

// displayData renders sub-1GB allowances in megabytes, matching the
// storefront cards.
func displayData(dataGB float64) string {
	if dataGB < 1 {
		return fmt.Sprintf("%.0fMB", dataGB*1024)
	}
	return fmt.Sprintf("%.0f", dataGB)
}

func networkSpeed(carrier string) string {
	if _, ok := lteOnlyCarriers[carrier]; ok {
		return "4G LTE"
	}
	return "5G"
}

func buildFeatures(p catalog.Plan, carrier string) []Feature {
	features := []Feature{
		{Text: "Canada-wide Calling", Included: true},
		{Text: "Unlimited Texting", Included: true},
	}
	if p.DataGB > 0 {
		features = append(features, Feature{Text: "Data Access", Included: true})
	}
	if carrier == "Virgin" || carrier == "Koodo" {
		features = append(features, Feature{Text: "Data Rollover", Included: true})
	}

	name := strings.ToLower(p.PlanName)
	if strings.Contains(name, "unlimited") {
		features = append(features, Feature{Text: "Unlimited Data", Included: true})
	}
	if p.USRoaming || strings.Contains(name, "u.s.") || strings.Contains(name, "us") {
		features = append(features, Feature{Text: "US Roaming", Included: true})
	}
	if strings.Contains(name, "mex") {
		features = append(features, Feature{Text: "Mexico Roaming", Included: true})
	}
	return features
}

func titleCase(raw string) string {
	parts := strings.Fields(strings.ReplaceAll(raw, "_", " "))
	for i, part := range parts {
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}
