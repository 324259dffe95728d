package catalog

// Plan is a single carrier plan offering.
type Plan struct {
	Carrier   string
	PlanName  string
	DataGB    float64
	Price     float64
	USRoaming bool
	Code      string
	PlanType  string
}

// Postpaid reports whether the plan is a postpaid offering.
func (p Plan) Postpaid() bool {
	return p.PlanType == "postpaid"
}

// Prepaid reports whether the plan is a prepaid offering.
func (p Plan) Prepaid() bool {
	return p.PlanType == "prepaid"
}
