package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// PGSource loads plans from the Postgres plans table.
type PGSource struct {
	DB *sql.DB
}

// Load reads every plan row. Order is stable by plan code so reloads are
// deterministic.
func (s PGSource) Load(ctx context.Context) ([]Plan, error) {
	const query = `
SELECT carrier, plan_name, data_gb, price, us_roaming, plan_code, plan_type
FROM plans
ORDER BY plan_code`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query plans: %w", err)
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		var p Plan
		var planType sql.NullString
		if err := rows.Scan(&p.Carrier, &p.PlanName, &p.DataGB, &p.Price, &p.USRoaming, &p.Code, &planType); err != nil {
			return nil, fmt.Errorf("scan plan row: %w", err)
		}
		p.PlanType = strings.ToLower(strings.TrimSpace(planType.String))
		if p.PlanType == "" {
			p.PlanType = "postpaid"
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate plan rows: %w", err)
	}
	if len(plans) == 0 {
		return nil, fmt.Errorf("plans table is empty")
	}
	return plans, nil
}
