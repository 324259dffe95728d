package main

// Import the plans CSV into the Postgres plans table:
//   PLANS_CSV_PATH=byop_plans.csv DATABASE_URL=... go run ./cmd/importplans

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"switchplan-backend/internal/catalog"
	"switchplan-backend/internal/shared/config"
	"switchplan-backend/internal/shared/storage/db"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	source := catalog.CSVSource{Path: cfg.PlansCSVPath}
	plans, err := source.Load(ctx)
	if err != nil {
		log.Printf("failed to load plans csv: %v", err)
		os.Exit(1)
	}

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		log.Printf("failed to run migrations: %v", err)
		os.Exit(1)
	}

	if err := importPlans(ctx, sqlDB, plans); err != nil {
		log.Printf("failed to import plans: %v", err)
		os.Exit(1)
	}
	log.Printf("imported %d plans from %s", len(plans), cfg.PlansCSVPath)
}

func importPlans(ctx context.Context, sqlDB *sql.DB, plans []catalog.Plan) error {
	const query = `
INSERT INTO plans (plan_code, carrier, plan_name, data_gb, price, us_roaming, plan_type)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (plan_code) DO UPDATE SET
    carrier    = EXCLUDED.carrier,
    plan_name  = EXCLUDED.plan_name,
    data_gb    = EXCLUDED.data_gb,
    price      = EXCLUDED.price,
    us_roaming = EXCLUDED.us_roaming,
    plan_type  = EXCLUDED.plan_type`

	tx, err := sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, p := range plans {
		if _, err := tx.ExecContext(ctx, query,
			p.Code, p.Carrier, p.PlanName, p.DataGB, p.Price, p.USRoaming, p.PlanType,
		); err != nil {
			return fmt.Errorf("insert plan %s: %w", p.Code, err)
		}
	}
	return tx.Commit()
}
