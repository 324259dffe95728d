package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

var planColumns = []string{"carrier", "plan_name", "data_gb", "price", "us_roaming", "plan_code", "plan_type"}

func TestPGSourceLoad(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows(planColumns).
		AddRow("fido", "Fido 5GB", 5.0, 40.0, false, "F1", "postpaid").
		AddRow("koodo", "Koodo 10GB", 10.0, 40.0, false, "K1", nil)
	mock.ExpectQuery("SELECT carrier, plan_name, data_gb, price, us_roaming, plan_code, plan_type FROM plans").
		WillReturnRows(rows)

	plans, err := PGSource{DB: db}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(plans) != 2 {
		t.Fatalf("expected 2 plans, got %d", len(plans))
	}
	if plans[0].Code != "F1" || plans[0].Price != 40 {
		t.Fatalf("unexpected first plan: %+v", plans[0])
	}
	// NULL plan_type defaults to postpaid.
	if plans[1].PlanType != "postpaid" {
		t.Fatalf("expected postpaid default for NULL type, got %q", plans[1].PlanType)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPGSourceLoadEmptyTableIsError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT carrier, plan_name, data_gb, price, us_roaming, plan_code, plan_type FROM plans").
		WillReturnRows(sqlmock.NewRows(planColumns))

	_, err = PGSource{DB: db}.Load(context.Background())
	if err == nil || !strings.Contains(err.Error(), "plans table is empty") {
		t.Fatalf("expected empty-table error, got %v", err)
	}
}

func TestPGSourceLoadQueryFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT carrier, plan_name").
		WillReturnError(errors.New("connection closed"))

	if _, err := (PGSource{DB: db}).Load(context.Background()); err == nil {
		t.Fatalf("expected the query failure to surface")
	}
}
