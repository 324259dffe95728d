package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// csv columns, in header order
const (
	colCarrier = iota
	colPlanName
	colPlanData
	colPlanPrice
	colUSRoaming
	colPlanCode
	colPlanType
	colCount
)

// CSVSource loads plans from a flat CSV file with the header
// carrier,plan_name,plan_data,plan_price,us_roaming,plan_code,plan_type.
type CSVSource struct {
	Path string
}

// Load reads and parses the whole file. Rows with a non-positive price are
// skipped; any other malformed field is a load error.
func (s CSVSource) Load(ctx context.Context) ([]Plan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open plans csv: %w", err)
	}
	defer f.Close()
	return parseCSV(f)
}

func parseCSV(r io.Reader) ([]Plan, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) < colCount {
		return nil, fmt.Errorf("csv header has %d columns, want %d", len(header), colCount)
	}

	var plans []Plan
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}
		if len(record) < colCount {
			return nil, fmt.Errorf("csv line %d has %d columns, want %d", line, len(record), colCount)
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(record[colPlanPrice]), 64)
		if err != nil {
			return nil, fmt.Errorf("csv line %d: bad price %q: %w", line, record[colPlanPrice], err)
		}
		if price <= 0 {
			continue
		}

		dataGB, err := strconv.ParseFloat(strings.TrimSpace(record[colPlanData]), 64)
		if err != nil {
			return nil, fmt.Errorf("csv line %d: bad data amount %q: %w", line, record[colPlanData], err)
		}
		if dataGB < 0 {
			return nil, fmt.Errorf("csv line %d: negative data amount %v", line, dataGB)
		}

		roaming, err := parseFlag(record[colUSRoaming])
		if err != nil {
			return nil, fmt.Errorf("csv line %d: bad us_roaming %q: %w", line, record[colUSRoaming], err)
		}

		planType := strings.ToLower(strings.TrimSpace(record[colPlanType]))
		if planType == "" {
			planType = "postpaid"
		}

		plans = append(plans, Plan{
			Carrier:   strings.TrimSpace(record[colCarrier]),
			PlanName:  strings.TrimSpace(record[colPlanName]),
			DataGB:    dataGB,
			Price:     price,
			USRoaming: roaming,
			Code:      strings.TrimSpace(record[colPlanCode]),
			PlanType:  planType,
		})
	}

	if len(plans) == 0 {
		return nil, fmt.Errorf("plans csv contains no usable rows")
	}
	return plans, nil
}

func parseFlag(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "t", "yes", "y", "1":
		return true, nil
	case "false", "f", "no", "n", "0", "":
		return false, nil
	default:
		return false, fmt.Errorf("unrecognized boolean %q", raw)
	}
}
