// Command validate performs data integrity checks across the mock fixtures
// produced by genmock: the station CSV, the raw reading messages, and the
// risk assessments. It verifies row counts, field presence, scoring
// correctness, and cross-source consistency.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -csv data/mock/stations_250714.csv \
//	  -readings data/mock/readings_250714.json \
//	  -assessments data/mock/assessments_250714.json
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/wildfire-risk-service/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	csvPath := flag.String("csv", "", "station observation CSV")
	readingsPath := flag.String("readings", "", "raw reading messages JSON fixture")
	assessmentsPath := flag.String("assessments", "", "risk assessments JSON fixture")
	flag.Parse()

	if *csvPath == "" || *readingsPath == "" || *assessmentsPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(os.Stdout, *csvPath, *readingsPath, *assessmentsPath); code != 0 {
		os.Exit(code)
	}
}

func run(w io.Writer, csvPath, readingsPath, assessmentsPath string) int {
	fmt.Fprintln(w, "=== Wildfire Risk Fixture Validation ===")
	fmt.Fprintln(w)

	rows, err := loadCSV(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load CSV: %v\n", err)
		return 1
	}
	readings, err := loadJSON[domain.ReadingMessage](readingsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load readings JSON: %v\n", err)
		return 1
	}
	records, err := loadJSON[domain.RiskRecord](assessmentsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load assessments JSON: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateReadingParity(rows, readings),
		validateScoring(readings, records),
		validateSchema(records),
	}
	return report(w, phases, len(rows), len(readings), len(records))
}

func report(w io.Writer, phases []*phase, nRows, nReadings, nRecords int) int {
	fmt.Fprintln(w)
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Records: %d CSV, %d readings, %d assessments\n", nRows, nReadings, nRecords)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(w, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(w, "\nValidation FAILED.")
	return 1
}

// ── Data loading ──

// csvRow is a parsed CSV row with field values keyed by header name.
type csvRow struct {
	lineNum int
	fields  map[string]string
}

func loadCSV(path string) ([]csvRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	all, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(all) < 2 {
		return nil, fmt.Errorf("no data rows in %s", path)
	}

	header := all[0]
	rows := make([]csvRow, 0, len(all)-1)
	for i, row := range all[1:] {
		fields := make(map[string]string, len(header))
		for j, h := range header {
			if j < len(row) {
				fields[strings.TrimSpace(h)] = strings.TrimSpace(row[j])
			}
		}
		rows = append(rows, csvRow{lineNum: i + 2, fields: fields})
	}
	return rows, nil
}

func loadJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ── Phase 1: Reading Parity ──
// Validates that every CSV row appears in the readings fixture unchanged.

func validateReadingParity(rows []csvRow, readings []domain.ReadingMessage) *phase {
	p := &phase{name: "Phase 1: Reading Parity (JSON vs CSV)"}

	if len(rows) != len(readings) {
		p.errorf("count: CSV has %d rows, readings fixture has %d", len(rows), len(readings))
	}

	byStation := make(map[string]domain.ReadingMessage, len(readings))
	for _, r := range readings {
		byStation[r.StationID+"|"+r.ObservedAt.UTC().Format(time.RFC3339)] = r
	}

	for _, row := range rows {
		key := row.fields["station_id"] + "|" + row.fields["observed_at"]
		r, ok := byStation[key]
		if !ok {
			p.errorf("line %d: CSV row not found in readings (key=%s)", row.lineNum, key)
			continue
		}
		checkFloat(p, row, "temperature", r.Temperature)
		checkFloat(p, row, "wind_speed", r.WindSpeed)
		checkFloat(p, row, "humidity", r.Humidity)
		if r.DaysSincePrecipitation == nil || strconv.Itoa(*r.DaysSincePrecipitation) != row.fields["days_since_precipitation"] {
			p.errorf("line %d: days_since_precipitation mismatch", row.lineNum)
		}
		if r.LocationName != row.fields["location_name"] {
			p.errorf("line %d: location_name: CSV=%q, JSON=%q", row.lineNum, row.fields["location_name"], r.LocationName)
		}
	}
	return p
}

func checkFloat(p *phase, row csvRow, col string, got *float64) {
	want, err := strconv.ParseFloat(row.fields[col], 64)
	if err != nil {
		p.errorf("line %d: %s: unparseable CSV value %q", row.lineNum, col, row.fields[col])
		return
	}
	if got == nil || !floatEq(want, *got) {
		p.errorf("line %d: %s: CSV=%g, JSON=%v", row.lineNum, col, want, got)
	}
}

// ── Phase 2: Scoring ──
// Re-scores every reading and compares against the assessments fixture.

func validateScoring(readings []domain.ReadingMessage, records []domain.RiskRecord) *phase {
	p := &phase{name: "Phase 2: Scoring (re-assessed readings)"}

	if len(records) > 0 {
		domain.SetClock(clockwork.NewFakeClockAt(records[0].CreatedDate))
		defer domain.SetClock(nil)
	}

	byID := make(map[string]domain.RiskRecord, len(records))
	for _, rec := range records {
		if _, dup := byID[rec.ID]; dup {
			p.errorf("assessment %s: duplicate ID", rec.ID)
		}
		byID[rec.ID] = rec
	}

	for i, msg := range readings {
		raw, err := json.Marshal(msg)
		if err != nil {
			p.errorf("reading %d: marshal: %v", i, err)
			continue
		}
		parsed, err := domain.ParseRawEvent(domain.RawEvent{Value: raw})
		if err != nil {
			p.errorf("reading %d: %v", i, err)
			continue
		}
		want, err := domain.AssessReading(parsed)
		if err != nil {
			p.errorf("reading %d (%s): %v", i, msg.LocationName, err)
			continue
		}
		got, ok := byID[want.ID]
		if !ok {
			p.errorf("reading %d (%s): no assessment with ID %s", i, msg.LocationName, want.ID)
			continue
		}
		if got.RiskScore != want.RiskScore {
			p.errorf("%s: risk_score: expected %d, got %d", want.ID, want.RiskScore, got.RiskScore)
		}
		if got.RiskLevel != want.RiskLevel {
			p.errorf("%s: risk_level: expected %s, got %s", want.ID, want.RiskLevel, got.RiskLevel)
		}
		if !got.PredictedForDate.Equal(want.PredictedForDate) {
			p.errorf("%s: predicted_for_date: expected %s, got %s", want.ID,
				want.PredictedForDate.Format(time.DateOnly), got.PredictedForDate.Format(time.DateOnly))
		}
	}
	return p
}

// ── Phase 3: Schema ──
// Validates enum values, ranges, and required fields of each assessment.

func validateSchema(records []domain.RiskRecord) *phase {
	p := &phase{name: "Phase 3: Schema Alignment"}
	for i := range records {
		checkSchemaRecord(p, i, &records[i])
	}
	return p
}

func checkSchemaRecord(p *phase, i int, r *domain.RiskRecord) {
	pf := func(format string, args ...any) {
		p.errorf("assessment %d (%s): "+format, append([]any{i, r.ID}, args...)...)
	}

	if r.ID == "" {
		pf("missing id")
	}
	if r.LocationName == "" {
		pf("missing location_name")
	}
	if r.RiskScore < 0 || r.RiskScore > 100 {
		pf("risk_score %d out of range", r.RiskScore)
	}
	if r.RiskLevel != domain.LevelFromScore(r.RiskScore) {
		pf("risk_level %s does not match score %d", r.RiskLevel, r.RiskScore)
	}
	if r.ConfidenceLevel < 0 || r.ConfidenceLevel > 100 {
		pf("confidence_level %g out of range", r.ConfidenceLevel)
	}
	if r.CreatedDate.IsZero() {
		pf("missing created_date")
	}
}

func floatEq(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
