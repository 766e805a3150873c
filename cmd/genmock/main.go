// Command genmock reads a CSV of weather station observations and generates
// mock data fixtures: the raw reading messages published to the source topic
// and the risk assessments the pipeline produces for them. It uses the actual
// domain package so the fixtures match real pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -csv data/mock/stations_250714.csv \
//	  -readings-out data/mock/readings_250714.json \
//	  -assessments-out data/mock/assessments_250714.json
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/wildfire-risk-service/internal/domain"
)

// processedAt is the fixed clock used for reproducible CreatedDate values.
var processedAt = time.Date(2025, time.July, 14, 16, 0, 0, 0, time.UTC)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	csvPath := flag.String("csv", "", "CSV file of station observations")
	readingsOut := flag.String("readings-out", "", "output path for raw reading messages")
	assessmentsOut := flag.String("assessments-out", "", "output path for risk assessments")
	flag.Parse()

	if *csvPath == "" || *readingsOut == "" || *assessmentsOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -csv, -readings-out, -assessments-out")
	}

	domain.SetClock(clockwork.NewFakeClockAt(processedAt))
	defer domain.SetClock(nil)

	f, err := os.Open(*csvPath)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	readings, err := readStations(f)
	if err != nil {
		return fmt.Errorf("processing %s: %w", *csvPath, err)
	}

	records, err := assess(readings)
	if err != nil {
		return err
	}
	log.Printf("total: %d readings", len(readings))

	if err := writeJSON(*readingsOut, readings); err != nil {
		return fmt.Errorf("writing readings fixture: %w", err)
	}
	log.Printf("wrote readings fixture: %s", *readingsOut)

	if err := writeJSON(*assessmentsOut, records); err != nil {
		return fmt.Errorf("writing assessments fixture: %w", err)
	}
	log.Printf("wrote assessments fixture: %s", *assessmentsOut)

	printStats(os.Stdout, records)
	return nil
}

// readStations parses station CSV rows into reading messages. Columns are
// matched by header name; optional columns may be absent.
func readStations(r io.Reader) ([]domain.ReadingMessage, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("no data rows")
	}

	colIdx := map[string]int{}
	for i, h := range rows[0] {
		colIdx[strings.TrimSpace(h)] = i
	}

	msgs := make([]domain.ReadingMessage, 0, len(rows)-1)
	for n, row := range rows[1:] {
		line := n + 2
		p := rowParser{row: row, idx: colIdx}

		msg := domain.ReadingMessage{
			StationID:    p.str("station_id"),
			LocationName: p.str("location_name"),
			Latitude:     p.float("latitude"),
			Longitude:    p.float("longitude"),
			ObservedAt:   p.timestamp("observed_at"),

			Temperature:            p.floatPtr("temperature"),
			WindSpeed:              p.floatPtr("wind_speed"),
			Humidity:               p.floatPtr("humidity"),
			DaysSincePrecipitation: p.intPtr("days_since_precipitation"),
			PrecipitationMM:        p.float("precipitation_mm"),
			FireWeatherIndex:       p.floatPtr("fire_weather_index"),
		}
		if p.err != nil {
			return nil, fmt.Errorf("line %d: %w", line, p.err)
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

// assess runs each reading through the same parse and scoring steps as the
// pipeline.
func assess(readings []domain.ReadingMessage) ([]domain.RiskRecord, error) {
	records := make([]domain.RiskRecord, 0, len(readings))
	for i, msg := range readings {
		raw, err := json.Marshal(msg)
		if err != nil {
			return nil, fmt.Errorf("marshal reading: %w", err)
		}
		parsed, err := domain.ParseRawEvent(domain.RawEvent{Value: raw, Timestamp: processedAt})
		if err != nil {
			return nil, fmt.Errorf("reading %d: %w", i, err)
		}
		rec, err := domain.AssessReading(parsed)
		if err != nil {
			return nil, fmt.Errorf("reading %d (%s): %w", i, msg.LocationName, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// rowParser reads typed columns from one CSV row, keeping the first error.
type rowParser struct {
	row []string
	idx map[string]int
	err error
}

func (p *rowParser) str(col string) string {
	i, ok := p.idx[col]
	if !ok || i >= len(p.row) {
		return ""
	}
	return strings.TrimSpace(p.row[i])
}

func (p *rowParser) float(col string) float64 {
	if v := p.floatPtr(col); v != nil {
		return *v
	}
	return 0
}

func (p *rowParser) floatPtr(col string) *float64 {
	s := p.str(col)
	if s == "" || p.err != nil {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.err = fmt.Errorf("column %s: %w", col, err)
		return nil
	}
	return &v
}

func (p *rowParser) intPtr(col string) *int {
	s := p.str(col)
	if s == "" || p.err != nil {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		p.err = fmt.Errorf("column %s: %w", col, err)
		return nil
	}
	return &v
}

func (p *rowParser) timestamp(col string) time.Time {
	s := p.str(col)
	if s == "" || p.err != nil {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		p.err = fmt.Errorf("column %s: %w", col, err)
	}
	return t
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(w io.Writer, records []domain.RiskRecord) {
	counts := make(map[domain.RiskLevel]int)
	for _, r := range records {
		counts[r.RiskLevel]++
	}

	fmt.Fprintln(w, "\n=== Stats for updating test assertions ===")
	fmt.Fprintf(w, "Total: %d\n", len(records))
	for _, l := range domain.RiskLevels() {
		fmt.Fprintf(w, "  %-10s %d\n", l.String(), counts[l])
	}

	summary := domain.SummarizeDashboard(records, nil)
	if summary.HighestRisk != nil {
		fmt.Fprintf(w, "Highest: %s (%d)\n", summary.HighestRisk.LocationName, summary.HighestRisk.RiskScore)
	}
	fmt.Fprintf(w, "Average score: %d\n", summary.AverageRiskScore)
}
