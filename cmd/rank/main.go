// Command rank filters, sorts, and truncates wildfire records from a YAML or
// JSON fixture file, the same way the API's query endpoints do.
//
// Usage:
//
//	go run ./cmd/rank -file data/fixtures/wildfire.yaml -kind alert \
//	  -filter severity=all -filter search=evacuation -sort severity -dir desc -limit 5
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/wildfire-risk-service/internal/aggregate"
	"github.com/couchcryptid/wildfire-risk-service/internal/domain"
)

// fixture is the on-disk layout: one list per record kind.
type fixture struct {
	Risks  []domain.RiskRecord           `json:"risks" yaml:"risks"`
	Alerts []domain.AlertRecord          `json:"alerts" yaml:"alerts"`
	Fires  []domain.HistoricalFireRecord `json:"fires" yaml:"fires"`
}

type options struct {
	file   string
	kind   string
	format string
	query  aggregate.Query
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "rank:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	fx, err := loadFixture(opts.file)
	if err != nil {
		return err
	}

	switch opts.kind {
	case "risk":
		out, err := aggregate.Risks.FilterAndSort(fx.Risks, opts.query)
		if err != nil {
			return err
		}
		return render(stdout, opts.format, out, riskRow, []string{"ID", "LOCATION", "SCORE", "LEVEL", "PREDICTED FOR"})
	case "alert":
		out, err := aggregate.Alerts.FilterAndSort(fx.Alerts, opts.query)
		if err != nil {
			return err
		}
		return render(stdout, opts.format, out, alertRow, []string{"ID", "SEVERITY", "TITLE", "LOCATION", "ISSUED", "ACTIVE"})
	case "fire":
		out, err := aggregate.Fires.FilterAndSort(fx.Fires, opts.query)
		if err != nil {
			return err
		}
		return render(stdout, opts.format, out, fireRow, []string{"ID", "NAME", "PROVINCE", "STARTED", "AREA (HA)", "CAUSE"})
	default:
		return fmt.Errorf("unknown kind %q: must be risk, alert or fire", opts.kind)
	}
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("rank", flag.ContinueOnError)
	fs.StringVar(&opts.file, "file", "", "YAML or JSON fixture file")
	fs.StringVar(&opts.kind, "kind", "risk", "record kind: risk, alert or fire")
	fs.StringVar(&opts.format, "format", "table", "output format: table or json")
	sortField := fs.String("sort", "", "sort field")
	dir := fs.String("dir", "asc", "sort direction: asc or desc")
	fs.IntVar(&opts.query.Limit, "limit", 0, "maximum records to print (0 for all)")
	fs.Func("filter", "field=value filter, repeatable", func(s string) error {
		field, value, ok := strings.Cut(s, "=")
		if !ok || field == "" {
			return errors.New("filter must be field=value")
		}
		opts.query.Filters = append(opts.query.Filters, aggregate.Filter{Field: field, Value: value})
		return nil
	})
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.file == "" {
		return options{}, errors.New("-file is required")
	}
	if opts.format != "table" && opts.format != "json" {
		return options{}, fmt.Errorf("unknown format %q: must be table or json", opts.format)
	}

	direction, err := aggregate.ParseDirection(*dir)
	if err != nil {
		return options{}, err
	}
	opts.query.Sort = aggregate.Sort{Field: *sortField, Direction: direction}
	return opts, nil
}

func loadFixture(path string) (fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fixture{}, err
	}

	var fx fixture
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fx)
	default:
		err = json.Unmarshal(data, &fx)
	}
	if err != nil {
		return fixture{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return fx, nil
}

func render[T any](w io.Writer, format string, records []T, row func(T) []string, header []string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, r := range records {
		fmt.Fprintln(tw, strings.Join(row(r), "\t"))
	}
	return tw.Flush()
}

func riskRow(r domain.RiskRecord) []string {
	return []string{r.ID, r.LocationName, strconv.Itoa(r.RiskScore), r.RiskLevel.Label(), date(r.PredictedForDate)}
}

func alertRow(a domain.AlertRecord) []string {
	return []string{a.ID, a.Severity.String(), a.Title, a.LocationName, date(a.IssuedDate), strconv.FormatBool(a.IsActive)}
}

func fireRow(f domain.HistoricalFireRecord) []string {
	return []string{f.ID, f.FireName, f.Province, date(f.StartDate), strconv.FormatFloat(f.AreaBurnedHectares, 'f', 0, 64), f.Cause}
}

func date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.DateOnly)
}
