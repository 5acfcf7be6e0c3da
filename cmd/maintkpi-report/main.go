// Command maintkpi-report computes one KPI report from a JSON file of records
//
//	maintkpi-report -kind orders -in orders.json -year 2024
//	maintkpi-report -kind reliability -in incidents.json -years 2023,2024 -months 1,2
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"maintkpi/internal/core/kpi"
	"maintkpi/internal/platform/logger"
	pstrings "maintkpi/internal/platform/strings"
	ptime "maintkpi/internal/platform/time"
)

type options struct {
	kind   string
	in     string
	years  []int
	months []int
	table  bool
	now    time.Time
	filter kpi.Filters
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("maintkpi-report", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		o             options
		years, months string
		now, from, to string
		asset         int64
		year, month   int
	)
	fs.StringVar(&o.kind, "kind", "orders", "report kind: orders or reliability")
	fs.StringVar(&o.in, "in", "", "records file, - for stdin")
	fs.StringVar(&years, "years", "", "comparative years, e.g. 2023,2024")
	fs.StringVar(&months, "months", "", "comparative months, e.g. 1,2,3")
	fs.IntVar(&year, "year", 0, "year filter")
	fs.IntVar(&month, "month", 0, "month filter")
	fs.Int64Var(&asset, "asset", 0, "asset id filter")
	fs.StringVar(&from, "from", "", "date_from, YYYY-MM-DD")
	fs.StringVar(&to, "to", "", "date_to, YYYY-MM-DD, inclusive")
	fs.StringVar(&now, "now", "", "reference date for open ranges, YYYY-MM-DD")
	fs.BoolVar(&o.table, "table", false, "print the per asset table instead of the report")
	if err := fs.Parse(args); err != nil {
		return o, err
	}

	if o.kind != "orders" && o.kind != "reliability" {
		return o, fmt.Errorf("unknown -kind %q", o.kind)
	}
	if o.in == "" {
		return o, errors.New("-in is required")
	}
	var err error
	if o.years, err = pstrings.ParseInts(years); err != nil {
		return o, fmt.Errorf("-years: %w", err)
	}
	if o.months, err = pstrings.ParseInts(months); err != nil {
		return o, fmt.Errorf("-months: %w", err)
	}
	if len(o.months) > 0 && len(o.years) == 0 {
		return o, errors.New("-months needs -years")
	}
	if o.table && len(o.years) > 0 {
		return o, errors.New("-table does not apply to comparative reports")
	}

	o.filter = kpi.Filters{Year: year, Month: month, AssetID: asset}
	if from != "" {
		t, err := time.Parse(time.DateOnly, from)
		if err != nil {
			return o, fmt.Errorf("-from: %w", err)
		}
		o.filter.DateFrom = &t
	}
	if to != "" {
		t, err := time.Parse(time.DateOnly, to)
		if err != nil {
			return o, fmt.Errorf("-to: %w", err)
		}
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		o.filter.DateTo = &t
	}
	if now != "" {
		if o.now, err = time.Parse(time.DateOnly, now); err != nil {
			return o, fmt.Errorf("-now: %w", err)
		}
	}
	return o, o.filter.Validate()
}

func readRecords[T any](path string, stdin io.Reader) ([]T, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer func() { _ = f.Close() }()
		r = f
	}
	var out []T
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return out, nil
}

// keep applies the filters the query layer would have applied in SQL
func keep[T any](recs []T, f kpi.Filters, asset func(T) int64, at func(T) time.Time) []T {
	out := recs[:0:0]
	for _, r := range recs {
		if f.AssetID != 0 && asset(r) != f.AssetID {
			continue
		}
		if f.Covers(at(r)) {
			out = append(out, r)
		}
	}
	return out
}

func report(o options, stdin io.Reader) (any, error) {
	var opts []kpi.Option
	if !o.now.IsZero() {
		opts = append(opts, kpi.WithClock(ptime.Fixed(o.now)))
	}
	e := kpi.New(opts...)

	switch o.kind {
	case "orders":
		recs, err := readRecords[kpi.OrderRecord](o.in, stdin)
		if err != nil {
			return nil, err
		}
		f := o.filter
		f.Years, f.Months = o.years, o.months
		recs = keep(recs, f,
			func(r kpi.OrderRecord) int64 { return r.AssetID },
			func(r kpi.OrderRecord) time.Time { return r.OpenedAt })
		if len(o.years) > 0 {
			return e.ComparativeOrderKPIs(recs, o.years, o.months, o.filter)
		}
		rep, err := e.OrderKPIs(recs, o.filter)
		if err != nil || !o.table {
			return rep, err
		}
		return kpi.OrderAssetTable(rep), nil
	default:
		incs, err := readRecords[kpi.IncidentRecord](o.in, stdin)
		if err != nil {
			return nil, err
		}
		f := o.filter
		f.Years, f.Months = o.years, o.months
		incs = keep(incs, f,
			func(r kpi.IncidentRecord) int64 { return r.AssetID },
			func(r kpi.IncidentRecord) time.Time { return r.OrderOpenedAt })
		if len(o.years) > 0 {
			return e.ComparativeReliabilityKPIs(incs, o.years, o.months, o.filter)
		}
		rep, err := e.ReliabilityKPIs(incs, o.filter)
		if err != nil || !o.table {
			return rep, err
		}
		return kpi.ReliabilityAssetTable(rep), nil
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	out, err := report(o, stdin)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func main() {
	opt := logger.FromEnv()
	opt.Writer = os.Stderr
	logger.Init(opt)

	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logger.Named("report").Error().Err(err).Msg("maintkpi-report failed")
		os.Exit(1)
	}
}
