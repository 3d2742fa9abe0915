package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"emigrant-atlas/internal/choropleth"
	"emigrant-atlas/internal/common"
	"emigrant-atlas/internal/diagnostic"
	"emigrant-atlas/internal/reconcile"
	"emigrant-atlas/internal/source"
)

type resolveOptions struct {
	year     int
	allYears bool
	top      int
	legend   int
	asJSON   bool
	dump     bool
}

// yearReport is the JSON form of one resolved year.
type yearReport struct {
	Year      int                 `json:"year"`
	Available bool                `json:"available"`
	Values    map[string]float64  `json:"values,omitempty"`
	Stats     *reconcile.Stats    `json:"stats,omitempty"`
	Top       []choropleth.Ranked `json:"top,omitempty"`
	Colors    map[string]string   `json:"colors,omitempty"`
	Legend    []choropleth.Stop   `json:"legend,omitempty"`
	Redirects []reconcile.Outcome `json:"redirects,omitempty"`
	Misses    []reconcile.Outcome `json:"misses,omitempty"`
}

func (a *app) resolveCmd() *cobra.Command {
	opts := &resolveOptions{}

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve one year (or every year) of the data against the reference geometry",
		Example: `  emigrant-atlas resolve --year 1981
  emigrant-atlas resolve --all-years --top 10
  emigrant-atlas resolve --year 1981 --data upload.xlsx --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.allYears && !cmd.Flags().Changed("year") {
				return errors.New("either --year or --all-years is required")
			}

			if !cmd.Flags().Changed("top") {
				opts.top = a.cfg.Map.TopN
			}

			if opts.legend < 0 {
				opts.legend = a.cfg.Map.LegendSteps
			}

			return a.runResolve(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&opts.year, "year", "y", 0, "year to resolve")
	f.BoolVar(&opts.allYears, "all-years", false, "resolve every year in the data")
	f.IntVar(&opts.top, "top", choropleth.DefaultTopN, "number of entities in the ranking (0: all)")
	f.IntVar(&opts.legend, "legend", 0, "include a color legend with this many steps (-1: configured steps)")
	f.BoolVar(&opts.asJSON, "json", false, "print JSON")
	f.BoolVar(&opts.dump, "dump", false, "print the full result structure")

	cmd.MarkFlagsMutuallyExclusive("year", "all-years")
	cmd.MarkFlagsMutuallyExclusive("json", "dump")

	return cmd
}

func (a *app) runResolve(cmd *cobra.Command, opts *resolveOptions) error {
	resolver, err := a.newResolver()
	if err != nil {
		return err
	}

	doc, err := a.loadDocument()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if !opts.allYears {
		obs, err := doc.Observations(opts.year)
		if errors.Is(err, source.ErrSourceDataUnavailable) {
			a.logger.Info("no data for year", zap.Int("year", opts.year))
			return a.printUnavailable(out, opts, opts.year)
		}

		if err != nil {
			return err
		}

		res := resolver.Resolve(obs)

		return a.printYear(out, opts, resolver, opts.year, res)
	}

	years := doc.Years()
	if common.IsEmpty(years) {
		a.logger.Info("no per-year records", zap.String("path", a.cfg.Data.Path))
		return a.printNoYears(out, opts)
	}

	results, err := resolver.ResolveYears(cmd.Context(), doc.AllObservations(), a.cfg.Concurrency.Workers)
	if err != nil {
		return err
	}

	reports := make([]yearReport, 0, len(years))

	for _, year := range years {
		if opts.asJSON {
			reports = append(reports, a.report(opts, resolver, year, results[year]))
			continue
		}

		if err := a.printYear(out, opts, resolver, year, results[year]); err != nil {
			return err
		}
	}

	if opts.asJSON {
		return writeJSON(out, reports)
	}

	return nil
}

func (a *app) printUnavailable(out io.Writer, opts *resolveOptions, year int) error {
	if opts.asJSON {
		return writeJSON(out, yearReport{Year: year})
	}

	_, err := fmt.Fprintf(out, "data not available for %d\n", year)

	return err
}

// printNoYears reports a document without per-year records, such as a flat one.
func (a *app) printNoYears(out io.Writer, opts *resolveOptions) error {
	if opts.asJSON {
		return writeJSON(out, []yearReport{})
	}

	_, err := fmt.Fprintln(out, "data not available for any year")

	return err
}

func (a *app) report(opts *resolveOptions, r *reconcile.Resolver, year int, res *reconcile.Result) yearReport {
	stats := res.Stats
	rep := yearReport{
		Year:      year,
		Available: true,
		Values:    res.Values,
		Stats:     &stats,
		Top:       choropleth.TopN(res.Values, r.Registry(), opts.top),
		Redirects: res.Redirects(),
		Misses:    res.Misses(),
	}

	scale, err := choropleth.NewScale(res.Values, a.cfg.Map.Low, a.cfg.Map.High)
	if err != nil {
		a.logger.Warn("color scale unavailable", zap.Error(err))
		return rep
	}

	rep.Colors = make(map[string]string, len(res.Values))
	for id, v := range res.Values {
		rep.Colors[id] = scale.Color(v)
	}

	if opts.legend > 0 {
		rep.Legend = scale.Legend(opts.legend)
	}

	return rep
}

func (a *app) printYear(out io.Writer, opts *resolveOptions, r *reconcile.Resolver, year int, res *reconcile.Result) error {
	switch {
	case opts.dump:
		_, err := fmt.Fprintf(out, "year %d\n", year)
		spew.Fdump(out, res)

		return err
	case opts.asJSON:
		return writeJSON(out, a.report(opts, r, year, res))
	}

	rep := a.report(opts, r, year, res)

	fmt.Fprintf(out, "Year %d\n\n", year)

	if res.Empty() {
		fmt.Fprintln(out, "no observation resolved to a country")
	} else {
		table := tablewriter.NewWriter(out)
		table.SetHeader([]string{"#", "ID", "Country", "Emigrants", "Color"})
		table.SetAutoFormatHeaders(false)
		table.SetColumnAlignment([]int{
			tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
			tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT,
		})

		for i, entry := range rep.Top {
			table.Append([]string{
				strconv.Itoa(i + 1), entry.ID, entry.Name, humanize.Commaf(entry.Value), rep.Colors[entry.ID],
			})
		}

		table.Render()
	}

	s := res.Stats
	fmt.Fprintf(out, "\nmatched %s, fallback %s, fuzzy %s, missed %s, skipped %s\n",
		humanize.Comma(int64(s.Matched)), humanize.Comma(int64(s.FallbackUsed)),
		humanize.Comma(int64(s.FuzzyMatched)), humanize.Comma(int64(s.Missed)),
		humanize.Comma(int64(s.Skipped)))

	if len(rep.Redirects) > 0 {
		fmt.Fprintln(out, "\nredirected labels:")

		table := tablewriter.NewWriter(out)
		table.SetHeader([]string{"Label", "Tier", "Via", "Distance", "Emigrants"})
		table.SetAutoFormatHeaders(false)

		for _, o := range rep.Redirects {
			distance := ""
			if o.Tier == reconcile.TierFuzzy {
				distance = strconv.Itoa(o.Distance)
			}

			table.Append([]string{o.Label, o.Tier.String(), o.Via, distance, humanize.Commaf(o.Value)})
		}

		table.Render()
	}

	if len(rep.Misses) > 0 {
		fmt.Fprintln(out, "\nunresolved labels:")

		for _, d := range res.Diagnostics.Warnings {
			if d.Code != diagnostic.CodeUnresolvedLabel {
				continue
			}

			line := fmt.Sprintf("  %s", d.Source)
			if closest, ok := common.First(d.Suggestions); ok {
				line += fmt.Sprintf(" (closest: %s)", closest)
			}

			fmt.Fprintln(out, strings.TrimRight(line, " "))
		}
	}

	if opts.legend > 0 && len(rep.Legend) > 0 {
		fmt.Fprintln(out, "\nlegend:")

		for _, stop := range rep.Legend {
			fmt.Fprintf(out, "  %5.1f%%  %-12s %s\n", stop.Offset*100, humanize.Commaf(stop.Value), stop.Color)
		}
	}

	fmt.Fprintln(out)

	return nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
