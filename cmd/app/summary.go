package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/mauv0809/asset-ranking/internal/analytics"
	"github.com/mauv0809/asset-ranking/internal/format"
	"github.com/mauv0809/asset-ranking/internal/models"
)

var (
	summaryYear      int
	summaryCompanies []string
	summaryMetric    string
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the metric cards and asset ranking for a year",
	RunE: func(cmd *cobra.Command, _ []string) error {
		records, closeSource, err := loadRecords(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeSource()

		sel, err := summarySelection(records, summaryYear, summaryCompanies, summaryMetric)
		if err != nil {
			return err
		}

		view := analytics.Derive(records, sel, cfg.Dashboard.TopN)
		return writeSummary(cmd.OutOrStdout(), view, cfg.Dashboard.Unit)
	},
}

func init() {
	summaryCmd.Flags().IntVar(&summaryYear, "year", 0, "reporting year (default most recent)")
	summaryCmd.Flags().StringSliceVar(&summaryCompanies, "company", nil, "company to show details for (repeatable)")
	summaryCmd.Flags().StringVar(&summaryMetric, "metric", string(models.TotalAssets), "ranking metric")
	rootCmd.AddCommand(summaryCmd)
}

func summarySelection(records []models.FinancialRecord, year int, companies []string, metric string) (models.Selection, error) {
	sel := analytics.DefaultSelection(records)
	if year != 0 {
		sel.Year = year
	}
	m, ok := models.ParseMetric(metric)
	if !ok {
		return sel, eris.Errorf("unknown metric %q", metric)
	}
	sel.Metric = m
	sel.Companies = analytics.KnownCompanies(records, companies)
	return sel, nil
}

// writeSummary prints the cards and the ranked tables as plain text.
func writeSummary(w io.Writer, view analytics.DerivedView, unit string) error {
	sel := view.Selection
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if view.Empty {
		fmt.Fprintf(tw, "No data for %d\n", sel.Year)
	}

	switch {
	case sel.HasCompanies():
		for _, d := range view.Details {
			fmt.Fprintf(tw, "%s (%d) Total Assets\t%s\n", d.Company, sel.Year, format.AmountWithUnit(d.TotalAssets, unit))
			if d.OperatingMargin.Valid {
				fmt.Fprintf(tw, "%s Operating Margin\t%s\n", d.Company, format.Percent(d.OperatingMargin))
			}
			fmt.Fprintf(tw, "%s Net Income\t%s (%s)\n", d.Company, format.AmountWithUnit(d.NetIncome, unit), d.Status)
		}
	case view.Summary != nil:
		s := view.Summary
		top := "No data"
		if s.TopAssetHolder != nil {
			top = s.TopAssetHolder.Company + " : " + format.AmountWithUnit(s.TopAssetHolder.TotalAssets, unit)
		}
		fmt.Fprintf(tw, "Top Asset Holder (%d)\t%s\n", sel.Year, top)
		fmt.Fprintf(tw, "Total Assets\t%s %s\n", format.Amount(s.TotalAssets), unit)
		fmt.Fprintf(tw, "Mean Operating Margin\t%s\n", format.Percent(s.MeanOperatingMargin))
		fmt.Fprintf(tw, "Profitable Company Ratio\t%s\n", format.Percent(s.PositiveNetIncomeRatio))
	}

	writeRanking(tw, fmt.Sprintf("%d %s Top %d", sel.Year, sel.Metric.Label(), len(view.TopByMetric)), view.TopByMetric, sel.Metric)
	if sel.Metric != models.TotalAssets {
		writeRanking(tw, fmt.Sprintf("%d Total Assets Top %d", sel.Year, len(view.TopByAssets)), view.TopByAssets, models.TotalAssets)
	}

	return eris.Wrap(tw.Flush(), "write summary")
}

func writeRanking(w io.Writer, title string, records []models.FinancialRecord, metric models.Metric) {
	fmt.Fprintf(w, "\n%s\n", title)
	fmt.Fprintf(w, "Rank\tCompany\t%s\n", metric.Label())
	for i, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\n", strconv.Itoa(i+1), r.Company, format.NullAmount(metric.Value(r)))
	}
}
