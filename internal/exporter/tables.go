package exporter

import (
	"github.com/shopspring/decimal"

	"vacancystats/pkg/contracts/domain"
)

// OtherLabel names the residual pie slice and share row.
const OtherLabel = "Другие"

// YearRow is one line of the per-year statistics table.
type YearRow struct {
	Year           int
	Salary         int
	FilteredSalary int
	Count          int
	FilteredCount  int
}

// ShareRow is a city share with its display form.
type ShareRow struct {
	City    string
	Share   float64
	Percent string
}

// YearRows returns one row per year in ascending year order. Years without
// a matching vacancy report zero for the profession columns.
func YearRows(stats *domain.Statistics) []YearRow {
	rows := make([]YearRow, 0, len(stats.Years))
	for _, year := range stats.Years {
		rows = append(rows, YearRow{
			Year:           year,
			Salary:         stats.SalaryByYear[year],
			FilteredSalary: stats.FilteredSalary(year),
			Count:          stats.CountByYear[year],
			FilteredCount:  stats.FilteredCount(year),
		})
	}
	return rows
}

// ShareRows pairs every ranked city share with its percentage text.
func ShareRows(stats *domain.Statistics) []ShareRow {
	rows := make([]ShareRow, 0, len(stats.ShareByCity))
	for _, cs := range stats.ShareByCity {
		rows = append(rows, ShareRow{City: cs.City, Share: cs.Share, Percent: FormatPercent(cs.Share)})
	}
	return rows
}

// OtherShare is the part of all vacancies not covered by the ranked cities.
// It never goes below zero.
func OtherShare(stats *domain.Statistics) float64 {
	rest := decimal.NewFromInt(1)
	for _, cs := range stats.ShareByCity {
		rest = rest.Sub(decimal.NewFromFloat(cs.Share))
	}
	if rest.IsNegative() {
		return 0
	}
	return rest.InexactFloat64()
}
