package dataprocessing

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
)

const (
	// TopCities is the length of both ranked city lists.
	TopCities = 10

	// ShareDecimals is the number of decimal places kept in city shares.
	ShareDecimals = 4
)

// minCityShare is the share a city must strictly exceed to be ranked.
var minCityShare = decimal.New(1, -2)

// roundShare returns count/total rounded to ShareDecimals places. The
// quotient is a float64 and its exact binary value is rounded, so 3/160
// (stored just below 0.01875) gives 0.0187. Exact ties round to even.
func roundShare(count, total int) decimal.Decimal {
	share := float64(count) / float64(total)
	return decimal.RequireFromString(strconv.FormatFloat(share, 'f', ShareDecimals, 64))
}

// topN returns at most n items of entries sorted descending by value. The
// sort is stable, so equal values keep their input order. entries is not
// modified.
func topN[T any](entries []T, value func(T) float64, n int) []T {
	ranked := make([]T, len(entries))
	copy(ranked, entries)

	sort.SliceStable(ranked, func(i, j int) bool {
		return value(ranked[i]) > value(ranked[j])
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// truncatedMean returns the arithmetic mean truncated to an integer, or 0 for
// an empty slice. Values are summed in order.
func truncatedMean(values []float64) int {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return int(sum / float64(len(values)))
}
