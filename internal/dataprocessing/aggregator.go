package dataprocessing

import (
	"sort"
	"strings"

	"vacancystats/internal/errors"
	"vacancystats/pkg/contracts/domain"
)

// orderedGroups collects values per key and remembers the order in which
// keys were first seen.
type orderedGroups[K comparable, V any] struct {
	order  []K
	values map[K][]V
}

func newOrderedGroups[K comparable, V any]() *orderedGroups[K, V] {
	return &orderedGroups[K, V]{values: make(map[K][]V)}
}

func (g *orderedGroups[K, V]) add(key K, value V) {
	if _, seen := g.values[key]; !seen {
		g.order = append(g.order, key)
	}
	g.values[key] = append(g.values[key], value)
}

func (g *orderedGroups[K, V]) count(key K) int {
	return len(g.values[key])
}

// Aggregator folds validated vacancies into grouped salary and volume
// statistics. Use Add for every record and Finalize once the input is
// exhausted. An Aggregator is not safe for concurrent use.
type Aggregator struct {
	profession string

	byYear         *orderedGroups[int, float64]
	filteredByYear *orderedGroups[int, float64]
	byCity         *orderedGroups[string, float64]

	total int
}

// NewAggregator creates an aggregator whose filtered statistics cover
// vacancies with profession in their title.
func NewAggregator(profession string) *Aggregator {
	return &Aggregator{
		profession:     profession,
		byYear:         newOrderedGroups[int, float64](),
		filteredByYear: newOrderedGroups[int, float64](),
		byCity:         newOrderedGroups[string, float64](),
	}
}

// Add accumulates one vacancy.
func (a *Aggregator) Add(record domain.VacancyRecord) {
	a.byYear.add(record.PublishedYear, record.NormalizedSalary)
	a.byCity.add(record.Region, record.NormalizedSalary)

	// Plain case-sensitive substring match.
	if strings.Contains(record.Title, a.profession) {
		a.filteredByYear.add(record.PublishedYear, record.NormalizedSalary)
	}

	a.total++
}

// Total returns the number of vacancies added so far.
func (a *Aggregator) Total() int {
	return a.total
}

// Finalize derives the statistics bundle from the accumulated records. It
// does not modify the accumulators, so calling it twice yields equal bundles.
// It returns an error matching errors.ErrEmptyDataset when nothing was added.
func (a *Aggregator) Finalize() (*domain.Statistics, error) {
	if a.total == 0 {
		return nil, errors.NewEmptyDatasetError()
	}

	stats := &domain.Statistics{
		Profession:           a.profession,
		TotalRecords:         a.total,
		SalaryByYear:         make(map[int]int, len(a.byYear.order)),
		CountByYear:          make(map[int]int, len(a.byYear.order)),
		FilteredSalaryByYear: make(map[int]int, len(a.filteredByYear.order)),
		FilteredCountByYear:  make(map[int]int, len(a.filteredByYear.order)),
	}

	for _, year := range a.byYear.order {
		stats.SalaryByYear[year] = truncatedMean(a.byYear.values[year])
		stats.CountByYear[year] = a.byYear.count(year)
	}
	for _, year := range a.filteredByYear.order {
		stats.FilteredSalaryByYear[year] = truncatedMean(a.filteredByYear.values[year])
		stats.FilteredCountByYear[year] = a.filteredByYear.count(year)
	}

	stats.Years = make([]int, len(a.byYear.order))
	copy(stats.Years, a.byYear.order)
	sort.Ints(stats.Years)

	shares, salaries := a.rankCities()
	stats.ShareByCity = shares
	stats.SalaryByCity = salaries

	return stats, nil
}

// rankCities keeps cities holding more than one percent of all vacancies and
// ranks them by share and by average salary.
func (a *Aggregator) rankCities() ([]domain.CityShare, []domain.CitySalary) {
	var shares []domain.CityShare
	var salaries []domain.CitySalary

	for _, city := range a.byCity.order {
		share := roundShare(a.byCity.count(city), a.total)
		if !share.GreaterThan(minCityShare) {
			continue
		}
		shares = append(shares, domain.CityShare{City: city, Share: share.InexactFloat64()})
		salaries = append(salaries, domain.CitySalary{City: city, Salary: truncatedMean(a.byCity.values[city])})
	}

	rankedShares := topN(shares, func(c domain.CityShare) float64 { return c.Share }, TopCities)
	rankedSalaries := topN(salaries, func(c domain.CitySalary) float64 { return float64(c.Salary) }, TopCities)

	return rankedShares, rankedSalaries
}
