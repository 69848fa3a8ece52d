// Package dataprocessing turns a vacancies CSV export into salary and volume
// statistics.
//
// # Architecture
//
// The package is organized into three components:
//
// 1. Parser: reads the CSV, resolves header columns and validates rows
// 2. Aggregator: groups vacancies by year and city in a single pass
// 3. Pipeline: drives the two and records spans and logs
//
// # Usage
//
//	pipeline := dataprocessing.NewPipeline(logger, nil)
//	result, err := pipeline.Run(ctx, "vacancies_by_year.csv", "Аналитик")
//	if err != nil {
//	    return err
//	}
//	stats := result.Statistics
//
// # Data Flow
//
//	CSV rows → Header.Parse → VacancyRecord → Aggregator.Add → Finalize → Statistics
//
// # Error Handling
//
// Rows with a wrong field count or an empty field are skipped. A salary that
// is not a number, an unparseable year or an unknown currency code stops the
// run with an error naming the row. An input without any valid row yields an
// error matching errors.ErrEmptyDataset.
//
// # Ranking
//
// City shares are rounded to four places. Only cities above one percent are
// ranked, and both city lists keep the ten highest values with ties in
// first-seen order.
package dataprocessing
