// Package shared holds helpers used across the vacancystats packages.
//
// # Test Utilities
//
// The testutil subpackage provides:
//
//	- Vacancy CSV builders for parser and pipeline tests
//	- A ready-made statistics bundle for exporter tests
//	- A buffered slog handler for asserting on log output
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    path := testutil.WriteVacancyCSV(t, t.TempDir(),
//	        testutil.Vacancy{Name: "Аналитик", From: "100", To: "200", Currency: "RUR", Area: "Москва", PublishedAt: "2020-01-01T00:00:00+0300"})
//	    // run the pipeline on path
//	}
//
// It must not contain business logic.
package shared
