package testutil

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"vacancystats/pkg/contracts/domain"
)

// VacancyHeader is the header row written by the CSV builders. It carries an
// extra key_skills column to mirror real exports.
var VacancyHeader = []string{
	domain.ColumnName,
	"key_skills",
	domain.ColumnSalaryFrom,
	domain.ColumnSalaryTo,
	domain.ColumnCurrency,
	domain.ColumnAreaName,
	domain.ColumnPublishedAt,
}

// Vacancy is one CSV row in VacancyHeader order.
type Vacancy struct {
	Name        string
	Skills      string
	From        string
	To          string
	Currency    string
	Area        string
	PublishedAt string
}

// Row returns the fields in header order. An empty Skills value is replaced
// so rows stay valid unless a test blanks another field on purpose.
func (v Vacancy) Row() []string {
	skills := v.Skills
	if skills == "" {
		skills = "SQL"
	}
	return []string{v.Name, skills, v.From, v.To, v.Currency, v.Area, v.PublishedAt}
}

// RURVacancy builds a valid row with equal bounds so its normalized salary
// is exactly salary.
func RURVacancy(name, area, year, salary string) Vacancy {
	return Vacancy{
		Name:        name,
		From:        salary,
		To:          salary,
		Currency:    "RUR",
		Area:        area,
		PublishedAt: year + "-06-15T10:00:00+0300",
	}
}

// VacancyCSV renders the header plus rows as CSV text. Raw rows are written
// as given so tests can produce malformed lines.
func VacancyCSV(t *testing.T, withBOM bool, rows ...[]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	if withBOM {
		buf.Write([]byte{0xEF, 0xBB, 0xBF})
	}
	w := csv.NewWriter(&buf)
	if err := w.Write(VacancyHeader); err != nil {
		t.Fatalf("write header: %v", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			t.Fatalf("write row: %v", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		t.Fatalf("flush csv: %v", err)
	}
	return buf.Bytes()
}

// WriteVacancyCSV writes the vacancies to dir/vacancies.csv with a BOM and
// returns the path.
func WriteVacancyCSV(t *testing.T, dir string, vacancies ...Vacancy) string {
	t.Helper()

	rows := make([][]string, len(vacancies))
	for i, v := range vacancies {
		rows[i] = v.Row()
	}

	path := filepath.Join(dir, "vacancies.csv")
	if err := os.WriteFile(path, VacancyCSV(t, true, rows...), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// SampleStatistics returns a finalized bundle for exporter tests. Year 2008
// has no profession vacancies on purpose.
func SampleStatistics() *domain.Statistics {
	return &domain.Statistics{
		Profession:   "Аналитик",
		TotalRecords: 10,
		Years:        []int{2007, 2008, 2009},
		SalaryByYear: map[int]int{2007: 38916, 2008: 43646, 2009: 42492},
		CountByYear:  map[int]int{2007: 4, 2008: 3, 2009: 3},
		FilteredSalaryByYear: map[int]int{
			2007: 42500,
			2009: 50000,
		},
		FilteredCountByYear: map[int]int{
			2007: 2,
			2009: 1,
		},
		SalaryByCity: []domain.CitySalary{
			{City: "Москва", Salary: 57354},
			{City: "Санкт-Петербург", Salary: 46513},
			{City: "Екатеринбург", Salary: 30000},
		},
		ShareByCity: []domain.CityShare{
			{City: "Москва", Share: 0.5},
			{City: "Санкт-Петербург", Share: 0.3},
			{City: "Екатеринбург", Share: 0.1},
		},
	}
}
