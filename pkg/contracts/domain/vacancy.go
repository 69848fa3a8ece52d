package domain

// VacancyRecord is a single validated vacancy row. It is built once by the
// parser and never modified afterwards.
type VacancyRecord struct {
	Title            string  `json:"title"`
	SalaryLow        float64 `json:"salary_low"`
	SalaryHigh       float64 `json:"salary_high"`
	CurrencyCode     string  `json:"currency_code"`
	Region           string  `json:"region"`
	PublishedYear    int     `json:"published_year"`
	NormalizedSalary float64 `json:"normalized_salary"`
}

// Column names expected in the vacancies CSV header.
const (
	ColumnName        = "name"
	ColumnSalaryFrom  = "salary_from"
	ColumnSalaryTo    = "salary_to"
	ColumnCurrency    = "salary_currency"
	ColumnAreaName    = "area_name"
	ColumnPublishedAt = "published_at"
)

// RequiredColumns lists every header column the parser needs.
var RequiredColumns = []string{
	ColumnName,
	ColumnSalaryFrom,
	ColumnSalaryTo,
	ColumnCurrency,
	ColumnAreaName,
	ColumnPublishedAt,
}

// ReferenceCurrency is the currency all salaries are normalized to.
const ReferenceCurrency = "RUR"
