package domain

// CitySalary is one entry of the ranked salary-by-city list.
type CitySalary struct {
	City   string `json:"city"`
	Salary int    `json:"salary"`
}

// CityShare is one entry of the ranked share-by-city list. Share is a
// fraction in [0, 1] rounded to four decimal places.
type CityShare struct {
	City  string  `json:"city"`
	Share float64 `json:"share"`
}

// Statistics is the finalized aggregation bundle handed to the exporters.
// Exporters must treat it as read-only.
type Statistics struct {
	Profession   string `json:"profession"`
	TotalRecords int    `json:"total_records"`

	// Years holds every year seen in the input in ascending order. It is the
	// key set of SalaryByYear and CountByYear.
	Years []int `json:"years"`

	SalaryByYear         map[int]int `json:"salary_by_year"`
	CountByYear          map[int]int `json:"count_by_year"`
	FilteredSalaryByYear map[int]int `json:"filtered_salary_by_year"`
	FilteredCountByYear  map[int]int `json:"filtered_count_by_year"`

	// SalaryByCity and ShareByCity are sorted descending and hold at most
	// ten entries each.
	SalaryByCity []CitySalary `json:"salary_by_city"`
	ShareByCity  []CityShare  `json:"share_by_city"`
}

// FilteredSalary returns the profession salary for year, or 0 when no
// matching vacancy was published that year.
func (s *Statistics) FilteredSalary(year int) int {
	return s.FilteredSalaryByYear[year]
}

// FilteredCount returns the profession vacancy count for year, or 0.
func (s *Statistics) FilteredCount(year int) int {
	return s.FilteredCountByYear[year]
}
