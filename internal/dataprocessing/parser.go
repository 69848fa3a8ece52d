package dataprocessing

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"vacancystats/internal/errors"
	"vacancystats/pkg/contracts/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadRows reads every CSV row from r into memory. A leading UTF-8 byte order
// mark is dropped. Rows may have differing field counts; the header check is
// left to Header.Parse.
func ReadRows(r io.Reader) ([][]string, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, errors.NewParsingError("failed to skip byte order mark", err)
		}
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewParsingError("failed to read CSV", err)
	}
	return rows, nil
}

// Header maps the required column names onto their positions in a CSV
// header row.
type Header struct {
	width int
	index map[string]int
}

// NewHeader validates a header row. Every column in domain.RequiredColumns
// must be present; extra columns are allowed and ignored.
func NewHeader(names []string) (*Header, error) {
	index := make(map[string]int, len(names))
	for i, name := range names {
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	for _, column := range domain.RequiredColumns {
		if _, ok := index[column]; !ok {
			return nil, errors.NewMissingColumnError(column)
		}
	}

	return &Header{width: len(names), index: index}, nil
}

// Width returns the number of fields in the header row.
func (h *Header) Width() int {
	return h.width
}

// Parse turns one data row into a VacancyRecord.
//
// A row whose field count differs from the header, or which has any empty
// field, returns an error matching errors.ErrRowRejected. A salary that is
// not a number, a malformed year or an unknown currency returns a fatal
// error.
func (h *Header) Parse(row []string) (domain.VacancyRecord, error) {
	if len(row) != h.width {
		return domain.VacancyRecord{}, errors.NewRowRejectedError(
			fmt.Sprintf("row has %d fields, header has %d", len(row), h.width))
	}
	for i, value := range row {
		if value == "" {
			return domain.VacancyRecord{}, errors.NewRowRejectedError(
				fmt.Sprintf("field %d is empty", i))
		}
	}

	field := func(column string) string {
		return row[h.index[column]]
	}

	low, err := parseSalary(field(domain.ColumnSalaryFrom))
	if err != nil {
		return domain.VacancyRecord{}, errors.NewParsingError("invalid "+domain.ColumnSalaryFrom, err).
			WithContext("value", field(domain.ColumnSalaryFrom))
	}
	high, err := parseSalary(field(domain.ColumnSalaryTo))
	if err != nil {
		return domain.VacancyRecord{}, errors.NewParsingError("invalid "+domain.ColumnSalaryTo, err).
			WithContext("value", field(domain.ColumnSalaryTo))
	}

	currency := field(domain.ColumnCurrency)
	normalized, err := NormalizeSalary(low, high, currency)
	if err != nil {
		return domain.VacancyRecord{}, err
	}

	year, err := PublishedYear(field(domain.ColumnPublishedAt))
	if err != nil {
		return domain.VacancyRecord{}, err
	}

	return domain.VacancyRecord{
		Title:            field(domain.ColumnName),
		SalaryLow:        low,
		SalaryHigh:       high,
		CurrencyCode:     currency,
		Region:           field(domain.ColumnAreaName),
		PublishedYear:    year,
		NormalizedSalary: normalized,
	}, nil
}

// PublishedYear extracts the year from the first four characters of a
// publication timestamp such as "2007-12-03T17:40:09+0300".
func PublishedYear(publishedAt string) (int, error) {
	prefix := []rune(publishedAt)
	if len(prefix) > 4 {
		prefix = prefix[:4]
	}
	year, err := strconv.Atoi(strings.TrimSpace(string(prefix)))
	if err != nil {
		return 0, errors.NewParsingError("invalid "+domain.ColumnPublishedAt, err).
			WithContext("value", publishedAt)
	}
	return year, nil
}

func parseSalary(value string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(value), 64)
}
