package dataprocessing

import (
	"context"

	"vacancystats/pkg/contracts/domain"
)

// Processor defines the interface for turning a vacancies file into statistics
type Processor interface {
	// Run aggregates the vacancies in path, filtering by profession
	Run(ctx context.Context, path, profession string) (*Result, error)
}

var _ Processor = (*Pipeline)(nil)

// ProcessingStats counts what happened to the input rows
type ProcessingStats struct {
	// DataRows is the number of rows after the header
	DataRows int `json:"data_rows"`

	// ValidRows reached the aggregator
	ValidRows int `json:"valid_rows"`

	// RejectedRows had a field count mismatch or an empty field
	RejectedRows int `json:"rejected_rows"`
}

// Result is the output of one pipeline run
type Result struct {
	Statistics *domain.Statistics `json:"statistics"`
	Stats      ProcessingStats    `json:"stats"`
}
