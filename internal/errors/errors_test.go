package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSkippable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"bare sentinel", ErrRowRejected, true},
		{"wrapped rejection", fmt.Errorf("line 3: %w", NewRowRejectedError("field count mismatch")), true},
		{"currency", NewCurrencyError("ABC"), false},
		{"parsing", NewParsingError("bad salary", errors.New("x")), false},
		{"plain", errors.New("other"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSkippable(tt.err))
		})
	}
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, ErrTypeCurrency, TypeOf(fmt.Errorf("wrap: %w", NewCurrencyError("ABC"))))
	assert.Equal(t, ErrTypeEmptyDataset, TypeOf(NewEmptyDatasetError()))
	assert.Equal(t, ErrorType(""), TypeOf(errors.New("plain")))
	assert.Equal(t, ErrorType(""), TypeOf(nil))
}
