package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopN(t *testing.T) {
	type entry struct {
		name  string
		value float64
	}
	value := func(e entry) float64 { return e.value }

	input := []entry{{"a", 1}, {"b", 3}, {"c", 2}, {"d", 3}}

	got := topN(input, value, 3)
	assert.Equal(t, []entry{{"b", 3}, {"d", 3}, {"c", 2}}, got)
	assert.Equal(t, entry{"a", 1}, input[0], "input must not be reordered")

	assert.Len(t, topN(input, value, 10), 4)
	assert.Empty(t, topN([]entry{}, value, 10))
}

func TestTruncatedMean(t *testing.T) {
	assert.Equal(t, 0, truncatedMean(nil))
	assert.Equal(t, 100, truncatedMean([]float64{100, 101}))
	assert.Equal(t, 3, truncatedMean([]float64{3.99}))
	assert.Equal(t, 15, truncatedMean([]float64{10, 20}))
}

func TestRoundShare(t *testing.T) {
	assert.Equal(t, "0.6667", roundShare(2, 3).String())
	assert.Equal(t, "0.01", roundShare(1, 100).String())
	assert.True(t, roundShare(2, 100).GreaterThan(minCityShare))
	assert.False(t, roundShare(1, 100).GreaterThan(minCityShare))
}
