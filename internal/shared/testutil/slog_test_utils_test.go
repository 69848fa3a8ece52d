package testutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferedSlogHandler(t *testing.T) {
	logger, handler := NewTestLogger(t)

	logger.With(slog.String("component", "pipeline")).Info("aggregation complete", slog.Int("valid_rows", 3))
	logger.Warn("nothing to aggregate")

	records := handler.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "pipeline", records[0].Attrs["component"])
	rows, ok := records[0].Attr("valid_rows")
	require.True(t, ok)
	assert.Equal(t, int64(3), rows)
	assert.Len(t, handler.AtLevel(slog.LevelWarn), 1)

	rec, ok := handler.Find(slog.LevelWarn, "nothing")
	require.True(t, ok)
	assert.Equal(t, "nothing to aggregate", rec.Message)
	_, ok = handler.Find(slog.LevelError, "nothing")
	assert.False(t, ok)

	AssertLogContains(t, handler, slog.LevelInfo, "aggregation")
	AssertNoErrors(t, handler)
}

func TestVacancyCSV(t *testing.T) {
	data := VacancyCSV(t, true, RURVacancy("Аналитик", "Москва", "2020", "100").Row())

	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, data[:3])
	assert.Contains(t, string(data), "name,key_skills,salary_from")
	assert.Contains(t, string(data), "Аналитик,SQL,100,100,RUR,Москва,2020-06-15T10:00:00+0300")
}
