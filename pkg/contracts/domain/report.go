package domain

import "strings"

// OutputMode selects which artifacts a run produces.
type OutputMode string

const (
	OutputModeDocument    OutputMode = "document"
	OutputModeChart       OutputMode = "chart"
	OutputModeSpreadsheet OutputMode = "spreadsheet"
	// OutputModeAll is only reachable from the command line, never from the
	// interactive prompt.
	OutputModeAll OutputMode = "all"
)

// InteractiveModes are the choices offered by the prompt.
var InteractiveModes = []OutputMode{OutputModeDocument, OutputModeChart, OutputModeSpreadsheet}

// ParseOutputMode maps user input onto a mode. The second result is false for
// anything that is not a known mode.
func ParseOutputMode(s string) (OutputMode, bool) {
	switch OutputMode(strings.ToLower(strings.TrimSpace(s))) {
	case OutputModeDocument:
		return OutputModeDocument, true
	case OutputModeChart:
		return OutputModeChart, true
	case OutputModeSpreadsheet:
		return OutputModeSpreadsheet, true
	case OutputModeAll:
		return OutputModeAll, true
	}
	return "", false
}

// Artifacts records where a run wrote its output files. Empty fields were
// not produced.
type Artifacts struct {
	ChartPath    string `json:"chart_path,omitempty"`
	WorkbookPath string `json:"workbook_path,omitempty"`
	DocumentPath string `json:"document_path,omitempty"`
}
