package errors

import (
	stderrors "errors"
)

// Sentinel errors wrapped by AppError causes.
var (
	// ErrRowRejected marks a row that is skipped without aborting the run.
	ErrRowRejected = stderrors.New("row rejected")

	// ErrMalformedValue marks a salary or date field that cannot be parsed.
	ErrMalformedValue = stderrors.New("malformed value")

	ErrUnknownCurrency = stderrors.New("unknown currency")
	ErrMissingColumn   = stderrors.New("missing column")
	ErrEmptyDataset    = stderrors.New("empty dataset")

	// ErrUnknownMode is returned when the output mode prompt gets an
	// unrecognized answer.
	ErrUnknownMode = stderrors.New("unknown output mode")
)

// IsSkippable reports whether err only means the current row should be
// dropped.
func IsSkippable(err error) bool {
	return stderrors.Is(err, ErrRowRejected)
}

// TypeOf returns the ErrorType of the first AppError in err's chain, or an
// empty string.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}
