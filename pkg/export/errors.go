package export

import "errors"

// DataValidationError marks a fatal input problem: the template CSV or the
// vpsdb document is missing or malformed. The run aborts and no output is
// written. Individual bad rows never raise this; they are skipped.
type DataValidationError struct {
	Reason string
	Err    error
}

func (e *DataValidationError) Error() string {
	if e.Err != nil {
		return e.Reason + ": " + e.Err.Error()
	}
	return e.Reason
}

func (e *DataValidationError) Unwrap() error {
	return e.Err
}

// IsDataValidation reports whether err is (or wraps) a DataValidationError.
func IsDataValidation(err error) bool {
	var target *DataValidationError
	return errors.As(err, &target)
}
