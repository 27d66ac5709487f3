package domain

import "fmt"

// NotFoundError is returned when the snapshot source does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("snapshot source not found: %s", e.Path)
}

// DataFormatError is returned for malformed or incomplete snapshot data.
// Index is the offending record, or -1 when the document itself is broken.
type DataFormatError struct {
	Index int
	Field string
	Err   error
}

func (e *DataFormatError) Error() string {
	msg := "malformed snapshot data"
	if e.Index >= 0 {
		msg = fmt.Sprintf("%s: record %d", msg, e.Index)
	}
	if e.Field != "" {
		msg = fmt.Sprintf("%s: field %q", msg, e.Field)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *DataFormatError) Unwrap() error {
	return e.Err
}

// EmptySeriesError is returned when there is nothing to plot.
type EmptySeriesError struct {
	Reason string
}

func (e *EmptySeriesError) Error() string {
	return fmt.Sprintf("nothing to plot: %s", e.Reason)
}
