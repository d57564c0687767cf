package db

import (
	"errors"
	"fmt"
)

var ErrMalformedRecord = errors.New("malformed record")

// RecordError describes a stored line that could not be decoded.
type RecordError struct {
	Path string
	Line int
	Msg  string
}

func (e *RecordError) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Path != "" && e.Line > 0:
		return fmt.Sprintf("%s: %s:%d: %s", ErrMalformedRecord, e.Path, e.Line, e.Msg)
	case e.Line > 0:
		return fmt.Sprintf("%s: line %d: %s", ErrMalformedRecord, e.Line, e.Msg)
	default:
		return fmt.Sprintf("%s: %s", ErrMalformedRecord, e.Msg)
	}
}

func (e *RecordError) Unwrap() error { return ErrMalformedRecord }

func malformedf(format string, args ...any) error {
	return &RecordError{Msg: fmt.Sprintf(format, args...)}
}

// atLine attaches a location to err when it is a RecordError.
func atLine(err error, path string, line int) error {
	var recErr *RecordError
	if errors.As(err, &recErr) {
		return &RecordError{Path: path, Line: line, Msg: recErr.Msg}
	}
	return err
}
