// Package normalize maps raw source records onto addresses and rules.
package normalize

import (
	"fmt"
	"strings"

	"github.com/de-tools/afvalwijzer/pkg/models/store"
)

// ValueFormatError is returned when a field cannot be parsed into its
// semantic type. It carries the raw record for diagnosis.
type ValueFormatError struct {
	Row    int
	Field  string
	Value  string
	Record store.Record
	Cause  error
}

func (e *ValueFormatError) Error() string {
	msg := fmt.Sprintf("value format error in record %d, field %s: %q", e.Row, e.Field, e.Value)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return fmt.Sprintf("%s [%s]", msg, strings.Join(e.Record.Values(), ";"))
}

func (e *ValueFormatError) Unwrap() error {
	return e.Cause
}
