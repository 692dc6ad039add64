package connectome

import (
	"fmt"
	"strings"
)

// DataFormatError is returned when an input table lacks required columns or
// holds values that cannot be parsed.
type DataFormatError struct {
	Table   string
	Missing []string
	Msg     string
}

func (e *DataFormatError) Error() string {
	if len(e.Missing) != 0 {
		return fmt.Sprintf("%s table is missing required column(s): %s", e.Table, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("bad %s table: %s", e.Table, e.Msg)
}

// ArgumentError is returned for a query argument outside its allowed values.
type ArgumentError struct {
	Arg   string
	Value string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Arg, e.Value)
}
