// Package connectome holds a synapse edge table and answers partner queries on it.
package connectome

import (
	"strings"

	"github.com/janelia-flyem/wintermute/wm"
)

// CellType classifies a cell by morphology.
type CellType uint8

const (
	UnknownType CellType = iota
	Excitatory           // spiny, tagged "E"
	Inhibitory           // smooth, tagged "I"
)

// ParseCellType converts a cell table tag into a CellType.  Tags other than
// "E" and "I" are UnknownType.
func ParseCellType(tag string) CellType {
	switch strings.TrimSpace(tag) {
	case "E":
		return Excitatory
	case "I":
		return Inhibitory
	default:
		return UnknownType
	}
}

// CellTypeArg parses a user supplied cell type, accepting tags and morphology names.
func CellTypeArg(s string) (CellType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "e", "excitatory", "spiny":
		return Excitatory, nil
	case "i", "inhibitory", "smooth":
		return Inhibitory, nil
	default:
		return UnknownType, &ArgumentError{Arg: "cell type", Value: s}
	}
}

func (t CellType) String() string {
	switch t {
	case Excitatory:
		return "E"
	case Inhibitory:
		return "I"
	default:
		return "unknown"
	}
}

// Direction selects the incoming or outgoing edges of a cell.
type Direction uint8

const (
	Incoming Direction = iota + 1
	Outgoing
)

func (d Direction) String() string {
	switch d {
	case Incoming:
		return "in"
	case Outgoing:
		return "out"
	default:
		return "invalid direction"
	}
}

// Mode selects which neighbors of a cell are returned.
type Mode uint8

const (
	ModeAll Mode = iota + 1
	ModeIn
	ModeOut
)

// ParseMode converts "all", "in" or "out" into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all", "":
		return ModeAll, nil
	case "in", "incoming":
		return ModeIn, nil
	case "out", "outgoing":
		return ModeOut, nil
	default:
		return 0, &ArgumentError{Arg: "mode", Value: s}
	}
}

func (m Mode) String() string {
	switch m {
	case ModeAll:
		return "all"
	case ModeIn:
		return "in"
	case ModeOut:
		return "out"
	default:
		return "invalid mode"
	}
}

// Edge is a synapse between a presynaptic and a postsynaptic segment.
type Edge struct {
	ID       int64
	Pre      uint64
	Post     uint64
	Location wm.Point3d
}

// Cell is a segment with a known cell type.
type Cell struct {
	ID   uint64
	Type CellType
}
