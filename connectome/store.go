package connectome

import (
	"fmt"
	"sort"

	"github.com/DmitriyVTitov/size"
	"github.com/janelia-flyem/wintermute/wm"
)

// Store holds the synapse edge table, the cell table, and the edge views derived
// from them.  A Store is never modified after NewStore returns, so any number of
// goroutines may query it concurrently.
type Store struct {
	edges []Edge
	byID  map[int64]int // edge id -> index of its first row

	cells  map[uint64]CellType
	spiny  map[uint64]struct{}
	smooth map[uint64]struct{}

	// outgoing holds, per known cell, the indices of edges whose presynaptic
	// segment is that cell.  incoming is the same for postsynaptic segments.
	outgoing map[uint64][]int
	incoming map[uint64][]int
}

// NewStore builds a Store from edge and cell rows.  If a cell is listed more
// than once, its last row determines its type.
func NewStore(edges []Edge, cells []Cell) *Store {
	s := &Store{
		edges:    make([]Edge, len(edges)),
		byID:     make(map[int64]int, len(edges)),
		cells:    make(map[uint64]CellType, len(cells)),
		spiny:    make(map[uint64]struct{}),
		smooth:   make(map[uint64]struct{}),
		outgoing: make(map[uint64][]int),
		incoming: make(map[uint64][]int),
	}
	copy(s.edges, edges)

	for _, cell := range cells {
		if prev, found := s.cells[cell.ID]; found && prev != cell.Type {
			wm.Warningf("Cell %d listed as both %s and %s; using %s\n", cell.ID, prev, cell.Type, cell.Type)
		}
		s.cells[cell.ID] = cell.Type
	}
	for id, t := range s.cells {
		switch t {
		case Excitatory:
			s.spiny[id] = struct{}{}
		case Inhibitory:
			s.smooth[id] = struct{}{}
		}
	}

	for i, e := range s.edges {
		if _, found := s.byID[e.ID]; !found {
			s.byID[e.ID] = i
		}
		if _, known := s.cells[e.Pre]; known {
			s.outgoing[e.Pre] = append(s.outgoing[e.Pre], i)
		}
		if _, known := s.cells[e.Post]; known {
			s.incoming[e.Post] = append(s.incoming[e.Post], i)
		}
	}
	return s
}

// NumEdges returns the number of rows in the edge table.
func (s *Store) NumEdges() int {
	return len(s.edges)
}

// NumCells returns the number of distinct cells in the cell table.
func (s *Store) NumCells() int {
	return len(s.cells)
}

// Cell returns the type of a cell and whether it is in the cell table.
func (s *Store) Cell(id uint64) (CellType, bool) {
	t, found := s.cells[id]
	return t, found
}

// Edge returns the first edge with the given identifier.
func (s *Store) Edge(id int64) (Edge, bool) {
	i, found := s.byID[id]
	if !found {
		return Edge{}, false
	}
	return s.edges[i], true
}

// CellIDs returns the sorted ids of all cells of the given type.
func (s *Store) CellIDs(t CellType) []uint64 {
	ids := []uint64{}
	for id, ct := range s.cells {
		if ct == t {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Subgraph is the set of edges touching a cell in one direction, split by the
// type of the cell at the other end.  Smooth and Spiny are disjoint subsets of All;
// edges whose other end is not a typed cell appear only in All.
type Subgraph struct {
	All    []Edge
	Smooth []Edge
	Spiny  []Edge
}

// Subgraphs returns the incoming or outgoing edges of a cell.  Edges are in table
// order and every call returns newly allocated slices.
func (s *Store) Subgraphs(cellID uint64, dir Direction) (Subgraph, error) {
	var rows []int
	switch dir {
	case Incoming:
		rows = s.incoming[cellID]
	case Outgoing:
		rows = s.outgoing[cellID]
	default:
		return Subgraph{}, &ArgumentError{Arg: "direction", Value: fmt.Sprintf("%d", dir)}
	}
	sg := Subgraph{
		All:    make([]Edge, 0, len(rows)),
		Smooth: []Edge{},
		Spiny:  []Edge{},
	}
	for _, i := range rows {
		e := s.edges[i]
		sg.All = append(sg.All, e)
		other := e.Pre
		if dir == Outgoing {
			other = e.Post
		}
		if _, found := s.smooth[other]; found {
			sg.Smooth = append(sg.Smooth, e)
		} else if _, found := s.spiny[other]; found {
			sg.Spiny = append(sg.Spiny, e)
		}
	}
	return sg, nil
}

// Stats summarizes a Store.
type Stats struct {
	Edges           int
	Cells           int
	ExcitatoryCells int
	InhibitoryCells int
	OutgoingEdges   int // edges whose presynaptic segment is a known cell
	IncomingEdges   int // edges whose postsynaptic segment is a known cell
	Bytes           int // approximate in-memory size
}

// Stats returns table sizes and the approximate memory held by the Store.
func (s *Store) Stats() Stats {
	st := Stats{
		Edges:           len(s.edges),
		Cells:           len(s.cells),
		ExcitatoryCells: len(s.spiny),
		InhibitoryCells: len(s.smooth),
		Bytes:           size.Of(s),
	}
	for _, rows := range s.outgoing {
		st.OutgoingEdges += len(rows)
	}
	for _, rows := range s.incoming {
		st.IncomingEdges += len(rows)
	}
	return st
}
