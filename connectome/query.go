package connectome

import (
	"fmt"
	"sort"

	"github.com/janelia-flyem/wintermute/ngurl"
	"github.com/janelia-flyem/wintermute/wm"
)

// Record paths edited when building viewer links.
var (
	SegmentsPath    = []string{"layers", "segmentation", "segments"}
	CoordinatesPath = []string{"navigation", "pose", "position", "voxelCoordinates"}
)

// Neighbors returns the sorted, deduplicated ids of typed cells connected to a cell.
// ModeIn gives presynaptic partners, ModeOut postsynaptic partners, and ModeAll both.
// Partners that are not in the cell table, or have an unknown type, are left out.
// A cell without typed partners yields an empty slice.
func (s *Store) Neighbors(cellID uint64, mode Mode) ([]uint64, error) {
	return s.neighbors(cellID, mode, Excitatory, Inhibitory)
}

// TypedNeighbors is like Neighbors but keeps only partners of the given type.
func (s *Store) TypedNeighbors(cellID uint64, mode Mode, t CellType) ([]uint64, error) {
	if t != Excitatory && t != Inhibitory {
		return nil, &ArgumentError{Arg: "cell type", Value: t.String()}
	}
	return s.neighbors(cellID, mode, t)
}

func (s *Store) neighbors(cellID uint64, mode Mode, types ...CellType) ([]uint64, error) {
	var dirs []Direction
	switch mode {
	case ModeAll:
		dirs = []Direction{Incoming, Outgoing}
	case ModeIn:
		dirs = []Direction{Incoming}
	case ModeOut:
		dirs = []Direction{Outgoing}
	default:
		return nil, &ArgumentError{Arg: "mode", Value: fmt.Sprintf("%d", mode)}
	}
	found := make(map[uint64]struct{})
	for _, dir := range dirs {
		sg, err := s.Subgraphs(cellID, dir)
		if err != nil {
			return nil, err
		}
		for _, t := range types {
			edges := sg.Spiny
			if t == Inhibitory {
				edges = sg.Smooth
			}
			for _, e := range edges {
				if dir == Incoming {
					found[e.Pre] = struct{}{}
				} else {
					found[e.Post] = struct{}{}
				}
			}
		}
	}
	ids := make([]uint64, 0, len(found))
	for id := range found {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Synapses returns the ids of edges from pre onto post in table order.  If
// withLocations is set, the synapse locations are returned in the same order;
// otherwise the location slice is nil.  Unconnected cells give empty results.
func (s *Store) Synapses(pre, post uint64, withLocations bool) ([]int64, []wm.Point3d) {
	ids := []int64{}
	var locs []wm.Point3d
	if withLocations {
		locs = []wm.Point3d{}
	}
	for _, i := range s.outgoing[pre] {
		e := s.edges[i]
		if e.Post != post {
			continue
		}
		ids = append(ids, e.ID)
		if withLocations {
			locs = append(locs, e.Location)
		}
	}
	return ids, locs
}

// InjectNeighbors returns a copy of base whose selected segments are the cell followed
// by its neighbors in the given order.  base is not modified and may be reused.
func InjectNeighbors(base *ngurl.Map, cellID uint64, neighborIDs []uint64) (*ngurl.Map, error) {
	segments := make(ngurl.List, 0, len(neighborIDs)+1)
	segments = append(segments, ngurl.Int(cellID))
	for _, id := range neighborIDs {
		segments = append(segments, ngurl.Int(id))
	}
	rec, err := ngurl.With(base, segments, SegmentsPath...)
	if err != nil {
		return nil, fmt.Errorf("cannot select segments in viewer record: %w", err)
	}
	return rec, nil
}

// RetargetView returns a copy of record centered on the given voxel coordinates.
// All other view settings, including the zoom factor, are copied unchanged.
func RetargetView(record *ngurl.Map, coords wm.Point3d) (*ngurl.Map, error) {
	xyz := make(ngurl.List, 3)
	for i, v := range coords.Int64s() {
		xyz[i] = v
	}
	rec, err := ngurl.With(record, xyz, CoordinatesPath...)
	if err != nil {
		return nil, fmt.Errorf("cannot move viewer to %s: %w", coords, err)
	}
	return rec, nil
}
