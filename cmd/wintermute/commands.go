package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/janelia-flyem/wintermute/connectome"
	"github.com/janelia-flyem/wintermute/ngurl"
	"github.com/janelia-flyem/wintermute/wm"
)

// DoCommand serves as a switchboard for commands.
func (s *session) DoCommand(ctx context.Context, cmd wm.Command) error {
	if len(cmd) == 0 {
		return fmt.Errorf("Blank command!")
	}
	switch cmd.Name() {
	case "about":
		fmt.Fprintf(s.out, "wintermute %s\n", wm.Version)
		return nil
	case "help":
		fmt.Fprint(s.out, helpMessage)
		return nil
	case "decode":
		return s.doDecode(cmd)
	case "encode":
		return s.doEncode(cmd)
	}

	store, err := s.loadStore(ctx)
	if err != nil {
		return err
	}
	switch cmd.Name() {
	case "stats":
		return s.doStats(store)
	case "neighbors":
		return s.doNeighbors(store, cmd)
	case "synapses":
		return s.doSynapses(store, cmd)
	case "url":
		return s.doURL(store, cmd)
	case "goto":
		return s.doGoto(store, cmd)
	default:
		return fmt.Errorf("Unknown command %q.  Use 'wintermute help' to list commands.", cmd.Name())
	}
}

func (s *session) loadStore(ctx context.Context) (*connectome.Store, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}
	return connectome.Load(ctx, s.cfg.Data.Edges, s.cfg.Data.Cells)
}

func (s *session) prefix(cmd wm.Command) string {
	if prefix, found := cmd.Parameter(wm.KeyPrefix); found {
		return prefix
	}
	return s.cfg.Viewer.Prefix
}

// neighborArgs reads the cell id and the optional mode and type settings.
func neighborArgs(store *connectome.Store, cmd wm.Command) (uint64, []uint64, error) {
	var cellStr string
	cmd.CommandArgs(&cellStr)
	if cellStr == "" {
		return 0, nil, fmt.Errorf("%s needs a cell id", cmd.Name())
	}
	cellID, err := wm.ParseSegment(cellStr)
	if err != nil {
		return 0, nil, err
	}
	modeStr, _ := cmd.Parameter(wm.KeyMode)
	mode, err := connectome.ParseMode(modeStr)
	if err != nil {
		return 0, nil, err
	}
	var neighbors []uint64
	if typeStr, found := cmd.Parameter(wm.KeyType); found {
		cellType, err := connectome.CellTypeArg(typeStr)
		if err != nil {
			return 0, nil, err
		}
		neighbors, err = store.TypedNeighbors(cellID, mode, cellType)
		if err != nil {
			return 0, nil, err
		}
	} else if neighbors, err = store.Neighbors(cellID, mode); err != nil {
		return 0, nil, err
	}
	if _, known := store.Cell(cellID); !known {
		wm.Warningf("Cell %d is not in the cell table\n", cellID)
	}
	return cellID, neighbors, nil
}

func (s *session) doStats(store *connectome.Store) error {
	st := store.Stats()
	fmt.Fprintf(s.out, "synapses:            %s\n", humanize.Comma(int64(st.Edges)))
	fmt.Fprintf(s.out, "cells:               %s (%d excitatory, %d inhibitory)\n", humanize.Comma(int64(st.Cells)), st.ExcitatoryCells, st.InhibitoryCells)
	fmt.Fprintf(s.out, "from known cells:    %s\n", humanize.Comma(int64(st.OutgoingEdges)))
	fmt.Fprintf(s.out, "onto known cells:    %s\n", humanize.Comma(int64(st.IncomingEdges)))
	fmt.Fprintf(s.out, "memory:              %s\n", humanize.Bytes(uint64(st.Bytes)))
	return nil
}

func (s *session) doNeighbors(store *connectome.Store, cmd wm.Command) error {
	_, neighbors, err := neighborArgs(store, cmd)
	if err != nil {
		return err
	}
	for _, id := range neighbors {
		fmt.Fprintln(s.out, id)
	}
	return nil
}

func synapseArgs(cmd wm.Command) (pre, post uint64, err error) {
	var preStr, postStr string
	cmd.CommandArgs(&preStr, &postStr)
	if preStr == "" || postStr == "" {
		return 0, 0, fmt.Errorf("%s needs presynaptic and postsynaptic cell ids", cmd.Name())
	}
	if pre, err = wm.ParseSegment(preStr); err != nil {
		return
	}
	post, err = wm.ParseSegment(postStr)
	return
}

func (s *session) doSynapses(store *connectome.Store, cmd wm.Command) error {
	pre, post, err := synapseArgs(cmd)
	if err != nil {
		return err
	}
	ids, locs := store.Synapses(pre, post, true)
	for i, id := range ids {
		fmt.Fprintf(s.out, "%d\t%d\t%d\t%d\n", id, locs[i][0], locs[i][1], locs[i][2])
	}
	return nil
}

func (s *session) doURL(store *connectome.Store, cmd wm.Command) error {
	cellID, neighbors, err := neighborArgs(store, cmd)
	if err != nil {
		return err
	}
	base, err := s.cfg.BaseRecord()
	if err != nil {
		return err
	}
	rec, err := connectome.InjectNeighbors(base, cellID, neighbors)
	if err != nil {
		return err
	}
	if at, found := cmd.Parameter(wm.KeyAt); found {
		coords, err := wm.StringToPoint3d(at, ",")
		if err != nil {
			return err
		}
		if rec, err = connectome.RetargetView(rec, coords); err != nil {
			return err
		}
	}
	return s.emit(cmd, ngurl.Encode(rec, s.cfg.Viewer.Prefix))
}

func (s *session) doGoto(store *connectome.Store, cmd wm.Command) error {
	pre, post, err := synapseArgs(cmd)
	if err != nil {
		return err
	}
	_, locs := store.Synapses(pre, post, true)
	if len(locs) == 0 {
		return fmt.Errorf("no synapses from %d onto %d", pre, post)
	}
	index := 0
	indexStr, hasIndex := cmd.Parameter(wm.KeyIndex)
	nearStr, hasNear := cmd.Parameter(wm.KeyNear)
	switch {
	case hasIndex && hasNear:
		return fmt.Errorf("goto accepts either index or near, not both")
	case hasIndex:
		if index, err = strconv.Atoi(indexStr); err != nil {
			return fmt.Errorf("bad index %q: %v", indexStr, err)
		}
	case hasNear:
		near, err := wm.StringToPoint3d(nearStr, ",")
		if err != nil {
			return err
		}
		index = nearestSynapse(locs, near)
		wm.Debugf("Synapse %d of %d is %d voxels from %s\n", index, len(locs), locs[index].Distance(near), near)
	}
	if index < 0 || index >= len(locs) {
		return fmt.Errorf("synapse index %d out of range, %d synapses from %d onto %d", index, len(locs), pre, post)
	}
	base, err := s.cfg.BaseRecord()
	if err != nil {
		return err
	}
	rec, err := connectome.InjectNeighbors(base, pre, []uint64{post})
	if err != nil {
		return err
	}
	if rec, err = connectome.RetargetView(rec, locs[index]); err != nil {
		return err
	}
	return s.emit(cmd, ngurl.Encode(rec, s.cfg.Viewer.Prefix))
}

// nearestSynapse returns the index of the first location closest to p.
func nearestSynapse(locs []wm.Point3d, p wm.Point3d) int {
	best := 0
	for i := 1; i < len(locs); i++ {
		if locs[i].Distance(p) < locs[best].Distance(p) {
			best = i
		}
	}
	return best
}

// emit prints a URL and launches the viewer if open=true was given.
func (s *session) emit(cmd wm.Command, url string) error {
	fmt.Fprintln(s.out, url)
	open, err := cmd.BoolParameter(wm.KeyOpen)
	if err != nil {
		return err
	}
	if open {
		return s.launcher.Open(url)
	}
	return nil
}

func (s *session) doDecode(cmd wm.Command) error {
	var url string
	cmd.CommandArgs(&url)
	if url == "" {
		return fmt.Errorf("decode needs a URL")
	}
	rec, err := ngurl.Decode(url, s.prefix(cmd))
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, ngurl.Format(rec))
	return nil
}

func (s *session) doEncode(cmd wm.Command) error {
	data, err := io.ReadAll(s.in)
	if err != nil {
		return fmt.Errorf("Error in reading from standard input: %v", err)
	}
	v, err := ngurl.Parse(strings.TrimSpace(string(data)))
	if err != nil {
		return err
	}
	rec, ok := v.(*ngurl.Map)
	if !ok {
		return fmt.Errorf("viewer record must be a map")
	}
	fmt.Fprintln(s.out, ngurl.Encode(rec, s.prefix(cmd)))
	return nil
}
