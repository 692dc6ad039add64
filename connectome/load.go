package connectome

import (
	"bufio"
	"context"
	stdcsv "encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/apache/arrow/go/v14/arrow"
	"github.com/apache/arrow/go/v14/arrow/array"
	"github.com/apache/arrow/go/v14/arrow/csv"
	"github.com/apache/arrow/go/v14/arrow/memory"
	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/sync/errgroup"

	"github.com/janelia-flyem/wintermute/wm"
)

// Column names of the synapse edge table.
const (
	ColEdgeID = "ids"
	ColPre    = "segs_1"
	ColPost   = "segs_2"
	ColX      = "locs_1"
	ColY      = "locs_2"
	ColZ      = "locs_3"
)

// Column names of the cell table.
const (
	ColCellID   = "cell_id"
	ColCellType = "cell_type"
)

// rows per arrow record batch
const chunkSize = 8192

var edgeSchema = map[string]arrow.DataType{
	ColEdgeID: arrow.PrimitiveTypes.Int64,
	ColPre:    arrow.PrimitiveTypes.Uint64,
	ColPost:   arrow.PrimitiveTypes.Uint64,
	ColX:      arrow.PrimitiveTypes.Float64,
	ColY:      arrow.PrimitiveTypes.Float64,
	ColZ:      arrow.PrimitiveTypes.Float64,
}

var cellSchema = map[string]arrow.DataType{
	ColCellID:   arrow.PrimitiveTypes.Uint64,
	ColCellType: arrow.BinaryTypes.String,
}

var (
	edgeColumns = []string{ColEdgeID, ColPre, ColPost, ColX, ColY, ColZ}
	cellColumns = []string{ColCellID, ColCellType}
)

// tableReader streams a delimited table with a header line into arrow records,
// forcing the types of the required columns.  Other columns are read as strings.
type tableReader struct {
	name     string
	comma    rune
	types    map[string]arrow.DataType
	required []string
}

// read calls fn for every record batch.  cols maps column names to indices.
func (t tableReader) read(ctx context.Context, r io.Reader, fn func(rec arrow.Record, cols map[string]int) error) error {
	br := bufio.NewReader(r)
	line, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return fmt.Errorf("unable to read %s table header: %v", t.name, err)
	}
	hr := stdcsv.NewReader(strings.NewReader(line))
	hr.Comma = t.comma
	header, err := hr.Read()
	if err != nil {
		if err == io.EOF {
			return &DataFormatError{Table: t.name, Missing: t.required}
		}
		return &DataFormatError{Table: t.name, Msg: fmt.Sprintf("bad header: %v", err)}
	}

	fields := make([]arrow.Field, len(header))
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		dtype, found := t.types[name]
		if _, dup := cols[name]; dup || name == "" {
			name = fmt.Sprintf("column_%d", i)
			dtype, found = nil, false
		} else {
			cols[name] = i
		}
		if !found {
			dtype = arrow.BinaryTypes.String
		}
		fields[i] = arrow.Field{Name: name, Type: dtype, Nullable: true}
	}
	var missing []string
	for _, name := range t.required {
		if _, found := cols[name]; !found {
			missing = append(missing, name)
		}
	}
	if len(missing) != 0 {
		return &DataFormatError{Table: t.name, Missing: missing}
	}

	rdr := csv.NewReader(br, arrow.NewSchema(fields, nil),
		csv.WithComma(t.comma),
		csv.WithChunk(chunkSize),
		csv.WithAllocator(memory.NewGoAllocator()),
	)
	defer rdr.Release()

	var rows int64
	for rdr.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if rdr.Err() != nil {
			break
		}
		rec := rdr.Record()
		if err := fn(rec, cols); err != nil {
			return err
		}
		rows += rec.NumRows()
	}
	if err := rdr.Err(); err != nil {
		return &DataFormatError{Table: t.name, Msg: fmt.Sprintf("after %d rows: %v", rows, err)}
	}
	return nil
}

func nullError(table, column string, row int64) error {
	return &DataFormatError{Table: table, Msg: fmt.Sprintf("missing %s value in row %d", column, row+1)}
}

// LoadEdges reads a synapse edge table.  Locations are truncated to integers.
func LoadEdges(ctx context.Context, r io.Reader, comma rune) ([]Edge, error) {
	t := tableReader{name: "edge", comma: comma, types: edgeSchema, required: edgeColumns}
	var edges []Edge
	err := t.read(ctx, r, func(rec arrow.Record, cols map[string]int) error {
		ids := rec.Column(cols[ColEdgeID]).(*array.Int64)
		pre := rec.Column(cols[ColPre]).(*array.Uint64)
		post := rec.Column(cols[ColPost]).(*array.Uint64)
		xs := rec.Column(cols[ColX]).(*array.Float64)
		ys := rec.Column(cols[ColY]).(*array.Float64)
		zs := rec.Column(cols[ColZ]).(*array.Float64)
		base := int64(len(edges))
		for i := 0; i < int(rec.NumRows()); i++ {
			for _, col := range edgeColumns {
				if rec.Column(cols[col]).IsNull(i) {
					return nullError("edge", col, base+int64(i))
				}
			}
			loc, err := wm.TruncatePoint3d(xs.Value(i), ys.Value(i), zs.Value(i))
			if err != nil {
				return &DataFormatError{Table: "edge", Msg: fmt.Sprintf("row %d: %v", base+int64(i)+1, err)}
			}
			edges = append(edges, Edge{
				ID:       ids.Value(i),
				Pre:      pre.Value(i),
				Post:     post.Value(i),
				Location: loc,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return edges, nil
}

// LoadCells reads a cell table.  Cell types other than "E" and "I" load as UnknownType.
func LoadCells(ctx context.Context, r io.Reader, comma rune) ([]Cell, error) {
	t := tableReader{name: "cell", comma: comma, types: cellSchema, required: cellColumns}
	var cells []Cell
	err := t.read(ctx, r, func(rec arrow.Record, cols map[string]int) error {
		ids := rec.Column(cols[ColCellID]).(*array.Uint64)
		types := rec.Column(cols[ColCellType]).(*array.String)
		for i := 0; i < int(rec.NumRows()); i++ {
			if ids.IsNull(i) {
				return nullError("cell", ColCellID, int64(len(cells)))
			}
			cellType := UnknownType
			if !types.IsNull(i) {
				cellType = ParseCellType(types.Value(i))
			}
			cells = append(cells, Cell{ID: ids.Value(i), Type: cellType})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cells, nil
}

// trimCompression strips a compression extension from a file name.
func trimCompression(path string) string {
	switch ext := filepath.Ext(path); ext {
	case ".gz", ".zst":
		return strings.TrimSuffix(path, ext)
	}
	return path
}

// Delimiter returns the field delimiter implied by a table file name:
// tab for .tsv files, comma otherwise.
func Delimiter(path string) rune {
	if strings.EqualFold(filepath.Ext(trimCompression(path)), ".tsv") {
		return '\t'
	}
	return ','
}

type multiCloser struct {
	io.Reader
	closers []io.Closer
}

func (m multiCloser) Close() error {
	var first error
	for _, c := range m.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// OpenTable opens a table file, decompressing .gz and .zst files on the fly.
func OpenTable(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	switch filepath.Ext(path) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("unable to read gzip file %q: %v", path, err)
		}
		return multiCloser{zr, []io.Closer{zr, f}}, nil
	case ".zst":
		dec, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("unable to read zstd file %q: %v", path, err)
		}
		rc := dec.IOReadCloser()
		return multiCloser{rc, []io.Closer{rc, f}}, nil
	}
	return f, nil
}

// LoadEdgesFile reads the edge table at path.
func LoadEdgesFile(ctx context.Context, path string) ([]Edge, error) {
	f, err := OpenTable(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	edges, err := LoadEdges(ctx, f, Delimiter(path))
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", path, err)
	}
	return edges, nil
}

// LoadCellsFile reads the cell table at path.
func LoadCellsFile(ctx context.Context, path string) ([]Cell, error) {
	f, err := OpenTable(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cells, err := LoadCells(ctx, f, Delimiter(path))
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", path, err)
	}
	return cells, nil
}

// Load reads the edge and cell tables concurrently and builds a Store.
func Load(ctx context.Context, edgePath, cellPath string) (*Store, error) {
	timedLog := wm.NewTimeLog()

	var edges []Edge
	var cells []Cell
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		edges, err = LoadEdgesFile(gctx, edgePath)
		return err
	})
	g.Go(func() error {
		var err error
		cells, err = LoadCellsFile(gctx, cellPath)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	store := NewStore(edges, cells)
	timedLog.Infof("Loaded %s synapses and %s cells", humanize.Comma(int64(store.NumEdges())), humanize.Comma(int64(store.NumCells())))
	if wm.LogMode() <= wm.DebugMode {
		st := store.Stats()
		timedLog.Debugf("%s synapses leave known cells, %s arrive at known cells, store uses %s",
			humanize.Comma(int64(st.OutgoingEdges)), humanize.Comma(int64(st.IncomingEdges)), humanize.Bytes(uint64(st.Bytes)))
	}
	return store, nil
}
