package connectome

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	. "github.com/janelia-flyem/go/gocheck"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/janelia-flyem/wintermute/wm"
)

// Tables as written by pandas, with the unnamed index column first.
const edgeCSV = `,ids,segs_1,segs_2,locs_1,locs_2,locs_3,size
0,1,10,20,1.0,2.0,3.0,55
1,2,10,20,37692.63671875,27714.02734375,965.0,12
2,3,20,10,7,8,9,40
`

const cellCSV = `cell_id,cell_type
10,E
20,I
30,?
`

func (s *StoreSuite) TestLoadEdges(c *C) {
	edges, err := LoadEdges(context.Background(), strings.NewReader(edgeCSV), ',')
	c.Assert(err, IsNil)
	c.Assert(edges, DeepEquals, []Edge{
		{ID: 1, Pre: 10, Post: 20, Location: wm.Point3d{1, 2, 3}},
		{ID: 2, Pre: 10, Post: 20, Location: wm.Point3d{37692, 27714, 965}},
		{ID: 3, Pre: 20, Post: 10, Location: wm.Point3d{7, 8, 9}},
	})
}

func (s *StoreSuite) TestLoadCells(c *C) {
	cells, err := LoadCells(context.Background(), strings.NewReader(cellCSV), ',')
	c.Assert(err, IsNil)
	c.Assert(cells, DeepEquals, []Cell{
		{ID: 10, Type: Excitatory},
		{ID: 20, Type: Inhibitory},
		{ID: 30, Type: UnknownType},
	})
}

func (s *StoreSuite) TestLoadTSV(c *C) {
	tsv := "cell_id\tcell_type\n10\tE\n"
	cells, err := LoadCells(context.Background(), strings.NewReader(tsv), '\t')
	c.Assert(err, IsNil)
	c.Assert(cells, DeepEquals, []Cell{{ID: 10, Type: Excitatory}})
	c.Assert(Delimiter("cells.tsv.gz"), Equals, '\t')
	c.Assert(Delimiter("cells.csv.zst"), Equals, ',')
	c.Assert(Delimiter("cells"), Equals, ',')
}

func (s *StoreSuite) TestHeaderOnly(c *C) {
	cells, err := LoadCells(context.Background(), strings.NewReader("cell_id,cell_type\n"), ',')
	c.Assert(err, IsNil)
	c.Assert(cells, HasLen, 0)
}

func (s *StoreSuite) TestMissingColumns(c *C) {
	_, err := LoadEdges(context.Background(), strings.NewReader("ids,segs_1,segs_2,locs_1\n1,2,3,4\n"), ',')
	var dfErr *DataFormatError
	c.Assert(errors.As(err, &dfErr), Equals, true)
	c.Assert(dfErr.Missing, DeepEquals, []string{ColY, ColZ})
	c.Assert(err, ErrorMatches, "edge table is missing required column.*locs_2, locs_3")

	_, err = LoadCells(context.Background(), strings.NewReader("cell_id\n1\n"), ',')
	c.Assert(errors.As(err, &dfErr), Equals, true)
	c.Assert(dfErr.Missing, DeepEquals, []string{ColCellType})

	_, err = LoadCells(context.Background(), strings.NewReader(""), ',')
	c.Assert(errors.As(err, &dfErr), Equals, true)
	c.Assert(dfErr.Missing, DeepEquals, []string{ColCellID, ColCellType})
}

func (s *StoreSuite) TestBadValues(c *C) {
	bad := []string{
		"ids,segs_1,segs_2,locs_1,locs_2,locs_3\n1,ten,20,1,2,3\n",
		"ids,segs_1,segs_2,locs_1,locs_2,locs_3\n1,10,20,1,2\n",
		"ids,segs_1,segs_2,locs_1,locs_2,locs_3\n1,10,,1,2,3\n",
		"ids,segs_1,segs_2,locs_1,locs_2,locs_3\n1,10,20,1e20,2,3\n",
	}
	for _, table := range bad {
		_, err := LoadEdges(context.Background(), strings.NewReader(table), ',')
		var dfErr *DataFormatError
		c.Assert(errors.As(err, &dfErr), Equals, true, Commentf("table %q gave %v", table, err))
	}
}

func (s *StoreSuite) TestCanceledLoad(c *C) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := LoadEdges(ctx, strings.NewReader(edgeCSV), ',')
	c.Assert(errors.Is(err, context.Canceled), Equals, true)
}

func writeGzip(c *C, path, data string) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(data))
	c.Assert(err, IsNil)
	c.Assert(zw.Close(), IsNil)
	c.Assert(os.WriteFile(path, buf.Bytes(), 0644), IsNil)
}

func writeZstd(c *C, path, data string) {
	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	c.Assert(err, IsNil)
	_, err = zw.Write([]byte(data))
	c.Assert(err, IsNil)
	c.Assert(zw.Close(), IsNil)
	c.Assert(os.WriteFile(path, buf.Bytes(), 0644), IsNil)
}

func (s *StoreSuite) TestLoadFiles(c *C) {
	old := wm.LogMode()
	wm.SetLogMode(wm.SilentMode)
	defer wm.SetLogMode(old)

	dir := c.MkDir()
	plainEdges := filepath.Join(dir, "edges.csv")
	gzEdges := filepath.Join(dir, "edges.csv.gz")
	zstCells := filepath.Join(dir, "cells.csv.zst")
	plainCells := filepath.Join(dir, "cells.csv")
	c.Assert(os.WriteFile(plainEdges, []byte(edgeCSV), 0644), IsNil)
	c.Assert(os.WriteFile(plainCells, []byte(cellCSV), 0644), IsNil)
	writeGzip(c, gzEdges, edgeCSV)
	writeZstd(c, zstCells, cellCSV)

	plain, err := Load(context.Background(), plainEdges, plainCells)
	c.Assert(err, IsNil)
	compressed, err := Load(context.Background(), gzEdges, zstCells)
	c.Assert(err, IsNil)

	c.Assert(compressed.NumEdges(), Equals, 3)
	c.Assert(compressed.NumCells(), Equals, 3)
	for _, cell := range []uint64{10, 20} {
		for _, mode := range []Mode{ModeAll, ModeIn, ModeOut} {
			want, err := plain.Neighbors(cell, mode)
			c.Assert(err, IsNil)
			got, err := compressed.Neighbors(cell, mode)
			c.Assert(err, IsNil)
			c.Assert(got, DeepEquals, want)
		}
	}
	ids, locs := compressed.Synapses(10, 20, true)
	c.Assert(ids, DeepEquals, []int64{1, 2})
	c.Assert(locs, DeepEquals, []wm.Point3d{{1, 2, 3}, {37692, 27714, 965}})

	_, err = Load(context.Background(), filepath.Join(dir, "nothing.csv"), plainCells)
	c.Assert(err, NotNil)

	badCells := filepath.Join(dir, "bad.csv")
	c.Assert(os.WriteFile(badCells, []byte("id,type\n1,E\n"), 0644), IsNil)
	_, err = Load(context.Background(), plainEdges, badCells)
	var dfErr *DataFormatError
	c.Assert(errors.As(err, &dfErr), Equals, true)
}
