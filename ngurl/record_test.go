package ngurl

import (
	check "github.com/janelia-flyem/go/gocheck"
)

func navigationRecord() *Map {
	position := NewMap()
	position.Set("voxelSize", List{int64(4), int64(4), int64(40)})
	position.Set("voxelCoordinates", List{int64(41382), int64(21986), int64(755)})
	pose := NewMap()
	pose.Set("position", position)
	nav := NewMap()
	nav.Set("pose", pose)
	nav.Set("zoomFactor", 1.8315638888734185)
	rec := NewMap()
	rec.Set("navigation", nav)
	return rec
}

func (s *CodecSuite) TestMapOrder(c *check.C) {
	m := NewMap()
	m.Set("b", int64(1))
	m.Set("a", int64(2))
	m.Set("b", int64(3))
	c.Assert(m.Keys(), check.DeepEquals, []string{"b", "a"})
	v, _ := m.Get("b")
	c.Assert(v, check.Equals, int64(3))

	m.Delete("b")
	m.Delete("nothing")
	c.Assert(m.Keys(), check.DeepEquals, []string{"a"})
	c.Assert(m.Len(), check.Equals, 1)

	var zero Map
	zero.Set("x", true)
	c.Assert(zero.Len(), check.Equals, 1)
}

func (s *CodecSuite) TestCloneIsDeep(c *check.C) {
	rec := navigationRecord()
	cp := rec.Clone()
	c.Assert(Equal(cp, rec), check.Equals, true)

	coords, _ := Lookup(cp, "navigation", "pose", "position", "voxelCoordinates")
	coords.(List)[0] = int64(0)

	orig, _ := Lookup(rec, "navigation", "pose", "position", "voxelCoordinates")
	c.Assert(orig.(List)[0], check.Equals, int64(41382))
	c.Assert(Equal(cp, rec), check.Equals, false)
}

func (s *CodecSuite) TestWithLeavesOriginal(c *check.C) {
	rec := navigationRecord()
	moved, err := With(rec, List{int64(1), int64(2), int64(3)}, "navigation", "pose", "position", "voxelCoordinates")
	c.Assert(err, check.IsNil)

	coords, _ := Lookup(moved, "navigation", "pose", "position", "voxelCoordinates")
	c.Assert(coords, check.DeepEquals, List{int64(1), int64(2), int64(3)})
	coords, _ = Lookup(rec, "navigation", "pose", "position", "voxelCoordinates")
	c.Assert(coords, check.DeepEquals, List{int64(41382), int64(21986), int64(755)})

	zoom, _ := Lookup(moved, "navigation", "zoomFactor")
	c.Assert(zoom, check.Equals, 1.8315638888734185)
}

func (s *CodecSuite) TestSetPathErrors(c *check.C) {
	rec := navigationRecord()
	c.Assert(SetPath(rec, int64(1)), check.NotNil)
	c.Assert(SetPath(rec, int64(1), "layers", "segmentation", "segments"), check.NotNil)
	c.Assert(SetPath(rec, int64(1), "navigation", "zoomFactor", "x"), check.NotNil)
	c.Assert(SetPath(rec, int64(2), "navigation", "zoomFactor"), check.IsNil)

	_, err := With(nil, int64(1), "a")
	c.Assert(err, check.NotNil)
}

func (s *CodecSuite) TestEqualNumbers(c *check.C) {
	c.Assert(Equal(int64(5), uint64(5)), check.Equals, true)
	c.Assert(Equal(uint64(5), int64(5)), check.Equals, true)
	c.Assert(Equal(int64(-1), uint64(18446744073709551615)), check.Equals, false)
	c.Assert(Equal(int64(5), 5.0), check.Equals, false)
	c.Assert(Equal(List{"a"}, List{"a"}), check.Equals, true)
	c.Assert(Equal(List{"a"}, List{"b"}), check.Equals, false)
	c.Assert(Int(7), check.Equals, Value(int64(7)))
	c.Assert(Int(1<<63), check.Equals, Value(uint64(1<<63)))
}
