package wm

import (
	"path/filepath"
	"testing"

	. "github.com/janelia-flyem/go/gocheck"
)

// Hook up gocheck into the "go test" runner.
func Test(t *testing.T) { TestingT(t) }

type WMSuite struct{}

var _ = Suite(&WMSuite{})

func (s *WMSuite) TestPoint3d(c *C) {
	a := Point3d{10, 21, 837821}

	d := Point3d{1, 1, 1}
	e := Point3d{4, 4, 4}
	c.Assert(d.Distance(e), Equals, int32(5))
	c.Assert(e.Distance(d), Equals, int32(5))
	c.Assert(d.Distance(d), Equals, int32(0))

	c.Assert(a.String(), Equals, "(10,21,837821)")
	c.Assert(a.Int64s(), DeepEquals, []int64{10, 21, 837821})
}

func (s *WMSuite) TestTruncatePoint3d(c *C) {
	p, err := TruncatePoint3d(37692.63671875, 27714.02734375, 965)
	c.Assert(err, IsNil)
	c.Assert(p, Equals, Point3d{37692, 27714, 965})

	p, err = TruncatePoint3d(-1.9, 0.5, 2.99)
	c.Assert(err, IsNil)
	c.Assert(p, Equals, Point3d{-1, 0, 2})

	_, err = TruncatePoint3d(1e12, 0, 0)
	c.Assert(err, NotNil)
}

func (s *WMSuite) TestStringToPoint3d(c *C) {
	p, err := StringToPoint3d("41382,21986,755", ",")
	c.Assert(err, IsNil)
	c.Assert(p, Equals, Point3d{41382, 21986, 755})

	_, err = StringToPoint3d("1,2", ",")
	c.Assert(err, NotNil)
	_, err = StringToPoint3d("1,b,3", ",")
	c.Assert(err, NotNil)
}

func (s *WMSuite) TestCommand(c *C) {
	cmd := Command{"neighbors", "58045989", "mode=out", "type=E", "extra"}
	c.Assert(cmd.Name(), Equals, "neighbors")

	value, found := cmd.Parameter(KeyMode)
	c.Assert(found, Equals, true)
	c.Assert(value, Equals, "out")

	_, found = cmd.Parameter(KeyIndex)
	c.Assert(found, Equals, false)

	var cell string
	overflow := cmd.CommandArgs(&cell)
	c.Assert(cell, Equals, "58045989")
	c.Assert(overflow, DeepEquals, []string{"extra"})

	var a, b, z string
	cmd = Command{"synapses", "1"}
	cmd.CommandArgs(&a, &b, &z)
	c.Assert(a, Equals, "1")
	c.Assert(b, Equals, "")
}

func (s *WMSuite) TestBoolParameter(c *C) {
	open, err := Command{"url", "1", "open=true"}.BoolParameter(KeyOpen)
	c.Assert(err, IsNil)
	c.Assert(open, Equals, true)

	open, err = Command{"url", "1"}.BoolParameter(KeyOpen)
	c.Assert(err, IsNil)
	c.Assert(open, Equals, false)

	_, err = Command{"url", "1", "open=maybe"}.BoolParameter(KeyOpen)
	c.Assert(err, NotNil)
}

func (s *WMSuite) TestParseSegment(c *C) {
	id, err := ParseSegment("131506448")
	c.Assert(err, IsNil)
	c.Assert(id, Equals, uint64(131506448))

	_, err = ParseSegment("-3")
	c.Assert(err, NotNil)
}

func (s *WMSuite) TestConvertToAbsolute(c *C) {
	p, err := ConvertToAbsolute("/abs/edges.csv", "/base")
	c.Assert(err, IsNil)
	c.Assert(p, Equals, "/abs/edges.csv")

	p, err = ConvertToAbsolute("data/edges.csv", "/base")
	c.Assert(err, IsNil)
	c.Assert(p, Equals, filepath.Join("/base", "data", "edges.csv"))

	p, err = ConvertToAbsolute("", "/base")
	c.Assert(err, IsNil)
	c.Assert(p, Equals, "")
}

func (s *WMSuite) TestLogMode(c *C) {
	old := LogMode()
	defer SetLogMode(old)

	SetLogMode(SilentMode)
	c.Assert(LogMode(), Equals, SilentMode)
	Criticalf("should not be written %d\n", 1)
}

func (s *WMSuite) TestTimeLog(c *C) {
	old := LogMode()
	defer SetLogMode(old)

	SetLogMode(SilentMode)
	timedLog := NewTimeLog()
	timedLog.Debugf("hidden %d", 1)
	timedLog.Infof("hidden %d", 2)
}
