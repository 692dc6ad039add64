package wm

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Point3d is an ordered list of three 32-bit signed integers.
type Point3d [3]int32

// TruncatePoint3d converts floating point coordinates into a Point3d by truncation
// toward zero.  Coordinates that do not fit into 32 bits are an error.
func TruncatePoint3d(x, y, z float64) (Point3d, error) {
	var p Point3d
	for dim, v := range [3]float64{x, y, z} {
		if math.IsNaN(v) || v >= math.MaxInt32+1 || v <= math.MinInt32-1 {
			return p, fmt.Errorf("coordinate %g in dimension %d cannot be stored as int32", v, dim)
		}
		p[dim] = int32(v)
	}
	return p, nil
}

// StringToPoint3d parses a string of three integers separated by 'separator'.
func StringToPoint3d(str, separator string) (Point3d, error) {
	elems := strings.Split(str, separator)
	if len(elems) != 3 {
		return Point3d{}, fmt.Errorf("Can't convert string %q (length %d) to Point3d", str, len(elems))
	}
	var p Point3d
	for i, elem := range elems {
		v, err := strconv.ParseInt(strings.TrimSpace(elem), 10, 32)
		if err != nil {
			return Point3d{}, fmt.Errorf("Can't convert string %q to Point3d: %v", str, err)
		}
		p[i] = int32(v)
	}
	return p, nil
}

// Int64s returns the coordinates widened to int64, the integer type used in viewer records.
func (p Point3d) Int64s() []int64 {
	return []int64{int64(p[0]), int64(p[1]), int64(p[2])}
}

// Distance returns the integer distance (rounding down).
func (p Point3d) Distance(x Point3d) int32 {
	dx := float64(p[0] - x[0])
	dy := float64(p[1] - x[1])
	dz := float64(p[2] - x[2])
	return int32(math.Sqrt(dx*dx + dy*dy + dz*dz))
}

func (p Point3d) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p[0], p[1], p[2])
}
