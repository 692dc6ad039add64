package ngurl

import (
	"fmt"
	"math"
	"strings"
)

// Value is any node of a viewer record: *Map, List, string, int64, uint64, float64,
// bool, or nil.  uint64 is only used for integers too large for int64.
type Value interface{}

// List is an ordered sequence of values.
type List []Value

// Map is a string-keyed map that remembers insertion order, so a decoded record
// is re-encoded with its keys in the order they appeared in the URL.
type Map struct {
	keys []string
	vals map[string]Value
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{vals: make(map[string]Value)}
}

// Len returns the number of keys.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return nil, false
	}
	v, found := m.vals[key]
	return v, found
}

// Set stores a value.  A new key is appended to the key order while an existing
// key keeps its position.
func (m *Map) Set(key string, v Value) {
	if m.vals == nil {
		m.vals = make(map[string]Value)
	}
	if _, found := m.vals[key]; !found {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = v
}

// Delete removes a key if present.
func (m *Map) Delete(key string) {
	if _, found := m.vals[key]; !found {
		return
	}
	delete(m.vals, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Clone returns a deep copy of the map.
func (m *Map) Clone() *Map {
	if m == nil {
		return nil
	}
	c := &Map{
		keys: make([]string, len(m.keys)),
		vals: make(map[string]Value, len(m.vals)),
	}
	copy(c.keys, m.keys)
	for k, v := range m.vals {
		c.vals[k] = Clone(v)
	}
	return c
}

func (m *Map) String() string {
	return Format(m)
}

// Clone returns a deep copy of any record value.  Scalars are immutable and returned as is.
func Clone(v Value) Value {
	switch t := v.(type) {
	case *Map:
		return t.Clone()
	case List:
		if t == nil {
			return List(nil)
		}
		c := make(List, len(t))
		for i, elem := range t {
			c[i] = Clone(elem)
		}
		return c
	default:
		return v
	}
}

// Int returns the record value for an unsigned id, using int64 whenever it fits.
func Int(id uint64) Value {
	if id <= math.MaxInt64 {
		return int64(id)
	}
	return id
}

// Equal reports whether two record values are deeply equal.  Maps compare as
// dictionaries without regard to key order; int64 and uint64 compare by value.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case *Map:
		y, ok := b.(*Map)
		if !ok || x.Len() != y.Len() {
			return false
		}
		if x == nil || y == nil {
			return x == nil && y == nil
		}
		for k, xv := range x.vals {
			yv, found := y.vals[k]
			if !found || !Equal(xv, yv) {
				return false
			}
		}
		return true
	case List:
		y, ok := b.(List)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case int64:
		switch y := b.(type) {
		case int64:
			return x == y
		case uint64:
			return x >= 0 && uint64(x) == y
		}
		return false
	case uint64:
		switch y := b.(type) {
		case uint64:
			return x == y
		case int64:
			return y >= 0 && uint64(y) == x
		}
		return false
	case float64:
		y, ok := b.(float64)
		if !ok {
			return false
		}
		return x == y || (math.IsNaN(x) && math.IsNaN(y))
	default:
		return a == b
	}
}

// Lookup follows a path of map keys from m and returns the value found there.
func Lookup(m *Map, path ...string) (Value, bool) {
	var cur Value = m
	for _, key := range path {
		cm, ok := cur.(*Map)
		if !ok {
			return nil, false
		}
		if cur, ok = cm.Get(key); !ok {
			return nil, false
		}
	}
	return cur, true
}

// SetPath replaces the value at the end of a path of map keys.  Every map along
// the path except the final key must already exist.
func SetPath(m *Map, v Value, path ...string) error {
	if len(path) == 0 {
		return fmt.Errorf("empty path given for record update")
	}
	parent, found := Lookup(m, path[:len(path)-1]...)
	if !found {
		return fmt.Errorf("record has no %q", strings.Join(path[:len(path)-1], "."))
	}
	pm, ok := parent.(*Map)
	if !ok || pm == nil {
		return fmt.Errorf("record value at %q is not a map", strings.Join(path[:len(path)-1], "."))
	}
	pm.Set(path[len(path)-1], v)
	return nil
}

// With returns a copy of m with the value at path replaced.  m is not modified.
func With(m *Map, v Value, path ...string) (*Map, error) {
	c := m.Clone()
	if c == nil {
		return nil, fmt.Errorf("cannot update a nil record")
	}
	if err := SetPath(c, v, path...); err != nil {
		return nil, err
	}
	return c, nil
}
