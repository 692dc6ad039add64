package ngurl

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Format returns the canonical text of a record value: maps in insertion order as
// {'key': value, ...}, lists as [a, b], single-quoted strings, and floats that always
// carry a decimal point or exponent so they decode as floats again.  Booleans and
// null use the viewer spellings false, true and null.
func Format(v Value) string {
	var b strings.Builder
	writeValue(&b, v)
	return b.String()
}

func writeValue(b *strings.Builder, v Value) {
	switch t := v.(type) {
	case nil:
		b.WriteString("null")
	case *Map:
		if t == nil {
			b.WriteString("null")
			return
		}
		b.WriteByte('{')
		for i, k := range t.keys {
			if i != 0 {
				b.WriteString(", ")
			}
			writeString(b, k)
			b.WriteString(": ")
			writeValue(b, t.vals[k])
		}
		b.WriteByte('}')
	case List:
		b.WriteByte('[')
		for i, elem := range t {
			if i != 0 {
				b.WriteString(", ")
			}
			writeValue(b, elem)
		}
		b.WriteByte(']')
	case string:
		writeString(b, t)
	case bool:
		if t {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case int64:
		b.WriteString(strconv.FormatInt(t, 10))
	case uint64:
		b.WriteString(strconv.FormatUint(t, 10))
	case int:
		b.WriteString(strconv.Itoa(t))
	case float64:
		b.WriteString(formatFloat(t))
	default:
		// Values outside the record model are written as quoted text.
		writeString(b, fmt.Sprint(t))
	}
}

// writeString quotes with ' unless the string holds ' but no ".
func writeString(b *strings.Builder, s string) {
	quote := byte('\'')
	if strings.IndexByte(s, '\'') >= 0 && strings.IndexByte(s, '"') < 0 {
		quote = '"'
	}
	b.WriteByte(quote)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == quote || c == '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\t':
			b.WriteString(`\t`)
		case c == '\r':
			b.WriteString(`\r`)
		case c < 0x20 || c == 0x7f:
			fmt.Fprintf(b, `\x%02x`, c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte(quote)
}

// formatFloat writes the shortest representation that parses back to f, switching
// to exponent notation for exponents below -4 or from 16 up.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case f == 0:
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mark := strings.IndexByte(s, 'e')
	exp, err := strconv.Atoi(s[mark+1:])
	if err == nil && (exp < -4 || exp >= 16) {
		return s
	}
	s = strconv.FormatFloat(f, 'f', -1, 64)
	if strings.IndexByte(s, '.') < 0 {
		s += ".0"
	}
	return s
}
