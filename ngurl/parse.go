package ngurl

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// maxDepth bounds nesting so hostile input cannot exhaust the stack.
const maxDepth = 256

// FormatError describes a viewer URL or record literal that cannot be decoded.
// Offset is the byte position within the record text (after the prefix), or -1.
type FormatError struct {
	Offset int
	Msg    string
}

func (e *FormatError) Error() string {
	if e.Offset < 0 {
		return "bad viewer record: " + e.Msg
	}
	return fmt.Sprintf("bad viewer record at offset %d: %s", e.Offset, e.Msg)
}

// Parse reads a record literal: maps with string keys, lists, quoted strings,
// integers, floats, booleans and null.  Tuples are read as lists.  Nothing in the input is ever executed.
func Parse(text string) (Value, error) {
	p := &parser{s: text}
	v, err := p.value(0)
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.s) {
		return nil, p.errorf("unexpected %q after record", p.s[p.pos])
	}
	return v, nil
}

type parser struct {
	s   string
	pos int
}

func (p *parser) errorf(format string, args ...interface{}) *FormatError {
	return &FormatError{Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.s) {
		switch p.s[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

// peek returns the next non-space byte or 0 at end of input.
func (p *parser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.s) {
		return 0
	}
	return p.s[p.pos]
}

func (p *parser) value(depth int) (Value, error) {
	if depth > maxDepth {
		return nil, p.errorf("record nested deeper than %d levels", maxDepth)
	}
	c := p.peek()
	switch {
	case c == 0:
		return nil, p.errorf("unexpected end of record")
	case c == '{':
		return p.mapValue(depth)
	case c == '[':
		return p.listValue(depth, ']')
	case c == '(':
		return p.listValue(depth, ')')
	case c == '\'' || c == '"':
		return p.stringValue()
	case c == '-' || c == '+' || c == '.' || isDigit(c):
		return p.numberValue()
	case isLetter(c):
		return p.wordValue()
	default:
		return nil, p.errorf("unexpected %q", c)
	}
}

func (p *parser) mapValue(depth int) (Value, error) {
	p.pos++ // '{'
	m := NewMap()
	for {
		if p.peek() == '}' {
			p.pos++
			return m, nil
		}
		keyPos := p.pos
		key, err := p.value(depth + 1)
		if err != nil {
			return nil, err
		}
		skey, ok := key.(string)
		if !ok {
			return nil, &FormatError{Offset: keyPos, Msg: fmt.Sprintf("map key must be a string, got %s", Format(key))}
		}
		if p.peek() != ':' {
			return nil, p.errorf("expected ':' after map key %q", skey)
		}
		p.pos++
		v, err := p.value(depth + 1)
		if err != nil {
			return nil, err
		}
		m.Set(skey, v)
		switch p.peek() {
		case ',':
			p.pos++
		case '}':
		case 0:
			return nil, p.errorf("unterminated map")
		default:
			return nil, p.errorf("expected ',' or '}' in map, got %q", p.s[p.pos])
		}
	}
}

func (p *parser) listValue(depth int, end byte) (Value, error) {
	p.pos++ // '[' or '('
	l := List{}
	for {
		if p.peek() == end {
			p.pos++
			return l, nil
		}
		v, err := p.value(depth + 1)
		if err != nil {
			return nil, err
		}
		l = append(l, v)
		switch c := p.peek(); c {
		case ',':
			p.pos++
		case end:
		case 0:
			return nil, p.errorf("unterminated list")
		default:
			return nil, p.errorf("expected ',' or %q in list, got %q", end, c)
		}
	}
}

func (p *parser) stringValue() (Value, error) {
	start := p.pos
	quote := p.s[p.pos]
	p.pos++
	var b strings.Builder
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		switch {
		case c == quote:
			p.pos++
			return b.String(), nil
		case c == '\\':
			if p.pos+1 >= len(p.s) {
				return nil, p.errorf("unterminated escape")
			}
			esc := p.s[p.pos+1]
			p.pos += 2
			switch esc {
			case '\\', '\'', '"':
				b.WriteByte(esc)
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case 'x':
				if p.pos+2 > len(p.s) {
					return nil, p.errorf("truncated \\x escape")
				}
				n, err := strconv.ParseUint(p.s[p.pos:p.pos+2], 16, 8)
				if err != nil {
					return nil, p.errorf("bad \\x escape %q", p.s[p.pos:p.pos+2])
				}
				b.WriteRune(rune(n))
				p.pos += 2
			default:
				// unknown escapes are kept verbatim
				b.WriteByte('\\')
				b.WriteByte(esc)
			}
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return nil, &FormatError{Offset: start, Msg: "unterminated string"}
}

func (p *parser) numberValue() (Value, error) {
	start := p.pos
	if c := p.s[p.pos]; c == '-' || c == '+' {
		p.pos++
	}
	if p.pos < len(p.s) && isLetter(p.s[p.pos]) {
		word := p.word()
		if word == "inf" || word == "Infinity" {
			if p.s[start] == '-' {
				return math.Inf(-1), nil
			}
			return math.Inf(1), nil
		}
		return nil, &FormatError{Offset: start, Msg: fmt.Sprintf("bad number %q", p.s[start:p.pos])}
	}
	isFloat := false
	digits := 0
scan:
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		switch {
		case isDigit(c):
			digits++
		case c == '.':
			isFloat = true
		case c == 'e' || c == 'E':
			isFloat = true
			if p.pos+1 < len(p.s) && (p.s[p.pos+1] == '-' || p.s[p.pos+1] == '+') {
				p.pos++
			}
		default:
			break scan
		}
		p.pos++
	}
	text := p.s[start:p.pos]
	if digits == 0 {
		return nil, &FormatError{Offset: start, Msg: fmt.Sprintf("bad number %q", text)}
	}
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, &FormatError{Offset: start, Msg: fmt.Sprintf("bad float %q", text)}
		}
		return f, nil
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err == nil {
		return i, nil
	}
	if text[0] != '-' {
		if u, uerr := strconv.ParseUint(strings.TrimPrefix(text, "+"), 10, 64); uerr == nil {
			return u, nil
		}
	}
	return nil, &FormatError{Offset: start, Msg: fmt.Sprintf("integer %q out of range", text)}
}

func (p *parser) word() string {
	start := p.pos
	for p.pos < len(p.s) && isLetter(p.s[p.pos]) {
		p.pos++
	}
	return p.s[start:p.pos]
}

func (p *parser) wordValue() (Value, error) {
	start := p.pos
	switch word := p.word(); word {
	case "false", "False":
		return false, nil
	case "true", "True":
		return true, nil
	case "None", "null":
		return nil, nil
	case "inf", "Infinity":
		return math.Inf(1), nil
	case "nan", "NaN":
		return math.NaN(), nil
	default:
		return nil, &FormatError{Offset: start, Msg: fmt.Sprintf("unknown word %q", word)}
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
