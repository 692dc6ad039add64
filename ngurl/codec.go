package ngurl

import (
	"strings"
	"unicode"
)

const (
	// DefaultPrefix precedes the encoded record in neuroglancer demo URLs.
	DefaultPrefix = "https://neuroglancer-demo.appspot.com/#!"

	// Separator stands in for every comma of the record text within a URL.
	Separator = "_"

	// StateMarker ends the prefix of every neuroglancer state URL.
	StateMarker = "#!"
)

// sourcePaths are the only record strings whose underscores survive decoding.
// Data source URLs carry underscores of their own, so the comma substitution
// applied to the whole URL is undone for exactly these values.
var sourcePaths = [][]string{
	{"layers", "image", "source"},
	{"layers", "segmentation", "source"},
}

// Decode converts a viewer URL into a record.  The URL must begin with prefix.
//
// Every underscore in the URL is read as a comma.  Ordinary string values holding
// an underscore, comma or whitespace therefore do not survive an Encode/Decode
// round trip; only the layer source strings listed in sourcePaths are restored.
func Decode(url, prefix string) (*Map, error) {
	if !strings.HasPrefix(url, prefix) {
		return nil, &FormatError{Offset: -1, Msg: "URL does not begin with prefix " + prefix}
	}
	text := strings.ReplaceAll(url[len(prefix):], Separator, ",")
	v, err := Parse(text)
	if err != nil {
		return nil, err
	}
	m, ok := v.(*Map)
	if !ok {
		return nil, &FormatError{Offset: 0, Msg: "viewer state must be a map, got " + Format(v)}
	}
	for _, path := range sourcePaths {
		src, found := Lookup(m, path...)
		if !found {
			continue
		}
		if s, ok := src.(string); ok {
			if err := SetPath(m, strings.ReplaceAll(s, ",", Separator), path...); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// SplitPrefix returns the part of a viewer URL up to and including the first
// StateMarker.  found is false if the URL has no marker.
func SplitPrefix(url string) (prefix string, found bool) {
	i := strings.Index(url, StateMarker)
	if i < 0 {
		return "", false
	}
	return url[:i+len(StateMarker)], true
}

// Encode converts a record into a viewer URL: the canonical record text with commas
// replaced by underscores and all whitespace removed, preceded by prefix.
func Encode(m *Map, prefix string) string {
	text := strings.ReplaceAll(Format(m), ",", Separator)
	text = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
	return prefix + text
}
