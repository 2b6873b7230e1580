package eventfile

import (
	"strconv"
	"strings"
)

// Segment is a single step in a location path: either an object key or
// an array index.
type Segment struct {
	key     string
	index   int
	isIndex bool
}

// KeySegment returns a segment addressing an object member.
func KeySegment(key string) Segment {
	return Segment{key: key}
}

// IndexSegment returns a segment addressing an array element.
func IndexSegment(index int) Segment {
	return Segment{index: index, isIndex: true}
}

// IsIndex reports whether the segment addresses an array element.
func (s Segment) IsIndex() bool { return s.isIndex }

// Key returns the object key, or "" for index segments.
func (s Segment) Key() string { return s.key }

// Index returns the array index, or 0 for key segments.
func (s Segment) Index() int { return s.index }

func (s Segment) String() string {
	if s.isIndex {
		return strconv.Itoa(s.index)
	}
	return s.key
}

// Path locates a value within an event file document as the sequence of
// keys and indices traversed from the root.
type Path []Segment

// Key returns a copy of p extended by an object key. The receiver is
// left untouched, so sibling traversals never observe each other's
// extensions.
func (p Path) Key(key string) Path {
	return p.extend(KeySegment(key))
}

// Index returns a copy of p extended by an array index.
func (p Path) Index(index int) Path {
	return p.extend(IndexSegment(index))
}

func (p Path) extend(s Segment) Path {
	next := make(Path, len(p), len(p)+1)
	copy(next, p)
	return append(next, s)
}

// String renders the path as a JSON-pointer-like location, e.g.
// "/evt1/Tracks/0/pos". The root path renders as "/".
func (p Path) String() string {
	if len(p) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, s := range p {
		b.WriteByte('/')
		b.WriteString(s.String())
	}
	return b.String()
}
