// Package keypath extracts a subtree from a document with paths such as
// data.items[0].id. Paths are literal: there are no wildcards, filters or
// expressions.
package keypath

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mcncl/jsonfizz/internal/errors"
	"github.com/mcncl/jsonfizz/internal/models"
)

// SegmentKind tells key segments from index segments.
type SegmentKind int

const (
	KeySegment SegmentKind = iota
	IndexSegment
)

// Segment is one step of a Path.
type Segment struct {
	Kind  SegmentKind
	Key   string
	Index int
}

// Key returns a segment selecting an object entry.
func Key(k string) Segment { return Segment{Kind: KeySegment, Key: k} }

// Index returns a segment selecting an array element.
func Index(i int) Segment { return Segment{Kind: IndexSegment, Index: i} }

func (s Segment) String() string {
	if s.Kind == IndexSegment {
		return "[" + strconv.Itoa(s.Index) + "]"
	}
	return s.Key
}

// Path is an ordered list of segments applied from the document root.
type Path []Segment

func (p Path) String() string {
	var sb strings.Builder
	for i, s := range p {
		if s.Kind == KeySegment && i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(s.String())
	}
	return sb.String()
}

// Parse splits a path on dots. A part may end in one or more bracketed
// indices (items[0], grid[1][2]); the text before the first bracket is always
// a key segment, even when empty, so "[0]" means index 0 of the entry with
// the empty key. The empty string is the empty path.
func Parse(path string) (Path, error) {
	if path == "" {
		return Path{}, nil
	}
	var segments Path
	for _, part := range strings.Split(path, ".") {
		open := strings.IndexByte(part, '[')
		if open < 0 {
			segments = append(segments, Key(part))
			continue
		}
		segments = append(segments, Key(part[:open]))
		indices, err := parseIndices(part[open:], path)
		if err != nil {
			return nil, err
		}
		segments = append(segments, indices...)
	}
	return segments, nil
}

// parseIndices reads a run of "[n]" groups that must make up all of s.
func parseIndices(s, path string) (Path, error) {
	var segments Path
	for s != "" {
		if s[0] != '[' {
			return nil, syntaxError(fmt.Sprintf("unexpected %q after index in path %q", s, path))
		}
		end := strings.IndexByte(s, ']')
		if end < 0 {
			return nil, syntaxError(fmt.Sprintf("missing ']' in path %q", path))
		}
		digits := s[1:end]
		n, ok := parseIndex(digits)
		if !ok {
			return nil, syntaxError(fmt.Sprintf("invalid index %q in path %q", digits, path))
		}
		segments = append(segments, Index(n))
		s = s[end+1:]
	}
	return segments, nil
}

func parseIndex(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func syntaxError(msg string) error {
	return errors.NewPathSyntaxError(msg, errors.ErrInvalidIndex)
}

// Resolve walks path from root and returns a deep copy of the value found.
// The empty path yields the root.
func Resolve(root models.Value, path Path) (models.Value, error) {
	current := root
	for _, seg := range path {
		switch seg.Kind {
		case KeySegment:
			if current.Kind() != models.ObjectKind {
				return models.Value{}, errors.NewPathError(
					fmt.Sprintf("expected object for key %q, found %s", seg.Key, describe(current)),
					errors.ErrExpectedObject,
				)
			}
			next, ok := current.Get(seg.Key)
			if !ok {
				return models.Value{}, errors.NewPathError(
					fmt.Sprintf("key %q not found", seg.Key),
					errors.ErrKeyNotFound,
				)
			}
			current = next
		case IndexSegment:
			if current.Kind() != models.ArrayKind {
				return models.Value{}, errors.NewPathError(
					fmt.Sprintf("expected array for index %d, found %s", seg.Index, describe(current)),
					errors.ErrExpectedArray,
				)
			}
			next, ok := current.Index(seg.Index)
			if !ok {
				return models.Value{}, errors.NewPathError(
					fmt.Sprintf("index %d out of bounds (len %d)", seg.Index, current.Len()),
					errors.ErrIndexOutOfBounds,
				)
			}
			current = next
		}
	}
	return current.Clone(), nil
}

// Get parses path and resolves it against root.
func Get(root models.Value, path string) (models.Value, error) {
	p, err := Parse(path)
	if err != nil {
		return models.Value{}, err
	}
	return Resolve(root, p)
}

const maxDescribeLen = 60

// describe renders the value met at a failing step, shortened for messages.
func describe(v models.Value) string {
	s := v.String()
	if r := []rune(s); len(r) > maxDescribeLen {
		s = string(r[:maxDescribeLen-1]) + "…"
	}
	return s
}
