package morph

import (
	"fmt"
	"strconv"
	"strings"
)

// SegmentKind distinguishes field access from array indexing.
type SegmentKind int

const (
	// FieldSegment accesses an object field by name.
	FieldSegment SegmentKind = iota
	// IndexSegment accesses an array element by zero-based position.
	IndexSegment
)

// Segment is one accessor of a parsed path.
type Segment struct {
	Kind  SegmentKind
	Name  string // field name for FieldSegment
	Index int    // element position for IndexSegment
}

// Path is an ordered sequence of accessors identifying a location in a
// Value tree.
type Path []Segment

// String reassembles the path into its source syntax.
func (p Path) String() string {
	var sb strings.Builder
	for i, seg := range p {
		switch seg.Kind {
		case FieldSegment:
			if i > 0 {
				sb.WriteByte('.')
			}
			sb.WriteString(seg.Name)
		case IndexSegment:
			sb.WriteByte('[')
			sb.WriteString(strconv.Itoa(seg.Index))
			sb.WriteByte(']')
		}
	}
	return sb.String()
}

// ParsePath parses a dotted path string into segments.
//
// Segments are separated by '.'; a segment is a field name, a bracketed
// zero-based index "[n]", or a field name directly followed by one or more
// indexes ("items[1]", "grid[0][2]"). A leading index is allowed for paths
// evaluated against an array root. Field names containing '.' or '[' are
// not expressible; there is no escaping mechanism.
//
// Malformed paths fail with an error wrapping ErrInvalidPath. They are
// rejected here, before any resolution, never treated as "not found".
func ParsePath(path string) (Path, error) {
	if path == "" {
		return nil, newPathError(path, "empty path")
	}
	if err := validateBrackets(path); err != nil {
		return nil, err
	}

	var segments Path
	parts, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	for _, part := range parts {
		segs, err := parseSegment(path, part)
		if err != nil {
			return nil, err
		}
		segments = append(segments, segs...)
	}
	return segments, nil
}

// splitPath splits on dots outside brackets and rejects empty segments.
func splitPath(path string) ([]string, error) {
	var parts []string
	var current strings.Builder
	depth := 0

	for _, ch := range path {
		switch ch {
		case '[':
			depth++
			current.WriteRune(ch)
		case ']':
			depth--
			current.WriteRune(ch)
		case '.':
			if depth > 0 {
				current.WriteRune(ch)
				continue
			}
			if current.Len() == 0 {
				return nil, newPathError(path, "empty path segment")
			}
			parts = append(parts, current.String())
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	if current.Len() == 0 {
		return nil, newPathError(path, "empty path segment")
	}
	parts = append(parts, current.String())
	return parts, nil
}

// parseSegment parses one dot-separated part into one or more segments:
// "name", "[n]", or "name[n]..." with chained indexes.
func parseSegment(path, part string) ([]Segment, error) {
	bracket := strings.IndexByte(part, '[')
	if bracket < 0 {
		return []Segment{{Kind: FieldSegment, Name: part}}, nil
	}

	var segs []Segment
	if bracket > 0 {
		name := part[:bracket]
		if strings.ContainsAny(name, "]") {
			return nil, newPathError(path, fmt.Sprintf("unexpected ']' in segment '%s'", part))
		}
		segs = append(segs, Segment{Kind: FieldSegment, Name: name})
	}

	rest := part[bracket:]
	for len(rest) > 0 {
		if rest[0] != '[' {
			return nil, newPathError(path, fmt.Sprintf("unexpected '%c' after index in segment '%s'", rest[0], part))
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return nil, newPathError(path, "unmatched opening bracket")
		}
		idxText := rest[1:end]
		if idxText == "" {
			return nil, newPathError(path, "empty array index")
		}
		idx, err := strconv.Atoi(idxText)
		if err != nil {
			return nil, newPathError(path, fmt.Sprintf("non-numeric array index '%s'", idxText))
		}
		if idx < 0 {
			return nil, newPathError(path, fmt.Sprintf("negative array index %d", idx))
		}
		segs = append(segs, Segment{Kind: IndexSegment, Index: idx})
		rest = rest[end+1:]
	}
	return segs, nil
}

// validateBrackets checks that brackets are balanced and never nested.
func validateBrackets(path string) error {
	depth := 0
	for i, ch := range path {
		switch ch {
		case '[':
			depth++
			if depth > 1 {
				return newPathError(path, fmt.Sprintf("nested bracket at position %d", i))
			}
		case ']':
			depth--
			if depth < 0 {
				return newPathError(path, fmt.Sprintf("unmatched closing bracket at position %d", i))
			}
		}
	}
	if depth > 0 {
		return newPathError(path, "unmatched opening bracket")
	}
	return nil
}
