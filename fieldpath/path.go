package fieldpath

import (
	"strconv"
	"strings"
)

// Path is a hierarchical address into a value tree using dot notation.
// Array elements are addressed by numeric segments.
// Examples: "user.name", "items.0.price", "address.city"
type Path string

// Wildcard constants for pattern matching.
const (
	// WildcardSingle matches exactly one segment.
	WildcardSingle = "*"

	// WildcardMulti matches zero or more segments.
	WildcardMulti = "**"

	// Separator is the character used to separate path segments.
	Separator = "."
)

// String returns the path as a string.
func (p Path) String() string {
	return string(p)
}

// Segments returns the path split by the separator.
func (p Path) Segments() []string {
	if p == "" {
		return nil
	}
	return strings.Split(string(p), Separator)
}

// SegmentCount returns the number of segments in the path.
func (p Path) SegmentCount() int {
	if p == "" {
		return 0
	}
	return strings.Count(string(p), Separator) + 1
}

// Parent returns the parent path by removing the last segment.
// Returns an empty path if there is no parent.
//
// Example: "items.0.price" -> "items.0"
func (p Path) Parent() Path {
	s := string(p)
	idx := strings.LastIndex(s, Separator)
	if idx < 0 {
		return ""
	}
	return Path(s[:idx])
}

// Concat returns a child path by appending a segment.
//
// Example: "user".Concat("name") -> "user.name"
func (p Path) Concat(segment string) Path {
	if p == "" {
		return Path(segment)
	}
	return Path(string(p) + Separator + segment)
}

// Base returns the last segment of the path.
//
// Example: "items.0.price" -> "price"
func (p Path) Base() string {
	s := string(p)
	idx := strings.LastIndex(s, Separator)
	if idx < 0 {
		return s
	}
	return s[idx+1:]
}

// Index returns the value of the last numeric segment, scanning from the
// end of the path toward the front. The second return value is false when
// no numeric segment exists.
//
// Example: "items.2.price" -> (2, true); "user.name" -> (0, false)
func (p Path) Index() (int, bool) {
	segs := p.Segments()
	for i := len(segs) - 1; i >= 0; i-- {
		if n, err := strconv.Atoi(segs[i]); err == nil {
			return n, true
		}
	}
	return 0, false
}

// WithIndex returns a copy of the path with its last numeric segment
// replaced by n. The second return value is false when the path has no
// numeric segment.
//
// Example: "items.1.price".WithIndex(2) -> ("items.2.price", true)
func (p Path) WithIndex(n int) (Path, bool) {
	segs := p.Segments()
	for i := len(segs) - 1; i >= 0; i-- {
		if _, err := strconv.Atoi(segs[i]); err == nil {
			out := make([]string, len(segs))
			copy(out, segs)
			out[i] = strconv.Itoa(n)
			return FromSegments(out), true
		}
	}
	return p, false
}

// HasPrefix returns true if the path starts with the given prefix on a
// segment boundary. An empty prefix matches every path.
func (p Path) HasPrefix(prefix Path) bool {
	if prefix == "" {
		return true
	}
	s := string(p)
	pre := string(prefix)
	if !strings.HasPrefix(s, pre) {
		return false
	}
	if len(s) == len(pre) {
		return true
	}
	return s[len(pre)] == '.'
}

// IsWildcard returns true if the path contains any wildcard characters.
func (p Path) IsWildcard() bool {
	return strings.Contains(string(p), WildcardSingle)
}

// IsValid returns true if the path is well formed.
// A valid path:
//   - Is not empty
//   - Does not start or end with a separator
//   - Does not contain empty segments
func (p Path) IsValid() bool {
	s := string(p)
	if s == "" {
		return false
	}
	if strings.HasPrefix(s, Separator) || strings.HasSuffix(s, Separator) {
		return false
	}
	return !strings.Contains(s, Separator+Separator)
}

// Matches returns true if this path matches the given pattern.
// The pattern may contain wildcards:
//   - "*" matches exactly one segment
//   - "**" matches zero or more segments
func (p Path) Matches(pattern Path) bool {
	return matchSegments(p.Segments(), pattern.Segments())
}

// matchSegments performs recursive pattern matching on path segments.
func matchSegments(path, pattern []string) bool {
	pi := 0

	for pi < len(pattern) {
		if pattern[pi] == WildcardMulti {
			// ** matches zero or more segments
			for i := 0; i <= len(path); i++ {
				if matchSegments(path[i:], pattern[pi+1:]) {
					return true
				}
			}
			return false
		}

		if len(path) == 0 {
			return false
		}

		if pattern[pi] != WildcardSingle && pattern[pi] != path[0] {
			return false
		}

		path = path[1:]
		pi++
	}

	return len(path) == 0
}

// Join joins multiple segments into a path.
func Join(segments ...string) Path {
	return Path(strings.Join(segments, Separator))
}

// FromSegments builds a path from an ordered segment list.
func FromSegments(segments []string) Path {
	return Path(strings.Join(segments, Separator))
}
