package util

import "strings"

// Path is a construct for describing a fully qualified dotted name, such as
// the diagnostic name carried by a Signal or the dotted component path used
// to prefix a child component's allocated signal ids. Qualified names in
// this domain are always dot-separated and always rooted at the main
// template, so there is no absolute/relative distinction to track.
type Path struct {
	segments []string
}

// RootPath returns the empty path, denoting the main template's own scope.
func RootPath() Path {
	return Path{}
}

// NewPath constructs a path from the given segments.
func NewPath(segments ...string) Path {
	return Path{append([]string(nil), segments...)}
}

// Depth returns the number of segments in this path.
func (p Path) Depth() uint {
	return uint(len(p.segments))
}

// Head returns the first (i.e. outermost) segment in this path.
func (p Path) Head() string {
	return p.segments[0]
}

// Tail returns the last (i.e. innermost) segment in this path.
func (p Path) Tail() string {
	return p.segments[len(p.segments)-1]
}

// Parent returns the path with its innermost segment removed.
func (p Path) Parent() Path {
	n := len(p.segments) - 1
	return Path{p.segments[0:n]}
}

// Extend returns this path extended with a new innermost segment.
func (p Path) Extend(tail string) Path {
	nsegments := make([]string, len(p.segments)+1)
	copy(nsegments, p.segments)
	nsegments[len(p.segments)] = tail
	//
	return Path{nsegments}
}

// Equals determines whether two paths are the same.
func (p Path) Equals(other Path) bool {
	if len(p.segments) != len(other.segments) {
		return false
	}
	//
	for i := range p.segments {
		if p.segments[i] != other.segments[i] {
			return false
		}
	}
	//
	return true
}

// String returns the dotted representation of this path, e.g. "b.a.out".
func (p Path) String() string {
	return strings.Join(p.segments, ".")
}
