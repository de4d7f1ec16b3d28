package delaunay

import (
	"fmt"
	"strings"

	"github.com/0x0FACED/go-delaunay/pkg/geom"
	"github.com/pkg/errors"
)

var (
	// ErrDegenerateGeometry matches every *DegenerateError.
	ErrDegenerateGeometry = errors.New("degenerate geometry")
	// ErrDuplicatePoint matches every *DuplicatePointError.
	ErrDuplicatePoint = errors.New("duplicate point")
)

// DegenerateError is returned when the input has no area to triangulate or
// when a circumcircle is requested for three (nearly) colinear points.
type DegenerateError struct {
	Reason string
	Points []geom.Point
	// Indices into the caller's slice, -1 for super-triangle vertices.
	Indices []int
}

func (e *DegenerateError) Error() string {
	if len(e.Points) == 0 {
		return fmt.Sprintf("%s: %s", ErrDegenerateGeometry, e.Reason)
	}
	parts := make([]string, len(e.Points))
	for i, p := range e.Points {
		if i < len(e.Indices) && e.Indices[i] >= 0 {
			parts[i] = fmt.Sprintf("#%d %s", e.Indices[i], p)
		} else {
			parts[i] = p.String()
		}
	}
	return fmt.Sprintf("%s: %s [%s]", ErrDegenerateGeometry, e.Reason, strings.Join(parts, ", "))
}

func (e *DegenerateError) Is(target error) bool {
	return target == ErrDegenerateGeometry
}

// DuplicatePointError names two input points that are equal within epsilon.
type DuplicatePointError struct {
	Index    int
	Conflict int
	Point    geom.Point
}

func (e *DuplicatePointError) Error() string {
	return fmt.Sprintf("%s: point #%d %s equals point #%d", ErrDuplicatePoint, e.Index, e.Point, e.Conflict)
}

func (e *DuplicatePointError) Is(target error) bool {
	return target == ErrDuplicatePoint
}
