// Package pointio reads and writes the plain text formats used around the
// triangulator: point clouds as "x y" lines and triangulations as "i j k"
// lines.
package pointio

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/0x0FACED/go-delaunay/pkg/delaunay"
	"github.com/0x0FACED/go-delaunay/pkg/geom"
	"github.com/pkg/errors"
)

// ReadPoints parses one point per line. Blank lines and lines starting with
// '#' are skipped.
func ReadPoints(r io.Reader) ([]geom.Point, error) {
	var points []geom.Point
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		p, err := parsePoint(text)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		points = append(points, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read points")
	}
	return points, nil
}

func parsePoint(line string) (geom.Point, error) {
	parts := strings.Fields(line)
	if len(parts) != 2 {
		return geom.Point{}, errors.Errorf("want 2 coordinates, got %d in %q", len(parts), line)
	}
	x, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return geom.Point{}, errors.Wrap(err, "x")
	}
	y, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return geom.Point{}, errors.Wrap(err, "y")
	}
	p := geom.Point{X: x, Y: y}
	if !p.IsFinite() {
		return geom.Point{}, errors.Errorf("non-finite point %s", p)
	}
	return p, nil
}

func ReadPointsFile(path string) ([]geom.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()
	points, err := ReadPoints(f)
	return points, errors.Wrapf(err, "%s", path)
}

func WritePoints(w io.Writer, points []geom.Point) error {
	bw := bufio.NewWriter(w)
	for _, p := range points {
		bw.WriteString(strconv.FormatFloat(p.X, 'g', -1, 64))
		bw.WriteByte(' ')
		bw.WriteString(strconv.FormatFloat(p.Y, 'g', -1, 64))
		bw.WriteByte('\n')
	}
	return errors.Wrap(bw.Flush(), "write points")
}

func WriteTriangles(w io.Writer, tris []delaunay.Triangle) error {
	bw := bufio.NewWriter(w)
	for _, t := range tris {
		bw.WriteString(strconv.Itoa(t[0]))
		bw.WriteByte(' ')
		bw.WriteString(strconv.Itoa(t[1]))
		bw.WriteByte(' ')
		bw.WriteString(strconv.Itoa(t[2]))
		bw.WriteByte('\n')
	}
	return errors.Wrap(bw.Flush(), "write triangles")
}

// ReadTriangles parses "i j k" lines as written by WriteTriangles. Indices
// are not checked against any point set.
func ReadTriangles(r io.Reader) ([]delaunay.Triangle, error) {
	var tris []delaunay.Triangle
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 || strings.HasPrefix(parts[0], "#") {
			continue
		}
		if len(parts) != 3 {
			return nil, errors.Errorf("line %d: want 3 indices, got %d", line, len(parts))
		}
		var t delaunay.Triangle
		for i, part := range parts {
			v, err := strconv.Atoi(part)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", line)
			}
			if v < 0 {
				return nil, errors.Errorf("line %d: negative index %d", line, v)
			}
			t[i] = v
		}
		tris = append(tris, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read triangles")
	}
	return tris, nil
}

// WriteFile creates path and hands it to write.
func WriteFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = errors.WithStack(cerr)
		}
	}()
	return errors.Wrapf(write(f), "%s", path)
}
