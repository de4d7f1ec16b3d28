package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/0x0FACED/go-delaunay/pkg/config"
	"github.com/0x0FACED/go-delaunay/pkg/delaunay"
	"github.com/0x0FACED/go-delaunay/pkg/logger"
	"github.com/0x0FACED/go-delaunay/pkg/pointio"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command and puts every flag back to its default,
// rootCmd being shared between tests.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		reset := func(f *pflag.Flag) {
			f.Value.Set(f.DefValue)
			f.Changed = false
		}
		rootCmd.PersistentFlags().VisitAll(reset)
		for _, c := range []*cobra.Command{triangulateCmd, generateCmd, serveCmd} {
			c.Flags().VisitAll(reset)
		}
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestTriangulateSquare(t *testing.T) {
	input := writeFile(t, "square.txt", "# unit square\n0 0\n1 0\n1 1\n0 1\n")

	stdout, stderr, err := execute(t, "triangulate", "-i", input)
	require.NoError(t, err)

	tris, err := pointio.ReadTriangles(strings.NewReader(stdout))
	require.NoError(t, err)
	assert.Len(t, tris, 2)
	assert.Contains(t, stderr, "triangulated")
}

func TestTriangulateErrors(t *testing.T) {
	t.Run("colinear", func(t *testing.T) {
		input := writeFile(t, "line.txt", "0 0\n1 1\n2 2\n")
		_, _, err := execute(t, "triangulate", "-i", input)
		assert.ErrorIs(t, err, delaunay.ErrDegenerateGeometry)
	})
	t.Run("duplicate", func(t *testing.T) {
		input := writeFile(t, "dup.txt", "0 0\n1 0\n0 1\n1 0\n")
		_, _, err := execute(t, "triangulate", "-i", input)
		assert.ErrorIs(t, err, delaunay.ErrDuplicatePoint)
	})
	t.Run("malformed", func(t *testing.T) {
		input := writeFile(t, "bad.txt", "0 0\n1 x\n")
		_, _, err := execute(t, "triangulate", "-i", input)
		assert.ErrorContains(t, err, "line 2")
	})
	t.Run("missing input", func(t *testing.T) {
		_, _, err := execute(t, "triangulate")
		assert.Error(t, err)
	})
	t.Run("bad epsilon", func(t *testing.T) {
		input := writeFile(t, "square.txt", "0 0\n1 0\n1 1\n0 1\n")
		_, _, err := execute(t, "triangulate", "-i", input, "--epsilon=-1")
		assert.Error(t, err)
	})
}

func TestGenerateThenTriangulate(t *testing.T) {
	dir := t.TempDir()
	points := filepath.Join(dir, "points.txt")
	tris := filepath.Join(dir, "tris.txt")

	_, _, err := execute(t, "generate", "-n", "200", "--dist", "uniform", "--min", "0", "--max", "100", "--seed", "3", "-o", points)
	require.NoError(t, err)
	cloud, err := pointio.ReadPointsFile(points)
	require.NoError(t, err)
	require.Len(t, cloud, 200)

	_, _, err = execute(t, "triangulate", "-i", points, "-o", tris, "--shuffle", "--seed", "9")
	require.NoError(t, err)

	f, err := os.Open(tris)
	require.NoError(t, err)
	defer f.Close()
	got, err := pointio.ReadTriangles(f)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	for _, tri := range got {
		for _, v := range tri {
			assert.True(t, v >= 0 && v < len(cloud))
		}
		assert.Greater(t, tri.Area(cloud), 0.0)
	}
}

func TestGenerateConfig(t *testing.T) {
	cfg := writeFile(t, "config.yaml", "Seed: 5\nCloud:\n  Distribution: normal\n  Count: 12\n  StdDev: 3\n")

	first, _, err := execute(t, "generate", "-c", cfg)
	require.NoError(t, err)
	second, _, err := execute(t, "generate", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	cloud, err := pointio.ReadPoints(strings.NewReader(first))
	require.NoError(t, err)
	assert.Len(t, cloud, 12)

	_, _, err = execute(t, "generate", "-c", cfg, "--dist", "poisson")
	assert.Error(t, err)
}

func newTestHandler(t *testing.T) *diagramHandler {
	t.Helper()
	log, err := logger.New(logger.Config{Level: "info"})
	require.NoError(t, err)
	return &diagramHandler{params: config.Default(), log: log}
}

func TestDiagramHandler(t *testing.T) {
	h := newTestHandler(t)

	t.Run("get", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Delaunay triangulation")
		assert.Contains(t, body, "triangulated")
		assert.Contains(t, body, "voronoi built")
	})

	t.Run("post", func(t *testing.T) {
		form := url.Values{
			"width":  {"400"},
			"height": {"300"},
			"points": {"30"},
			"seed":   {"11"},
			"random": {"true"},
		}
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "triangulated")
		assert.NotContains(t, body, "voronoi built")
	})

	t.Run("too few points", func(t *testing.T) {
		form := url.Values{"points": {"2"}, "random": {"true"}, "voronoi": {"true"}}
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "triangulated")
		assert.NotContains(t, body, "triangulation failed")
	})
}

func TestParseRequest(t *testing.T) {
	h := newTestHandler(t)

	post := func(body string) *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return r
	}

	req, err := h.parse(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, request{width: 1000, height: 1000, n: 50, seed: 42, random: true, voronoi: true}, req)

	form := url.Values{"width": {"-5"}, "height": {"abc"}, "points": {"7"}, "seed": {"3"}}
	req, err = h.parse(post(form.Encode()))
	require.NoError(t, err)
	assert.Equal(t, request{width: 1000, height: 1000, n: 7, seed: 3}, req)

	t.Run("point count is clamped", func(t *testing.T) {
		req, err := h.parse(post(url.Values{"points": {"100000000"}}.Encode()))
		require.NoError(t, err)
		assert.Equal(t, maxPoints, req.n)
	})

	t.Run("malformed form", func(t *testing.T) {
		_, err := h.parse(post("points=%zz"))
		assert.Error(t, err)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, post("points=%zz"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGeneratePoints(t *testing.T) {
	grid := generateFixPoints(10, 400, 300)
	assert.Len(t, grid, 10)

	a := generateRandPoints(20, 400, 300, 1)
	b := generateRandPoints(20, 400, 300, 1)
	assert.Equal(t, a, b)
	for _, p := range a {
		assert.True(t, p.X > 0 && p.X < 400)
		assert.True(t, p.Y > 0 && p.Y < 300)
	}
	assert.NotEqual(t, a, generateRandPoints(20, 400, 300, 2))
}
