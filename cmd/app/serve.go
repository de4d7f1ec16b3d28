package main

import (
	"fmt"
	"math"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/0x0FACED/go-delaunay/pkg/config"
	"github.com/0x0FACED/go-delaunay/pkg/delaunay"
	"github.com/0x0FACED/go-delaunay/pkg/geom"
	"github.com/0x0FACED/go-delaunay/pkg/logger"
	"github.com/0x0FACED/go-delaunay/pkg/voronoi"
	"github.com/0x0FACED/go-delaunay/static"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve an interactive page drawing triangulations of random points",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "listen address (overrides Server.Addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	params, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()
	if cmd.Flags().Changed("addr") {
		params.Server.Addr, _ = cmd.Flags().GetString("addr")
	}

	http.Handle("/", &diagramHandler{params: params, log: log})
	log.Info("server started", zap.String("addr", params.Server.Addr))
	srv := &http.Server{
		Addr:              params.Server.Addr,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		log.Error("server stopped", zap.Error(err))
		return err
	}
	return nil
}

// Random points inside a width x height box, away from the border.
func generateRandPoints(n int, width, height int, seed uint64) []geom.Point {
	r := rand.New(rand.NewPCG(seed, 0))
	points := make([]geom.Point, n)
	for i := range points {
		points[i] = geom.Point{
			X: float64(width) * (0.05 + 0.9*r.Float64()),
			Y: float64(height) * (0.05 + 0.9*r.Float64()),
		}
	}
	return points
}

// A regular grid of at most n points filling the box.
func generateFixPoints(n int, width, height int) []geom.Point {
	points := make([]geom.Point, 0, n)

	rows := int(math.Sqrt(float64(n)))
	cols := (n + rows - 1) / rows

	xStep := float64(width) / float64(cols)
	yStep := float64(height) / float64(rows)

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			// the last row may be partial
			if len(points) == n {
				break
			}
			points = append(points, geom.Point{X: xStep/2 + float64(j)*xStep, Y: yStep/2 + float64(i)*yStep})
		}
	}
	return points
}

func prepareScatter(scatter *charts.Scatter, title string) {
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Height: "580px",
			Width:  "1020px",
		}),
		charts.WithLegendOpts(opts.Legend{
			TextStyle: &opts.TextStyle{
				Color: "white",
			},
			Right: "10%",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:                title,
			TitleBackgroundColor: "white",
			Left:                 "10%",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value",
			Name: "X",
			AxisLabel: &opts.AxisLabel{
				Color: "white",
			},
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Name: "Y",
			AxisLabel: &opts.AxisLabel{
				Color: "white",
			},
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "horizontal",
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "vertical",
		}),
	)
}

func segment(name string, a, b geom.Point, width float32) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithXAxisOpts(opts.XAxis{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Show: opts.Bool(true)}),
	)
	line.AddSeries(name, []opts.LineData{
		{Value: []float64{a.X, a.Y}},
		{Value: []float64{b.X, b.Y}},
	}).SetSeriesOptions(
		charts.WithLineStyleOpts(opts.LineStyle{
			Width: width,
		}),
	)
	return line
}

// triangulationToEcharts draws the points, every triangle edge once and the
// Voronoi edges when diagram is not nil.
func triangulationToEcharts(points []geom.Point, tris []delaunay.Triangle, diagram *voronoi.Diagram) *charts.Scatter {
	scatter := charts.NewScatter()
	prepareScatter(scatter, "Delaunay triangulation")

	data := make([]opts.ScatterData, 0, len(points))
	for _, p := range points {
		data = append(data, opts.ScatterData{Value: []float64{p.X, p.Y}})
	}
	scatter.AddSeries("Points", data).
		SetSeriesOptions(
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color: "lightgreen",
			}),
		)

	drawn := make(map[[2]int]bool)
	for _, t := range tris {
		for i := range t {
			u, v := t[i], t[(i+1)%3]
			key := [2]int{min(u, v), max(u, v)}
			if drawn[key] {
				continue
			}
			drawn[key] = true
			scatter.Overlap(segment("Triangles", points[u], points[v], 1))
		}
	}

	if diagram != nil {
		for _, e := range diagram.Edges {
			scatter.Overlap(segment("Voronoi", e.Va, e.Vb, 2))
		}
	}
	return scatter
}

// maxPoints bounds the point count of one request, triangulation being
// quadratic.
const maxPoints = 5000

type diagramHandler struct {
	params *config.Parameters
	log    *logger.ZapLogger
}

type request struct {
	width, height, n int
	seed             uint64
	random, voronoi  bool
}

// parse reads the form over the configured defaults. Out of range numbers
// keep the default and the point count is clamped to maxPoints.
func (h *diagramHandler) parse(r *http.Request) (request, error) {
	req := request{
		width:   h.params.Server.Width,
		height:  h.params.Server.Height,
		n:       h.params.Server.Points,
		seed:    h.params.Seed,
		random:  true,
		voronoi: h.params.Server.Voronoi,
	}
	if r.Method != http.MethodPost {
		req.n = min(req.n, maxPoints)
		return req, nil
	}
	if err := r.ParseForm(); err != nil {
		return request{}, errors.Wrap(err, "parse form")
	}
	atoi := func(key string, dst *int) {
		if v, err := strconv.Atoi(r.FormValue(key)); err == nil && v > 0 {
			*dst = v
		}
	}
	atoi("width", &req.width)
	atoi("height", &req.height)
	atoi("points", &req.n)
	if v, err := strconv.ParseUint(r.FormValue("seed"), 10, 64); err == nil {
		req.seed = v
	}
	req.random = r.FormValue("random") == "true"
	req.voronoi = r.FormValue("voronoi") == "true"
	req.n = min(req.n, maxPoints)
	return req, nil
}

// ServeHTTP renders the form, the chart and the logs of this request.
func (h *diagramHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, err := h.parse(r)
	if err != nil {
		h.log.Error("bad request", zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.log.Debug("request parsed",
		zap.Int("width", req.width),
		zap.Int("height", req.height),
		zap.Int("points", req.n),
		zap.Uint64("seed", req.seed),
		zap.Bool("random", req.random),
		zap.Bool("voronoi", req.voronoi))

	var points []geom.Point
	if req.random {
		points = generateRandPoints(req.n, req.width, req.height, req.seed)
	} else {
		points = generateFixPoints(req.n, req.width, req.height)
	}

	reqLog, err := logger.New(logger.Config{Level: h.params.LogLevel, Buffer: true})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer reqLog.ClearLogs()

	start := time.Now()
	tris, err := delaunay.Triangulate(points, h.params.Options(reqLog.Zap())...)
	if err != nil {
		reqLog.Error("triangulation failed", zap.Error(err))
		h.log.Error("triangulation failed", zap.Error(err), zap.Int("points", len(points)))
	} else {
		reqLog.Info("triangulated", summary(points, tris, time.Since(start))...)
	}

	var diagram *voronoi.Diagram
	if err == nil && req.voronoi {
		bbox := voronoi.NewBoundingBox(0, float64(req.width), 0, float64(req.height))
		if diagram, err = voronoi.FromTriangulation(points, tris, bbox); err != nil {
			reqLog.Error("voronoi failed", zap.Error(err))
		} else {
			reqLog.Info("voronoi built", zap.Int("edges", len(diagram.Edges)))
		}
	}

	h.log.Info("request served",
		zap.String("method", r.Method),
		zap.Int("points", len(points)),
		zap.Int("triangles", len(tris)),
		zap.Duration("took", time.Since(start)))

	fmt.Fprintln(w, static.Part1)
	if err := triangulationToEcharts(points, tris, diagram).Render(w); err != nil {
		h.log.Error("chart rendering failed", zap.Error(err))
	}
	fmt.Fprintln(w, static.Part2)
	fmt.Fprintln(w, reqLog.HTML())
	fmt.Fprintln(w, static.Part3)
}
