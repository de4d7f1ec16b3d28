package main

import (
	"io"
	"time"

	"github.com/0x0FACED/go-delaunay/pkg/delaunay"
	"github.com/0x0FACED/go-delaunay/pkg/geom"
	"github.com/0x0FACED/go-delaunay/pkg/pointio"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

var triangulateCmd = &cobra.Command{
	Use:   "triangulate",
	Short: "Triangulate a point cloud file",
	RunE:  runTriangulate,
}

func init() {
	rootCmd.AddCommand(triangulateCmd)
	triangulateCmd.Flags().StringP("input", "i", "", "point cloud file, one \"x y\" per line (required)")
	triangulateCmd.Flags().StringP("output", "o", "", "triangulation file, stdout when empty")
	triangulateCmd.Flags().Bool("shuffle", false, "insert points in random order")
	triangulateCmd.Flags().Uint64("seed", 0, "seed for --shuffle")
	triangulateCmd.Flags().Float64("epsilon", 0, "absolute comparison tolerance")
	triangulateCmd.MarkFlagRequired("input")
}

func runTriangulate(cmd *cobra.Command, args []string) error {
	params, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	flags := cmd.Flags()
	if flags.Changed("shuffle") {
		params.Shuffle, _ = flags.GetBool("shuffle")
	}
	if flags.Changed("seed") {
		params.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("epsilon") {
		params.Epsilon, _ = flags.GetFloat64("epsilon")
	}
	if err := params.Validate(); err != nil {
		return err
	}

	input, _ := flags.GetString("input")
	output, _ := flags.GetString("output")

	points, err := pointio.ReadPointsFile(input)
	if err != nil {
		log.Error("failed to read points", zap.Error(err))
		return err
	}
	log.Info("points loaded", append(params.Fields(), zap.String("file", input), zap.Int("points", len(points)))...)

	start := time.Now()
	tris, err := delaunay.Triangulate(points, params.Options(log.Zap())...)
	if err != nil {
		log.Error("triangulation failed", zap.Error(err))
		return errors.Wrapf(err, "triangulate %s", input)
	}
	log.Info("triangulated", summary(points, tris, time.Since(start))...)

	write := func(w io.Writer) error { return pointio.WriteTriangles(w, tris) }
	if output == "" {
		return write(cmd.OutOrStdout())
	}
	return pointio.WriteFile(output, write)
}

// summary reports sizes, timing and how the triangle areas add up against
// the convex hull.
func summary(points []geom.Point, tris []delaunay.Triangle, took time.Duration) []zap.Field {
	areas := make([]float64, len(tris))
	for i, t := range tris {
		areas[i] = t.Area(points)
	}
	hull := geom.ConvexHull(points, geom.Epsilon)
	return []zap.Field{
		zap.Int("points", len(points)),
		zap.Int("triangles", len(tris)),
		zap.Int("hull", len(hull)),
		zap.Float64("area", floats.Sum(areas)),
		zap.Float64("hullArea", geom.PolygonArea(hull)),
		zap.Duration("took", took),
	}
}
