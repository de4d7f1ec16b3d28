package main

import (
	"io"

	"github.com/0x0FACED/go-delaunay/pkg/pointio"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a random point cloud",
	RunE:  runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().IntP("count", "n", 0, "number of points")
	generateCmd.Flags().String("dist", "", "normal or uniform")
	generateCmd.Flags().Float64("stddev", 0, "standard deviation of the normal distribution")
	generateCmd.Flags().Float64("min", 0, "lower bound of the uniform distribution")
	generateCmd.Flags().Float64("max", 0, "upper bound of the uniform distribution")
	generateCmd.Flags().Uint64("seed", 0, "random seed")
	generateCmd.Flags().StringP("output", "o", "", "point cloud file, stdout when empty")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	params, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	flags := cmd.Flags()
	cloud := params.Cloud
	if flags.Changed("count") {
		cloud.Count, _ = flags.GetInt("count")
	}
	if flags.Changed("dist") {
		dist, _ := flags.GetString("dist")
		cloud.Distribution = pointio.Distribution(dist)
	}
	if flags.Changed("stddev") {
		cloud.StdDev, _ = flags.GetFloat64("stddev")
	}
	if flags.Changed("min") {
		cloud.Min, _ = flags.GetFloat64("min")
	}
	if flags.Changed("max") {
		cloud.Max, _ = flags.GetFloat64("max")
	}
	seed := params.Seed
	if flags.Changed("seed") {
		seed, _ = flags.GetUint64("seed")
	}

	points, err := pointio.Generate(cloud, seed)
	if err != nil {
		return err
	}
	log.Info("point cloud generated",
		zap.String("distribution", string(cloud.Distribution)),
		zap.Int("count", len(points)),
		zap.Uint64("seed", seed))

	write := func(w io.Writer) error { return pointio.WritePoints(w, points) }
	output, _ := flags.GetString("output")
	if output == "" {
		return write(cmd.OutOrStdout())
	}
	return pointio.WriteFile(output, write)
}
