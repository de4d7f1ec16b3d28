package main

import (
	"os"

	"github.com/0x0FACED/go-delaunay/pkg/config"
	"github.com/0x0FACED/go-delaunay/pkg/logger"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "app",
	Short: "Delaunay triangulation of planar point clouds",
	Long: `Triangulates point clouds with incremental Bowyer-Watson insertion.

Points are read as "x y" lines, triangles are written as "i j k" lines of
indices into the input, counter-clockwise.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "YAML config file, for example:"+config.Example)
	rootCmd.PersistentFlags().String("log-level", "", "debug, info, warn or error (overrides LogLevel)")
}

// setup loads the config named by --config and a console logger on stderr.
func setup(cmd *cobra.Command) (*config.Parameters, *logger.ZapLogger, error) {
	path, _ := cmd.Flags().GetString("config")
	params, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if cmd.Flags().Changed("log-level") {
		params.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	log, err := logger.New(logger.Config{Level: params.LogLevel, Console: cmd.ErrOrStderr()})
	if err != nil {
		return nil, nil, err
	}
	return params, log, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
