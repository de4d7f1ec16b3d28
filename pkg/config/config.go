package config

import (
	"os"

	"github.com/0x0FACED/go-delaunay/pkg/delaunay"
	"github.com/0x0FACED/go-delaunay/pkg/geom"
	"github.com/0x0FACED/go-delaunay/pkg/pointio"
	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Parameters obtained from the YAML config file. ghodss/yaml goes through
// encoding/json, hence the json tags.
type Parameters struct {
	Epsilon  float64             `json:"Epsilon"`
	Scale    float64             `json:"Scale"`
	Shuffle  bool                `json:"Shuffle"`
	Seed     uint64              `json:"Seed"`
	LogLevel string              `json:"LogLevel"`
	Cloud    pointio.CloudParams `json:"Cloud"`
	Server   Server              `json:"Server"`
}

type Server struct {
	Addr   string `json:"Addr"`
	Width  int    `json:"Width"`
	Height int    `json:"Height"`
	// Count of random points drawn per request when the form leaves it empty.
	Points  int  `json:"Points"`
	Voronoi bool `json:"Voronoi"`
}

const Example = `
########################################
Epsilon: 1e-9
Scale: 20
Shuffle: false
Seed: 42
LogLevel: info
Cloud:
  Distribution: normal # or uniform
  Count: 1000
  StdDev: 100
  Min: -400
  Max: 400
Server:
  Addr: ":8080"
  Width: 1000
  Height: 1000
  Points: 50
  Voronoi: true
########################################
`

func Default() *Parameters {
	return &Parameters{
		Epsilon:  geom.Epsilon,
		Scale:    delaunay.MinScale,
		Seed:     42,
		LogLevel: "info",
		Cloud:    pointio.DefaultCloud(),
		Server: Server{
			Addr:    ":8080",
			Width:   1000,
			Height:  1000,
			Points:  50,
			Voronoi: true,
		},
	}
}

// Parse overlays data on the current values.
func (p *Parameters) Parse(data []byte) error {
	return errors.Wrap(yaml.Unmarshal(data, p), "parse config")
}

func Load(path string) (*Parameters, error) {
	p := Default()
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if err := p.Parse(data); err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return p, p.Validate()
}

func (p *Parameters) Validate() error {
	if !(p.Epsilon > 0) {
		return errors.Errorf("Epsilon must be positive, got %v", p.Epsilon)
	}
	if !(p.Scale >= delaunay.MinScale) {
		return errors.Errorf("Scale must be at least %v, got %v", delaunay.MinScale, p.Scale)
	}
	if p.Server.Width <= 0 || p.Server.Height <= 0 {
		return errors.Errorf("Server size must be positive, got %dx%d", p.Server.Width, p.Server.Height)
	}
	return nil
}

// Options turns the parameters into triangulation options.
func (p *Parameters) Options(log *zap.Logger) []delaunay.Option {
	opts := []delaunay.Option{
		delaunay.WithEpsilon(p.Epsilon),
		delaunay.WithScale(p.Scale),
		delaunay.WithLogger(log),
	}
	if p.Shuffle {
		opts = append(opts, delaunay.WithShuffle(p.Seed))
	}
	return opts
}

func (p *Parameters) Fields() []zap.Field {
	return []zap.Field{
		zap.Float64("epsilon", p.Epsilon),
		zap.Float64("scale", p.Scale),
		zap.Bool("shuffle", p.Shuffle),
		zap.Uint64("seed", p.Seed),
		zap.String("distribution", string(p.Cloud.Distribution)),
		zap.Int("count", p.Cloud.Count),
	}
}
