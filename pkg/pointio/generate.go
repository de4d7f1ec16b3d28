package pointio

import (
	"math/rand/v2"

	"github.com/0x0FACED/go-delaunay/pkg/geom"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"
)

type Distribution string

const (
	Normal  Distribution = "normal"
	Uniform Distribution = "uniform"
)

type CloudParams struct {
	Distribution Distribution `json:"Distribution"`
	Count        int          `json:"Count"`
	// Normal
	StdDev float64 `json:"StdDev"`
	// Uniform
	Min float64 `json:"Min"`
	Max float64 `json:"Max"`
}

// DefaultCloud matches the clouds used to benchmark the triangulator: a
// centered normal distribution with standard deviation 100.
func DefaultCloud() CloudParams {
	return CloudParams{Distribution: Normal, Count: 1000, StdDev: 100, Min: -400, Max: 400}
}

// Generate draws p.Count points with both coordinates from the same
// distribution. The same seed always yields the same cloud.
func Generate(p CloudParams, seed uint64) ([]geom.Point, error) {
	if p.Count < 0 {
		return nil, errors.Errorf("negative point count %d", p.Count)
	}
	src := rand.NewPCG(seed, seed>>1|1)

	var x, y interface{ Rand() float64 }
	switch p.Distribution {
	case Normal, "":
		if !(p.StdDev > 0) {
			return nil, errors.Errorf("normal distribution needs a positive StdDev, got %v", p.StdDev)
		}
		x = distuv.Normal{Mu: 0, Sigma: p.StdDev, Src: src}
		y = distuv.Normal{Mu: 0, Sigma: p.StdDev, Src: src}
	case Uniform:
		if !(p.Max > p.Min) {
			return nil, errors.Errorf("uniform distribution needs Min < Max, got [%v, %v]", p.Min, p.Max)
		}
		x = distuv.Uniform{Min: p.Min, Max: p.Max, Src: src}
		y = distuv.Uniform{Min: p.Min, Max: p.Max, Src: src}
	default:
		return nil, errors.Errorf("unknown distribution %q", p.Distribution)
	}

	points := make([]geom.Point, p.Count)
	for i := range points {
		points[i] = geom.Point{X: x.Rand(), Y: y.Rand()}
	}
	return points, nil
}
