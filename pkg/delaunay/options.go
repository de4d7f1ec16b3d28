package delaunay

import (
	"math"

	"github.com/0x0FACED/go-delaunay/pkg/geom"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// MinScale is the smallest accepted super-triangle scale factor.
const MinScale = 20.0

type options struct {
	eps     float64
	scale   float64
	shuffle bool
	seed    uint64
	log     *zap.Logger
	err     error
}

type Option func(*options)

// WithEpsilon sets the absolute tolerance of every geometric comparison.
func WithEpsilon(eps float64) Option {
	return func(o *options) {
		if !(eps > 0) || math.IsInf(eps, 0) {
			o.err = errors.Errorf("delaunay: epsilon must be a positive finite number, got %v", eps)
			return
		}
		o.eps = eps
	}
}

// WithScale sets how many bounding-box sides the super-triangle vertices are
// pushed away from the box center.
func WithScale(k float64) Option {
	return func(o *options) {
		if !(k >= MinScale) || math.IsInf(k, 0) {
			o.err = errors.Errorf("delaunay: scale must be a finite number >= %v, got %v", MinScale, k)
			return
		}
		o.scale = k
	}
}

// WithShuffle inserts points in a pseudo-random order derived from seed.
// Output indices still refer to the caller's order.
func WithShuffle(seed uint64) Option {
	return func(o *options) {
		o.shuffle = true
		o.seed = seed
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

func newOptions(opts ...Option) *options {
	o := &options{
		eps:   geom.Epsilon,
		scale: MinScale,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
