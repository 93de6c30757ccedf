// Package reach - options, sentinel errors and the Result type.

package reach

import (
	"errors"
	"fmt"
)

// Sentinel errors for reachability search.
var (
	// ErrUnreachable is returned when the whole reachable state space was
	// explored without meeting the target. For well-formed input this means the
	// buttons do not span the target pattern.
	ErrUnreachable = errors.New("reach: target unreachable")

	// ErrTooManyLights is returned when a device is wider than the configured
	// MaxLights, so the 2^n state space would not be tractable.
	ErrTooManyLights = errors.New("reach: too many lights")

	// ErrDepthLimit is returned when MaxDepth layers were expanded without
	// meeting the target.
	ErrDepthLimit = errors.New("reach: depth limit reached")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("reach: invalid option supplied")
)

const (
	// DefaultTableThreshold is the widest device whose transition table is
	// materialized; wider devices use Implicit transitions.
	DefaultTableThreshold = 16

	// DefaultMaxLights bounds the state space at 2^24 states.
	DefaultMaxLights = 24
)

// Option configures search behavior via functional arguments.
// Invalid options are recorded and surfaced as ErrOptionViolation when the
// search is invoked.
type Option func(*Options)

// Options holds parameters and callbacks for a search.
type Options struct {
	// TableThreshold: devices with LightCount <= TableThreshold use a
	// precomputed Table, wider ones compute transitions on the fly.
	TableThreshold int

	// MaxLights rejects devices wider than this with ErrTooManyLights.
	MaxLights int

	// MaxDepth, if > 0, stops the search after that many layers.
	// 0 disables the limit.
	MaxDepth int

	// OnLayer is called before each layer is expanded with the layer's depth
	// and the number of frontier states.
	OnLayer func(depth, frontier int)

	// RecordPath keeps parent links so Result.Path holds one shortest sequence.
	RecordPath bool

	err error
}

// DefaultOptions returns Options with the package defaults and a no-op hook.
func DefaultOptions() Options {
	return Options{
		TableThreshold: DefaultTableThreshold,
		MaxLights:      DefaultMaxLights,
		MaxDepth:       0,
		OnLayer:        func(int, int) {},
	}
}

// WithTableThreshold sets the widest device that gets a materialized table.
// Negative values are an ErrOptionViolation; 0 always uses Implicit.
func WithTableThreshold(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: TableThreshold cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.TableThreshold = n
	}
}

// WithMaxLights sets the widest device accepted. Must be in [1,63].
func WithMaxLights(n int) Option {
	return func(o *Options) {
		if n < 1 || n > 63 {
			o.err = fmt.Errorf("%w: MaxLights must be in [1,63] (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxLights = n
	}
}

// WithMaxDepth stops the search after d layers.
//
//	d > 0: limit to d presses
//	d == 0: explicit no limit
//	d < 0: invalid option → ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithOnLayer registers a callback run before each layer expansion.
func WithOnLayer(fn func(depth, frontier int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnLayer = fn
		}
	}
}

// WithPath records one shortest press sequence in Result.Path.
func WithPath() Option {
	return func(o *Options) {
		o.RecordPath = true
	}
}

// Result holds the outcome of a search.
//   - Presses: minimum number of presses from start to target.
//   - Path: button indices of one shortest sequence (only WithPath).
//   - Explored: number of distinct states discovered, start included.
type Result struct {
	Presses  int
	Path     []int
	Explored int
}
