package solver

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/togglenet/reach"
	"github.com/katalvlaran/togglenet/tally"
)

// ErrOptionViolation is returned when an invalid Option is supplied.
var ErrOptionViolation = errors.New("solver: invalid option supplied")

// Part selects which of the two per-device problems are solved.
type Part uint8

const (
	// PartLights: fewest presses to reach the indicator pattern.
	PartLights Part = 1 << iota
	// PartTally: fewest presses to reach the counter targets.
	PartTally

	// PartAll runs both.
	PartAll = PartLights | PartTally
)

// Has reports whether p includes q.
func (p Part) Has(q Part) bool { return p&q != 0 }

// ParsePart maps 0 (both), 1 or 2 to a Part, as used by the CLI --part flag.
func ParsePart(n int) (Part, error) {
	switch n {
	case 0:
		return PartAll, nil
	case 1:
		return PartLights, nil
	case 2:
		return PartTally, nil
	default:
		return 0, fmt.Errorf("%w: part must be 0, 1 or 2 (%d)", ErrOptionViolation, n)
	}
}

// Option configures a batch via functional arguments.
type Option func(*Options)

// Options holds batch parameters.
type Options struct {
	// Workers is the number of devices solved concurrently. 1 is sequential.
	Workers int

	Parts Part

	Logger *zap.Logger

	Reach []reach.Option
	Tally []tally.Option

	err error
}

// DefaultOptions returns a sequential, silent configuration solving both parts.
func DefaultOptions() Options {
	return Options{
		Workers: 1,
		Parts:   PartAll,
		Logger:  zap.NewNop(),
	}
}

// WithWorkers sets the worker count. Must be >= 1.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: Workers must be >= 1 (%d)", ErrOptionViolation, n)
			return
		}
		o.Workers = n
	}
}

// WithParts restricts the batch to the given parts.
func WithParts(p Part) Option {
	return func(o *Options) {
		if p == 0 || p&^PartAll != 0 {
			o.err = fmt.Errorf("%w: unknown parts %#x", ErrOptionViolation, uint8(p))
			return
		}
		o.Parts = p
	}
}

// WithLogger sets the batch logger; it is also handed to the counter solver.
// A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithReachOptions appends options for the indicator search.
func WithReachOptions(opts ...reach.Option) Option {
	return func(o *Options) {
		o.Reach = append(o.Reach, opts...)
	}
}

// WithTallyOptions appends options for the counter solver.
func WithTallyOptions(opts ...tally.Option) Option {
	return func(o *Options) {
		o.Tally = append(o.Tally, opts...)
	}
}
