// SPDX-License-Identifier: MIT
// Package: togglenet/devicegen
//
// config.go — functional options and deterministic defaults.
//
// Defaults:
//   • rng         = nil   (Random fails with ErrNeedRandSource until seeded)
//   • buttons     = [lights, 2·lights]
//   • density     = 0.4   (probability that a button is wired to a light)
//   • maxPresses  = 5     (hidden per-button press count is drawn from [0,5])

package devicegen

import "math/rand"

const (
	defaultDensity    = 0.4
	defaultMaxPresses = 5
)

// Option customizes generation by mutating a genConfig.
type Option func(*genConfig)

type genConfig struct {
	rng        *rand.Rand
	minButtons int // 0 → lights
	maxButtons int // 0 → 2·lights
	density    float64
	maxPresses int
}

func newGenConfig(opts ...Option) genConfig {
	c := genConfig{density: defaultDensity, maxPresses: defaultMaxPresses}
	for _, opt := range opts {
		opt(&c)
	}

	return c
}

// WithSeed creates a fresh seeded RNG (deterministic output).
func WithSeed(seed int64) Option {
	return func(c *genConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand shares an explicit RNG. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("devicegen: WithRand(nil)")
	}

	return func(c *genConfig) {
		c.rng = r
	}
}

// WithButtons draws the button count uniformly from [lo, hi].
// Panics unless 1 <= lo <= hi.
func WithButtons(lo, hi int) Option {
	if lo < 1 || hi < lo {
		panic("devicegen: WithButtons needs 1 <= lo <= hi")
	}

	return func(c *genConfig) {
		c.minButtons, c.maxButtons = lo, hi
	}
}

// WithDensity sets the per-(button, light) wiring probability. Panics
// outside [0,1]. Every button still gets at least one wire.
func WithDensity(p float64) Option {
	if p < 0 || p > 1 {
		panic("devicegen: WithDensity outside [0,1]")
	}

	return func(c *genConfig) {
		c.density = p
	}
}

// WithMaxPresses bounds the hidden press count of each button. Panics on n < 0.
func WithMaxPresses(n int) Option {
	if n < 0 {
		panic("devicegen: WithMaxPresses(n<0)")
	}

	return func(c *genConfig) {
		c.maxPresses = n
	}
}
