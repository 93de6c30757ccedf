// SPDX-License-Identifier: MIT
// Package: togglenet/devicegen
//
// random.go — planted-solution device sampler.
//
// Model:
//   - Draw k buttons; wire each (button, light) pair with probability p, and
//     force one random wire onto any button left empty.
//   - Draw a hidden press vector x_j ∈ [0, maxPresses].
//   - Joltage = A·x (so the counter problem is feasible with total ≤ sum(x)),
//     target  = XOR of buttons pressed an odd number of times (so the light
//     problem is reachable).
//
// Determinism:
//   - Fixed draw order: button count, wiring (button asc, light asc), presses.
//   - Identical output for identical seed and options.
//
// Complexity:
//   - Time O(k·lights), Space O(k + lights).

package devicegen

import (
	"fmt"

	"github.com/katalvlaran/togglenet/device"
)

// Planted is a generated device together with the press vector it was built from.
type Planted struct {
	Device  device.Device
	Presses []int
}

// Random samples one device over the given number of lights.
func Random(lights int, opts ...Option) (Planted, error) {
	cfg := newGenConfig(opts...)

	return cfg.sample(lights)
}

// Batch samples n devices from one RNG stream.
func Batch(n, lights int, opts ...Option) ([]Planted, error) {
	if n < 0 {
		return nil, fmt.Errorf("Batch: n=%d: %w", n, ErrTooFewLights)
	}
	cfg := newGenConfig(opts...)
	out := make([]Planted, 0, n)
	for i := 0; i < n; i++ {
		p, err := cfg.sample(lights)
		if err != nil {
			return nil, fmt.Errorf("Batch: device %d: %w", i, err)
		}
		out = append(out, p)
	}

	return out, nil
}

// Devices strips the planted press vectors.
func Devices(ps []Planted) []device.Device {
	out := make([]device.Device, len(ps))
	for i, p := range ps {
		out[i] = p.Device
	}

	return out
}

func (c genConfig) sample(lights int) (Planted, error) {
	if lights < 1 || lights > device.MaxLights {
		return Planted{}, fmt.Errorf("Random: lights=%d not in [1,%d]: %w", lights, device.MaxLights, ErrTooFewLights)
	}
	if c.rng == nil {
		return Planted{}, fmt.Errorf("Random: %w", ErrNeedRandSource)
	}
	lo, hi := c.minButtons, c.maxButtons
	if lo == 0 {
		lo, hi = lights, 2*lights
	}
	k := lo + c.rng.Intn(hi-lo+1)

	buttons := make([]uint64, k)
	for j := range buttons {
		for i := 0; i < lights; i++ {
			if c.rng.Float64() < c.density {
				buttons[j] |= 1 << uint(i)
			}
		}
		if buttons[j] == 0 {
			buttons[j] = 1 << uint(c.rng.Intn(lights))
		}
	}

	presses := make([]int, k)
	joltage := make([]int, lights)
	var target uint64
	for j, b := range buttons {
		x := c.rng.Intn(c.maxPresses + 1)
		presses[j] = x
		if x%2 == 1 {
			target ^= b
		}
		for i := 0; i < lights; i++ {
			if b>>uint(i)&1 == 1 {
				joltage[i] += x
			}
		}
	}

	d, err := device.New(lights, target, buttons, joltage)
	if err != nil {
		return Planted{}, fmt.Errorf("Random: %w", err)
	}

	return Planted{Device: d, Presses: presses}, nil
}
