// SPDX-License-Identifier: MIT
// Package: togglenet/devicegen
//
// errors.go — sentinel errors for the generator.
//
// Error policy:
//   • Only package-level sentinels are exposed; callers branch with errors.Is.
//   • Generators attach context with %w and never panic at runtime.
//   • Option constructors panic on meaningless values (nil RNG, p outside [0,1])
//     so misuse surfaces at the call site.

package devicegen

import "errors"

// ErrTooFewLights indicates lights < 1, lights > device.MaxLights, or a
// button range below 1.
var ErrTooFewLights = errors.New("devicegen: parameter out of range")

// ErrNeedRandSource indicates that no RNG was configured (WithSeed/WithRand).
var ErrNeedRandSource = errors.New("devicegen: rng is required")
