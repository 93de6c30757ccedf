// Package togglenet solves toggle-network devices: banks of indicator lights
// and counters driven by buttons that are each wired to a subset of them.
//
// 🚀 What is togglenet?
//
//	Two minimum-press problems over one parsed device:
//		• Lights: a press XOR-toggles its wired lights; find the fewest presses
//		  that turn an all-off bank into the target pattern (breadth-first
//		  search over the 2ⁿ state graph).
//		• Counters: a press adds one to each wired counter; find the fewest
//		  total presses that hit every target exactly (exact integer simplex
//		  plus branch-and-bound, with a least-squares fallback).
//
// ✨ Why togglenet?
//
//   - Exact – integer tableau arithmetic, no floating-point drift on the main path
//   - Honest – unreachable targets are errors, never a bogus count
//   - Pure functions – devices are immutable values; batches may run in parallel
//
// Packages:
//
//	device/  — Device value, line parser and formatter
//	reach/   — transition table / implicit transitions + layered BFS
//	tableau/ — fraction-free int64 tableau with exact pivoting
//	tally/   — two-phase simplex, branch-and-bound, method dispatch
//	lsq/     — normal-equations least-squares candidate search (gonum)
//	solver/  — per-device and batch aggregation, worker pool, logging
//	config/  — YAML configuration with environment overrides
//	devicegen/ — seeded random devices with a planted solution
//	cmd/togglenet — cobra CLI (solve, gen, version)
//
// Input line:
//
//	[.##.] (3) (1,3) (2) (2,3) (0,2) (0,1) {3,5,4,7}
//	 ^lights ^buttons (wired indices)       ^counter targets
//
//	go install github.com/katalvlaran/togglenet/cmd/togglenet@latest
package togglenet
