// Package reach answers "how few presses light the target pattern?" for a
// toggle-network device.
//
// What
//
//   - A light bank of n lights is a state s in [0, 2^n); pressing a button XORs
//     its bitmask into s. The reachable states form an unweighted graph whose
//     edges are presses.
//   - Search runs layered BFS from a start state and returns the number of
//     layers needed to produce the target, the first layer that does so.
//   - BuildTable materializes transition[state][button]; Implicit computes the
//     same transitions on demand, so memory stays O(2^n) bits instead of
//     O(2^n · b) words for wider devices.
//
// Determinism
//
//	Buttons are expanded in input order and frontier states in discovery
//	order, so the optional recorded Path is reproducible.
//
// Complexity (n = lights, b = buttons)
//
//   - Time:   O(2^n · b) worst case.
//   - Memory: O(2^n) bits for the visited set, plus O(2^n · b) words when a
//     Table is materialized.
//
// Usage
//
//	presses, err := reach.MinPresses(d)
//
//	res, err := reach.SearchDevice(d,
//	    reach.WithPath(),
//	    reach.WithTableThreshold(12),
//	    reach.WithOnLayer(func(depth, frontier int) { /* ... */ }),
//	)
//
// Errors
//
//   - ErrUnreachable      the buttons cannot produce the target.
//   - ErrTooManyLights    the device is wider than MaxLights.
//   - ErrDepthLimit       MaxDepth layers were expanded without success.
//   - ErrStateRange       start or target outside the state space.
//   - ErrOptionViolation  invalid Option.
package reach
