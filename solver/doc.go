// Package solver runs both minimum-press problems on parsed devices and
// aggregates the answers.
//
// SolveDevice answers one device; SolveBatch answers a slice in input order,
// optionally across an errgroup worker pool (WithWorkers), and sums
// LightPresses into LightTotal and TallyPresses into TallyTotal.
//
// Options are forwarded: WithReachOptions to package reach, WithTallyOptions
// to package tally. WithLogger's logger is also handed to tally so fallback
// warnings land in the same sink. WithParts limits the work to one problem.
//
// The first failing device aborts the batch; its error is wrapped as
// "solver: device N: ..." and still matches the underlying sentinel with
// errors.Is.
package solver
