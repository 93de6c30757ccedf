package solver

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/togglenet/device"
	"github.com/katalvlaran/togglenet/reach"
	"github.com/katalvlaran/togglenet/tally"
)

// DeviceResult holds both answers for one device. A part that was not run
// leaves its fields zero.
type DeviceResult struct {
	Index int

	// LightPresses is the fewest presses reaching the indicator pattern.
	LightPresses int

	// TallyPresses is the fewest total presses reaching the counter targets.
	TallyPresses int64
	Presses      []int64
	Method       tally.Method
	Approximate  bool
}

// BatchResult aggregates a batch in input order.
type BatchResult struct {
	Devices     []DeviceResult
	LightTotal  int64
	TallyTotal  int64
	Approximate bool // any device answered by least squares
	Elapsed     time.Duration
}

// SolveDevice runs the selected parts on one device.
func SolveDevice(d device.Device, opts ...Option) (DeviceResult, error) {
	o, err := collect(opts)
	if err != nil {
		return DeviceResult{}, err
	}

	return solveOne(d, o)
}

// SolveBatch solves every device and sums the answers. Devices are
// independent; with Workers > 1 they are spread over an errgroup and each
// result lands in its own slot, so the output does not depend on scheduling.
//
// The first device error cancels the rest and is returned wrapped with the
// device index. A cancelled ctx stops devices that have not started yet.
func SolveBatch(ctx context.Context, devices []device.Device, opts ...Option) (*BatchResult, error) {
	o, err := collect(opts)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	results := make([]DeviceResult, len(devices))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.Workers)
	for i := range devices {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := solveOne(devices[i], o)
			if err != nil {
				return fmt.Errorf("solver: device %d: %w", i, err)
			}
			r.Index = i
			results[i] = r
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		o.Logger.Error("solver: batch failed", zap.Error(err))
		return nil, err
	}

	br := &BatchResult{Devices: results, Elapsed: time.Since(start)}
	for _, r := range results {
		br.LightTotal += int64(r.LightPresses)
		br.TallyTotal += r.TallyPresses
		br.Approximate = br.Approximate || r.Approximate
	}
	o.Logger.Info("solver: batch done",
		zap.Int("devices", len(devices)),
		zap.Int("workers", o.Workers),
		zap.Int64("lights", br.LightTotal),
		zap.Int64("tally", br.TallyTotal),
		zap.Bool("approximate", br.Approximate),
		zap.Duration("elapsed", br.Elapsed))

	return br, nil
}

func solveOne(d device.Device, o Options) (DeviceResult, error) {
	var r DeviceResult
	t0 := time.Now()

	if o.Parts.Has(PartLights) {
		n, err := reach.MinPresses(d, o.Reach...)
		if err != nil {
			return r, err
		}
		r.LightPresses = n
	}
	if o.Parts.Has(PartTally) {
		topts := append([]tally.Option{tally.WithLogger(o.Logger)}, o.Tally...)
		res, err := tally.SolveDevice(d, topts...)
		if err != nil {
			return r, err
		}
		r.TallyPresses = res.Total
		r.Presses = res.Presses
		r.Method = res.Method
		r.Approximate = res.Approximate
	}

	o.Logger.Debug("solver: device",
		zap.Stringer("device", d),
		zap.Int("lights", r.LightPresses),
		zap.Int64("tally", r.TallyPresses),
		zap.Stringer("method", r.Method),
		zap.Duration("took", time.Since(t0)))

	return r, nil
}

func collect(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o, o.err
}
