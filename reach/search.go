// Package reach - layered breadth-first search over the XOR state graph.

package reach

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/togglenet/device"
)

// ErrStateRange is returned when start or target lies outside [0, States()).
var ErrStateRange = errors.New("reach: state outside state space")

// ErrNilTransitions is returned when Search receives a nil Transitions.
var ErrNilTransitions = errors.New("reach: transitions are nil")

// step is a parent link: the state we came from and the button pressed.
type step struct {
	from   uint64
	button int
}

// walker encapsulates mutable search state for one call.
type walker struct {
	tr       Transitions
	opts     Options
	target   uint64
	visited  *bitset.BitSet
	frontier []uint64
	next     []uint64
	parent   map[uint64]step
	explored int
}

// Search runs a layered breadth-first search from start to target over tr.
// The first layer that produces target determines the answer; which button
// path reached it is irrelevant. Visited states are never re-expanded.
//
// Returns ErrNilTransitions, ErrStateRange or ErrOptionViolation for invalid
// input, ErrDepthLimit when MaxDepth is exhausted, and ErrUnreachable when the
// reachable space is exhausted.
//
// Complexity: O(S · b) time, O(S) memory for S reachable states and b buttons.
func Search(start, target uint64, tr Transitions, opts ...Option) (*Result, error) {
	if tr == nil {
		return nil, ErrNilTransitions
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	states := tr.States()
	if start >= states || target >= states {
		return nil, fmt.Errorf("%w: start=%d target=%d states=%d", ErrStateRange, start, target, states)
	}
	if start == target {
		return &Result{Presses: 0, Path: []int{}, Explored: 1}, nil
	}

	w := &walker{
		tr:       tr,
		opts:     o,
		target:   target,
		visited:  bitset.New(uint(states)),
		frontier: make([]uint64, 0, 1),
	}
	if o.RecordPath {
		w.parent = make(map[uint64]step)
	}
	w.mark(start)
	w.frontier = append(w.frontier, start)

	return w.loop()
}

func (w *walker) seen(s uint64) bool { return w.visited.Test(uint(s)) }

func (w *walker) mark(s uint64) {
	w.visited.Set(uint(s))
	w.explored++
}

// loop expands one frontier layer per iteration until the target appears.
func (w *walker) loop() (*Result, error) {
	buttons := w.tr.Buttons()
	depth := 0
	for len(w.frontier) > 0 {
		if w.opts.MaxDepth > 0 && depth >= w.opts.MaxDepth {
			return nil, fmt.Errorf("%w: %d presses explored", ErrDepthLimit, depth)
		}
		w.opts.OnLayer(depth, len(w.frontier))

		w.next = w.next[:0]
		for _, s := range w.frontier {
			for i := 0; i < buttons; i++ {
				n := w.tr.Next(s, i)
				if n == w.target {
					w.link(n, s, i)
					return w.result(depth + 1), nil
				}
				if w.seen(n) {
					continue
				}
				w.mark(n)
				w.link(n, s, i)
				w.next = append(w.next, n)
			}
		}
		w.frontier, w.next = w.next, w.frontier
		depth++
	}

	return nil, fmt.Errorf("%w: %d states explored", ErrUnreachable, w.explored)
}

func (w *walker) link(to, from uint64, button int) {
	if w.parent != nil {
		w.parent[to] = step{from: from, button: button}
	}
}

// result assembles the Result, walking parent links back from the target.
func (w *walker) result(presses int) *Result {
	res := &Result{Presses: presses, Explored: w.explored + 1}
	if w.parent == nil {
		return res
	}
	path := make([]int, presses)
	cur := w.target
	for k := presses - 1; k >= 0; k-- {
		st := w.parent[cur]
		path[k] = st.button
		cur = st.from
	}
	res.Path = path

	return res
}

// TransitionsFor picks the transition model for d: a materialized Table when
// the device is at most TableThreshold lights wide, Implicit otherwise.
func TransitionsFor(d device.Device, opts ...Option) (Transitions, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if d.LightCount() > o.MaxLights {
		return nil, fmt.Errorf("%w: %d lights, limit %d", ErrTooManyLights, d.LightCount(), o.MaxLights)
	}
	if d.LightCount() <= o.TableThreshold {
		return BuildTable(d.LightCount(), d.Buttons()), nil
	}

	return NewImplicit(d.LightCount(), d.Buttons()), nil
}

// SearchDevice searches from all-off to d's target pattern.
func SearchDevice(d device.Device, opts ...Option) (*Result, error) {
	tr, err := TransitionsFor(d, opts...)
	if err != nil {
		return nil, err
	}

	return Search(0, d.Target(), tr, opts...)
}

// MinPresses returns the minimum number of presses that light d's target
// pattern starting from all lights off.
func MinPresses(d device.Device, opts ...Option) (int, error) {
	res, err := SearchDevice(d, opts...)
	if err != nil {
		return 0, err
	}

	return res.Presses, nil
}
