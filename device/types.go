package device

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// MaxLights is the widest light bank a Device can describe (one uint64 state).
const MaxLights = 64

// Sentinel errors for device construction and decoding.
var (
	// ErrInvalidDevice is returned when a device breaks a structural invariant.
	ErrInvalidDevice = errors.New("device: invalid device")

	// ErrSyntax is returned when a line does not follow the device text format.
	ErrSyntax = errors.New("device: syntax error")
)

// Device is one machine of lights, buttons and counters.
// The zero value is not valid; build one with New or Parse.
type Device struct {
	lightCount int
	target     uint64
	buttons    []uint64
	joltage    []int
}

// New validates its inputs and returns a Device holding private copies of them.
//
// Invariants:
//   - 1 <= lightCount <= MaxLights.
//   - target and every button only use bits in [0, lightCount).
//   - len(joltage) == lightCount and every entry is non-negative.
func New(lightCount int, target uint64, buttons []uint64, joltage []int) (Device, error) {
	if lightCount < 1 || lightCount > MaxLights {
		return Device{}, fmt.Errorf("%w: light count %d outside [1,%d]", ErrInvalidDevice, lightCount, MaxLights)
	}
	mask := Mask(lightCount)
	if target&^mask != 0 {
		return Device{}, fmt.Errorf("%w: target %#b exceeds %d lights", ErrInvalidDevice, target, lightCount)
	}
	for i, b := range buttons {
		if b&^mask != 0 {
			return Device{}, fmt.Errorf("%w: button %d (%#b) exceeds %d lights", ErrInvalidDevice, i, b, lightCount)
		}
	}
	if len(joltage) != lightCount {
		return Device{}, fmt.Errorf("%w: %d joltage targets for %d lights", ErrInvalidDevice, len(joltage), lightCount)
	}
	for i, j := range joltage {
		if j < 0 {
			return Device{}, fmt.Errorf("%w: negative joltage %d at counter %d", ErrInvalidDevice, j, i)
		}
	}

	return Device{
		lightCount: lightCount,
		target:     target,
		buttons:    append([]uint64(nil), buttons...),
		joltage:    append([]int(nil), joltage...),
	}, nil
}

// Mask returns the bitmask with the low n bits set.
func Mask(n int) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}

	return 1<<uint(n) - 1
}

// LightCount returns the number of indicator lights.
func (d Device) LightCount() int { return d.lightCount }

// Target returns the requested light pattern; bit i is light i.
func (d Device) Target() uint64 { return d.target }

// NumButtons returns the number of buttons.
func (d Device) NumButtons() int { return len(d.buttons) }

// Buttons returns a copy of the button bitmasks in input order.
func (d Device) Buttons() []uint64 { return append([]uint64(nil), d.buttons...) }

// Joltage returns a copy of the per-counter targets.
func (d Device) Joltage() []int { return append([]int(nil), d.joltage...) }

// Wiring returns the lights toggled by button i, ascending.
func (d Device) Wiring(i int) []int {
	b := d.buttons[i]
	out := make([]int, 0, bits.OnesCount64(b))
	for b != 0 {
		out = append(out, bits.TrailingZeros64(b))
		b &= b - 1
	}

	return out
}

// String renders the device in the text format accepted by ParseLine.
func (d Device) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := 0; i < d.lightCount; i++ {
		if d.target>>uint(i)&1 == 1 {
			sb.WriteByte('#')
		} else {
			sb.WriteByte('.')
		}
	}
	sb.WriteByte(']')
	for i := range d.buttons {
		sb.WriteString(" (")
		for k, l := range d.Wiring(i) {
			if k > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Itoa(l))
		}
		sb.WriteByte(')')
	}
	sb.WriteString(" {")
	for i, j := range d.joltage {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(j))
	}
	sb.WriteByte('}')

	return sb.String()
}
