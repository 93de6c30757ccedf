package reach

// Transitions describes the implicit state graph of a light bank.
// States are the integers [0, States()); pressing button i in state s leads to
// Next(s, i). Implementations must be pure.
type Transitions interface {
	States() uint64
	Buttons() int
	Next(state uint64, button int) uint64
}

// Table is a materialized transition table stored row-major:
// next[state*buttons + i] == state ^ button[i].
// Memory is 2^n × len(buttons) words, so it is meant for narrow devices.
type Table struct {
	states  uint64
	buttons int
	next    []uint64
}

// BuildTable precomputes every transition for a bank of lightCount lights.
// The caller bounds lightCount; nothing here guards against large values.
//
// Complexity: O(2^n · b) time and memory.
func BuildTable(lightCount int, buttons []uint64) *Table {
	states := uint64(1) << uint(lightCount)
	b := len(buttons)
	next := make([]uint64, states*uint64(b))
	var s uint64
	for s = 0; s < states; s++ {
		row := next[s*uint64(b) : (s+1)*uint64(b)]
		for i, mask := range buttons {
			row[i] = s ^ mask
		}
	}

	return &Table{states: states, buttons: b, next: next}
}

// States returns 2^lightCount.
func (t *Table) States() uint64 { return t.states }

// Buttons returns the number of buttons per row.
func (t *Table) Buttons() int { return t.buttons }

// Next returns the state after pressing button i in state s.
func (t *Table) Next(s uint64, i int) uint64 { return t.next[s*uint64(t.buttons)+uint64(i)] }

// Row returns the ordered successors of s. The slice aliases the table.
func (t *Table) Row(s uint64) []uint64 {
	b := uint64(t.buttons)
	return t.next[s*b : (s+1)*b]
}

// Implicit computes transitions on demand: Next(s, i) = s ^ buttons[i].
type Implicit struct {
	states  uint64
	buttons []uint64
}

// NewImplicit returns on-the-fly transitions for lightCount lights.
func NewImplicit(lightCount int, buttons []uint64) *Implicit {
	return &Implicit{
		states:  uint64(1) << uint(lightCount),
		buttons: append([]uint64(nil), buttons...),
	}
}

// States returns 2^lightCount.
func (im *Implicit) States() uint64 { return im.states }

// Buttons returns the number of buttons.
func (im *Implicit) Buttons() int { return len(im.buttons) }

// Next returns s ^ buttons[i].
func (im *Implicit) Next(s uint64, i int) uint64 { return s ^ im.buttons[i] }

var (
	_ Transitions = (*Table)(nil)
	_ Transitions = (*Implicit)(nil)
)
