// Package device defines the immutable Device model shared by the toggle-network
// solvers, and the decoder for its one-line text form.
//
// What
//
//   - Device: light count, target light pattern, button bitmasks and per-counter
//     joltage targets. Counter i is driven by light i, so a button that toggles
//     light i also adds one to counter i every time it is pressed.
//   - Parse / ParseLine: decode "[.##.] (3) (1,3) (2) {3,5,4,7}" lines.
//   - Device.String renders the same syntax back.
//
// Format
//
//	[lights]        '#' lit, '.' unlit; the width is the light count.
//	(i,j,...)       one group per button, listing the light indices it toggles.
//	{t0,t1,...}     one target per light counter.
//
// Errors
//
//   - ErrInvalidDevice  a decoded or constructed device breaks an invariant.
//   - ErrSyntax         the text is not in the format above (wrapped with line number).
package device
