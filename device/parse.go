package device

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parse decodes one device per non-blank line of r.
// Errors are wrapped ErrSyntax or ErrInvalidDevice values carrying the
// 1-based line number.
func Parse(r io.Reader) ([]Device, error) {
	var (
		out  []Device
		line int
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		d, err := ParseLine(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, d)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("device: read input: %w", err)
	}

	return out, nil
}

// ParseLine decodes a single "[lights] (buttons...) {targets}" line.
func ParseLine(s string) (Device, error) {
	p := lineParser{s: strings.TrimSpace(s)}

	lights, err := p.group('[', ']')
	if err != nil {
		return Device{}, err
	}
	lightCount, target, err := decodeLights(lights)
	if err != nil {
		return Device{}, err
	}

	var buttons []uint64
	for {
		p.skipSpace()
		if p.peek() != '(' {
			break
		}
		body, err := p.group('(', ')')
		if err != nil {
			return Device{}, err
		}
		b, err := decodeButton(body, lightCount)
		if err != nil {
			return Device{}, fmt.Errorf("button %d: %w", len(buttons), err)
		}
		buttons = append(buttons, b)
	}

	p.skipSpace()
	body, err := p.group('{', '}')
	if err != nil {
		return Device{}, err
	}
	joltage, err := decodeInts(body)
	if err != nil {
		return Device{}, fmt.Errorf("joltage: %w", err)
	}
	p.skipSpace()
	if !p.done() {
		return Device{}, fmt.Errorf("%w: trailing input %q", ErrSyntax, p.s[p.pos:])
	}

	return New(lightCount, target, buttons, joltage)
}

// lineParser walks one device line left to right.
type lineParser struct {
	s   string
	pos int
}

func (p *lineParser) done() bool { return p.pos >= len(p.s) }

func (p *lineParser) peek() byte {
	if p.done() {
		return 0
	}

	return p.s[p.pos]
}

func (p *lineParser) skipSpace() {
	for !p.done() && (p.s[p.pos] == ' ' || p.s[p.pos] == '\t') {
		p.pos++
	}
}

// group consumes open...shut and returns the text between the delimiters.
func (p *lineParser) group(open, shut byte) (string, error) {
	p.skipSpace()
	if p.peek() != open {
		return "", fmt.Errorf("%w: expected %q at column %d", ErrSyntax, open, p.pos+1)
	}
	end := strings.IndexByte(p.s[p.pos+1:], shut)
	if end < 0 {
		return "", fmt.Errorf("%w: unterminated %q at column %d", ErrSyntax, open, p.pos+1)
	}
	body := p.s[p.pos+1 : p.pos+1+end]
	p.pos += end + 2

	return body, nil
}

func decodeLights(body string) (int, uint64, error) {
	if len(body) == 0 || len(body) > MaxLights {
		return 0, 0, fmt.Errorf("%w: %d lights, want 1..%d", ErrSyntax, len(body), MaxLights)
	}
	var target uint64
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '#':
			target |= 1 << uint(i)
		case '.':
		default:
			return 0, 0, fmt.Errorf("%w: light %d is %q, want '#' or '.'", ErrSyntax, i, body[i])
		}
	}

	return len(body), target, nil
}

func decodeButton(body string, lightCount int) (uint64, error) {
	idx, err := decodeInts(body)
	if err != nil {
		return 0, err
	}
	var b uint64
	for _, i := range idx {
		if i >= lightCount {
			return 0, fmt.Errorf("%w: light %d outside [0,%d)", ErrSyntax, i, lightCount)
		}
		if b>>uint(i)&1 == 1 {
			return 0, fmt.Errorf("%w: light %d listed twice", ErrSyntax, i)
		}
		b |= 1 << uint(i)
	}

	return b, nil
}

// decodeInts splits a comma-separated list of non-negative integers.
// An empty body yields an empty list.
func decodeInts(body string) ([]int, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, nil
	}
	parts := strings.Split(body, ",")
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || v < 0 {
			return nil, fmt.Errorf("%w: %q is not a non-negative integer", ErrSyntax, part)
		}
		out = append(out, v)
	}

	return out, nil
}
