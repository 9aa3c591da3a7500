package model

import (
	"fmt"
	"strings"
)

// Position is the screen anchor of the toast stack.
type Position int

const (
	PositionTopLeft Position = iota
	PositionTopRight
	PositionBottomLeft
	PositionBottomRight
	PositionTopCenter
	PositionBottomCenter
)

// RootClasses are applied to the stack container regardless of position.
var RootClasses = []string{"absolute", "z-10"}

type positionRow struct {
	name    string
	classes []string
}

var positions = [...]positionRow{
	PositionTopLeft:      {"top-left", []string{"top-5", "left-5"}},
	PositionTopRight:     {"top-right", []string{"top-5", "right-5"}},
	PositionBottomLeft:   {"bottom-left", []string{"bottom-5", "left-5"}},
	PositionBottomRight:  {"bottom-right", []string{"bottom-5", "right-5"}},
	PositionTopCenter:    {"top-center", []string{"top-5", "left-1/2", "-translate-x-1/2"}},
	PositionBottomCenter: {"bottom-center", []string{"bottom-5", "left-1/2", "-translate-x-1/2"}},
}

// Positions returns all valid positions.
func Positions() []Position {
	return []Position{
		PositionTopLeft,
		PositionTopRight,
		PositionBottomLeft,
		PositionBottomRight,
		PositionTopCenter,
		PositionBottomCenter,
	}
}

// ParsePosition parses a position name such as "top-right".
func ParsePosition(s string) (Position, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, p := range Positions() {
		if positions[p].name == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPosition, s)
}

// Valid reports whether p is one of the six anchors.
func (p Position) Valid() bool {
	return p >= PositionTopLeft && p <= PositionBottomCenter
}

func (p Position) String() string {
	if !p.Valid() {
		return "unknown"
	}
	return positions[p].name
}

// OffsetClasses returns the offset utility classes for the anchor.
// The returned slice is a copy.
func (p Position) OffsetClasses() []string {
	if !p.Valid() {
		return nil
	}
	return append([]string(nil), positions[p].classes...)
}

// IsTop reports whether the stack is anchored to the top edge.
func (p Position) IsTop() bool {
	return p == PositionTopLeft || p == PositionTopRight || p == PositionTopCenter
}

// IsCenter reports whether the stack is horizontally centred.
func (p Position) IsCenter() bool {
	return p == PositionTopCenter || p == PositionBottomCenter
}

// IsRight reports whether the stack is anchored to the right edge.
func (p Position) IsRight() bool {
	return p == PositionTopRight || p == PositionBottomRight
}

// MarshalText implements encoding.TextMarshaler.
func (p Position) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPosition, int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Position) UnmarshalText(text []byte) error {
	parsed, err := ParsePosition(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
