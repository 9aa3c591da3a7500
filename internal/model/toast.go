// Package model defines the core data structures for toasty.
package model

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Validation errors.
var (
	ErrUnknownType     = errors.New("unknown toast type")
	ErrUnknownPosition = errors.New("unknown position")
	ErrInvalidTimeout  = errors.New("timeout must be greater than 0")
)

// Type is the kind of a toast. It selects the icon and the border colour.
type Type int

const (
	TypeSuccess Type = iota
	TypeInfo
	TypeWarning
	TypeError
)

// typeStyle is one row of the per-type lookup table.
type typeStyle struct {
	name   string
	icon   Icon
	border string // utility class applied to the timeline border wrapper
	colour string // terminal colour (hex)
	glyph  string
}

var typeStyles = [...]typeStyle{
	TypeSuccess: {name: "success", icon: IconSuccess, border: "border-green-500", colour: "#22c55e", glyph: "✔"},
	TypeInfo:    {name: "info", icon: IconInfo, border: "border-blue-500", colour: "#3b82f6", glyph: "ℹ"},
	TypeWarning: {name: "warning", icon: IconWarning, border: "border-amber-500", colour: "#f59e0b", glyph: "⚠"},
	TypeError:   {name: "error", icon: IconError, border: "border-red-500", colour: "#ef4444", glyph: "✖"},
}

// Types returns every toast type in display order.
func Types() []Type {
	return []Type{TypeSuccess, TypeInfo, TypeWarning, TypeError}
}

// ParseType parses a type name. Matching is case-insensitive and ignores
// surrounding whitespace, so button labels such as "Success" parse directly.
func ParseType(s string) (Type, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, t := range Types() {
		if typeStyles[t].name == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// Valid reports whether t is one of the defined types.
func (t Type) Valid() bool {
	return t >= TypeSuccess && t <= TypeError
}

func (t Type) String() string {
	if !t.Valid() {
		return "unknown"
	}
	return typeStyles[t].name
}

// Label returns the capitalised name used on trigger buttons.
func (t Type) Label() string {
	s := t.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// Icon returns the icon shown at the start of the toast.
func (t Type) Icon() Icon {
	if !t.Valid() {
		return IconCross
	}
	return typeStyles[t].icon
}

// BorderClass returns the border colour class for the timeline wrapper.
func (t Type) BorderClass() string {
	if !t.Valid() {
		return ""
	}
	return typeStyles[t].border
}

// Colour returns the terminal colour for the type as a hex string.
func (t Type) Colour() string {
	if !t.Valid() {
		return "#9ca3af"
	}
	return typeStyles[t].colour
}

// Glyph returns a single-cell stand-in for the icon in terminal output.
func (t Type) Glyph() string {
	if !t.Valid() {
		return "?"
	}
	return typeStyles[t].glyph
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Icon identifies one of the bundled image assets.
type Icon int

const (
	IconSuccess Icon = iota
	IconInfo
	IconWarning
	IconError
	IconCross
)

var iconAssets = [...]string{
	IconSuccess: "./check-circle.svg",
	IconInfo:    "./info-circle.svg",
	IconWarning: "./exclamation-triangle.svg",
	IconError:   "./times-circle.svg",
	IconCross:   "./cross.svg",
}

var iconNames = [...]string{
	IconSuccess: "success",
	IconInfo:    "info",
	IconWarning: "warning",
	IconError:   "error",
	IconCross:   "cross",
}

// Src returns the asset path of the icon.
func (i Icon) Src() string {
	if i < IconSuccess || i > IconCross {
		return ""
	}
	return iconAssets[i]
}

func (i Icon) String() string {
	if i < IconSuccess || i > IconCross {
		return "unknown"
	}
	return iconNames[i]
}

// NewID returns a new ULID string for a toast.
func NewID(now time.Time) (string, error) {
	id, err := ulid.New(ulid.Timestamp(now), rand.Reader)
	if err != nil {
		return "", fmt.Errorf("failed to generate ULID: %w", err)
	}
	return id.String(), nil
}
