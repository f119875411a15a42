package placement

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPlacement is returned by Parse for input that names none of the nine placements.
var ErrUnknownPlacement = errors.New("unknown placement")

// Placement is one of the nine fixed positions a window can be moved to,
// relative to the usable area of its screen.
type Placement int

const (
	Center       Placement = iota // Center of the area.
	TopLeft                       // North-west corner.
	TopCenter                     // North edge, horizontally centered.
	TopRight                      // North-east corner.
	CenterRight                   // East edge, vertically centered.
	BottomRight                   // South-east corner.
	BottomCenter                  // South edge, horizontally centered.
	BottomLeft                    // South-west corner.
	CenterLeft                    // West edge, vertically centered.
)

var names = [...]string{
	Center:       "center",
	TopLeft:      "top-left",
	TopCenter:    "top-center",
	TopRight:     "top-right",
	CenterRight:  "center-right",
	BottomRight:  "bottom-right",
	BottomCenter: "bottom-center",
	BottomLeft:   "bottom-left",
	CenterLeft:   "center-left",
}

// Numeric keypad layout: the digit sits where the placement sits on screen.
var keypad = [...]int{
	Center:       5,
	TopLeft:      7,
	TopCenter:    8,
	TopRight:     9,
	CenterRight:  6,
	BottomRight:  3,
	BottomCenter: 2,
	BottomLeft:   1,
	CenterLeft:   4,
}

// All returns the nine placements in declaration order.
func All() []Placement {
	return []Placement{
		Center, TopLeft, TopCenter, TopRight, CenterRight,
		BottomRight, BottomCenter, BottomLeft, CenterLeft,
	}
}

// Valid reports whether p is one of the nine declared placements.
func (p Placement) Valid() bool {
	return p >= Center && p <= CenterLeft
}

// String returns the canonical kebab-case name, e.g. "top-left".
func (p Placement) String() string {
	if !p.Valid() {
		return fmt.Sprintf("placement(%d)", int(p))
	}
	return names[p]
}

// Title returns the human-readable action name used for hotkeys and menus.
func (p Placement) Title() string {
	if !p.Valid() {
		return p.String()
	}
	parts := strings.Split(names[p], "-")
	for i, part := range parts {
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return "Move Window to the " + strings.Join(parts, "-")
}

// KeypadDigit returns the numeric keypad digit mapped to p (1-9).
func (p Placement) KeypadDigit() int {
	if !p.Valid() {
		return 0
	}
	return keypad[p]
}

// FromKeypadDigit returns the placement bound to keypad digit d.
func FromKeypadDigit(d int) (Placement, bool) {
	for _, p := range All() {
		if keypad[p] == d {
			return p, true
		}
	}
	return 0, false
}

// Parse accepts a canonical name ("top-left"), a loose variant ("Top_Left",
// "top left", "topleft") or a keypad digit ("7").
func Parse(s string) (Placement, error) {
	in := strings.ToLower(strings.TrimSpace(s))
	if len(in) == 1 && in[0] >= '1' && in[0] <= '9' {
		if p, ok := FromKeypadDigit(int(in[0] - '0')); ok {
			return p, nil
		}
	}

	key := normalize(in)
	for _, p := range All() {
		if normalize(names[p]) == key {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (expected one of: %s, or keypad digit 1-9)", ErrUnknownPlacement, s, strings.Join(Names(), ", "))
}

// Names returns the canonical names of all placements.
func Names() []string {
	out := make([]string, 0, len(names))
	for _, p := range All() {
		out = append(out, names[p])
	}
	return out
}

func normalize(s string) string {
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)
}

// MarshalText implements encoding.TextMarshaler so placements travel by name
// in JSON and YAML.
func (p Placement) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPlacement, int(p))
	}
	return []byte(names[p]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Placement) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
