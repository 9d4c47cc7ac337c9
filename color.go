// Copyright ©2025 The g213 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package g213

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// RGB is a 24-bit backlight colour.
type RGB struct {
	R, G, B uint8
}

// String returns the colour as an RRGGBB hex triplet.
func (c RGB) String() string {
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
}

// DefaultColor is the colour applied when no colour argument is given.
var DefaultColor = RGB{R: 0xff, G: 0x10, B: 0x10}

// Errors returned by ParseColor.
var (
	ErrInvalidHex   = errors.New("invalid hex colour")
	ErrUnknownColor = errors.New("unknown colour name")
)

// ParseColor resolves a colour from command line arguments. An empty
// argument list resolves to DefaultColor. A single six hex digit
// argument is parsed as an RRGGBB triplet. Anything else is joined and
// looked up as an SVG 1.1 colour name; the lookup is insensitive to
// case and to spaces and underscores, so "alice blue", "alice_blue",
// "AliceBlue" and "aliceblue" all resolve to the same colour whether
// given as one argument or several.
func ParseColor(args []string) (RGB, error) {
	if len(args) == 0 {
		return DefaultColor, nil
	}
	if len(args) == 1 && len(args[0]) == 6 && isHex(args[0]) {
		v, err := strconv.ParseUint(args[0], 16, 32)
		if err != nil {
			return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, args[0])
		}
		return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
	}
	name := strings.Join(args, " ")
	if c, ok := colornames.Map[canonical(name)]; ok {
		return RGB{R: c.R, G: c.G, B: c.B}, nil
	}
	if len(args) == 1 && len(args[0]) == 6 {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, args[0])
	}
	return RGB{}, fmt.Errorf("%w: %q", ErrUnknownColor, name)
}

// canonical returns name in the form used by the colour name table:
// lowercase with spaces and underscores removed.
func canonical(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_':
			return -1
		}
		return r
	}, strings.ToLower(name))
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case '0' <= r && r <= '9':
		case 'a' <= r && r <= 'f':
		case 'A' <= r && r <= 'F':
		default:
			return false
		}
	}
	return true
}
