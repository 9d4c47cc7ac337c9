// Copyright ©2025 The g213 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The g213 command sets the backlight of a Logitech G213 Prodigy
// keyboard. It needs raw access to the USB device, so it will usually
// have to be run as root or with a udev rule granting access.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/softlight/g213"
)

func main() {
	os.Exit(Main())
}

func Main() int {
	args := os.Args[1:]
	var cmd string
	if len(args) != 0 {
		cmd = strings.ToLower(args[0])
	}
	switch cmd {
	case "colour", "color", "c":
		return colourCmd(args[1:])
	case "breathe", "b":
		return breatheCmd(args[1:])
	case "cycle", "cy":
		return cycleCmd(args[1:])
	case "list", "l":
		return listCmd(args[1:])
	case "help", "h", "?":
		usage(os.Stdout)
		return 0
	default:
		// Bare arguments are colour tokens.
		return colourCmd(args)
	}
}

func colourCmd(args []string) int {
	c, err := g213.ParseColor(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "g213: %v\n", err)
		return 1
	}
	return apply(func(k *g213.Keyboard) error { return k.SetColor(c) })
}

func breatheCmd(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "g213: breathe needs a speed in milliseconds")
		usage(os.Stderr)
		return 2
	}
	speed, err := strconv.ParseUint(args[0], 10, 16)
	if err != nil {
		fmt.Fprintf(os.Stderr, "g213: invalid speed %q\n", args[0])
		return 2
	}
	c, err := g213.ParseColor(args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "g213: %v\n", err)
		return 1
	}
	return apply(func(k *g213.Keyboard) error { return k.SetBreathe(c, uint16(speed)) })
}

func cycleCmd(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "g213: cycle needs a speed in milliseconds")
		usage(os.Stderr)
		return 2
	}
	speed, err := strconv.ParseUint(args[0], 10, 16)
	if err != nil {
		fmt.Fprintf(os.Stderr, "g213: invalid speed %q\n", args[0])
		return 2
	}
	return apply(func(k *g213.Keyboard) error { return k.SetCycle(uint16(speed)) })
}

func listCmd(args []string) int {
	var sub string
	if len(args) != 0 {
		sub = strings.ToLower(args[0])
	}
	for _, name := range colornames.Names {
		if !strings.Contains(name, sub) {
			continue
		}
		c := colornames.Map[name]
		fmt.Printf("%s %02x%02x%02x\n", name, c.R, c.G, c.B)
	}
	return 0
}

// apply opens the keyboard, runs op and closes the keyboard again,
// whatever op returned.
func apply(op func(*g213.Keyboard) error) int {
	k, err := g213.OpenKeyboard()
	if err != nil {
		fmt.Fprintf(os.Stderr, "g213: %v\n", err)
		return 1
	}
	defer k.Close()
	if err := op(k); err != nil {
		fmt.Fprintf(os.Stderr, "g213: %v\n", err)
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprint(w, `usage: g213 [command] [arguments]

commands:
  [colour|c] [COLOUR...]       set a static colour; COLOUR is an RRGGBB hex
                               triplet or an SVG/X11 colour name, default ff1010
  breathe|b SPEED [COLOUR...]  pulse in a colour with the given period (ms)
  cycle|cy SPEED               cycle through the colour wheel (ms)
  list|l [SUBSTRING]           print known colour names
  help|h                       print this message
`)
}
