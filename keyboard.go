// Copyright ©2025 The g213 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package g213 sets the backlight of the Logitech G213 Prodigy keyboard.
package g213

import (
	"errors"
	"fmt"
)

// Errors returned while locating and driving the keyboard.
var (
	ErrNotFound   = errors.New("keyboard not found")
	ErrPermission = errors.New("permission denied")
	ErrBusy       = errors.New("keyboard interface busy")
	ErrTransfer   = errors.New("transfer failed")
)

// usbDevice is the transport a Keyboard drives. The real implementation
// wraps a claimed gousb interface.
type usbDevice interface {
	Control(rType, request uint8, val, idx uint16, data []byte) (int, error)
	ReadAck(buf []byte) (int, error)
	Close() error
}

// Keyboard is an open G213 with its lighting interface claimed.
type Keyboard struct {
	proto *protocol
	dev   usbDevice
}

// OpenKeyboard opens the first attached G213 and claims its lighting
// interface, detaching any kernel driver for the duration. Opening
// needs raw USB device access; without it the returned error is
// ErrPermission. The caller must Close the returned Keyboard.
func OpenKeyboard() (*Keyboard, error) {
	dev, err := openUSB(&g213Proto)
	if err != nil {
		return nil, err
	}
	return &Keyboard{proto: &g213Proto, dev: dev}, nil
}

// Close releases the lighting interface and closes the device,
// reattaching the kernel driver.
func (k *Keyboard) Close() error {
	return k.dev.Close()
}

// SetColor sets the whole keyboard backlight to a static colour.
func (k *Keyboard) SetColor(c RGB) error {
	return k.send(k.proto.staticCmd(c))
}

// SetBreathe pulses the backlight in c. The speed is the period of the
// pulse in milliseconds; periods shorter than the firmware accepts are
// raised to the minimum.
func (k *Keyboard) SetBreathe(c RGB, speed uint16) error {
	return k.send(k.proto.breatheCmd(c, speed))
}

// SetCycle cycles the backlight through the colour wheel with the given
// period in milliseconds.
func (k *Keyboard) SetCycle(speed uint16) error {
	return k.send(k.proto.cycleCmd(speed))
}

func (k *Keyboard) send(cmd []byte) error {
	n, err := k.dev.Control(k.proto.reqType, k.proto.request, k.proto.value, uint16(k.proto.iface), cmd)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransfer, err)
	}
	if n != len(cmd) {
		return fmt.Errorf("%w: short write: %d of %d bytes", ErrTransfer, n, len(cmd))
	}
	// The firmware acknowledges each command on the interrupt endpoint;
	// consume the reply so a following command does not read stale data.
	ack := make([]byte, len(cmd))
	if _, err := k.dev.ReadAck(ack); err != nil {
		return fmt.Errorf("%w: %v", ErrTransfer, err)
	}
	return nil
}
