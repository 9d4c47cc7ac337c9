// Copyright ©2025 The g213 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package g213

import "encoding/binary"

const (
	vidLogitech = 0x046d
	pidG213     = 0xc336
)

// protocol is the description of the vendor lighting report accepted by
// a keyboard model: the control transfer parameters, the fixed command
// length and the command-class prefixes surrounding the operands.
type protocol struct {
	vendor  uint16
	product uint16

	reqType uint8  // bmRequestType: host to device, class, interface
	request uint8  // bRequest: SET_REPORT
	value   uint16 // wValue: report type and report ID
	iface   int    // wIndex: interface carrying the lighting report
	ackEP   int    // interrupt IN endpoint acknowledging each command

	cmdLen   int    // all commands are this long, zero padded
	minSpeed uint16 // effect periods below this are ignored by the firmware

	// command prefixes
	static  []byte
	breathe []byte
	cycle   []byte
}

var g213Proto = protocol{
	vendor:  vidLogitech,
	product: pidG213,

	reqType: 0x21,
	request: 0x09,
	value:   0x0211,
	iface:   1,
	ackEP:   2,

	cmdLen:   20,
	minSpeed: 32,

	static:  []byte{0x11, 0xff, 0x0c, 0x3a, 0x00, 0x01},
	breathe: []byte{0x11, 0xff, 0x0c, 0x3a, 0x00, 0x02},
	cycle:   []byte{0x11, 0xff, 0x0c, 0x3a, 0x00, 0x03},
}

// staticCmd returns the command setting the whole keyboard to c.
func (p *protocol) staticCmd(c RGB) []byte {
	b := make([]byte, p.cmdLen)
	copy(b, p.static)
	b[6], b[7], b[8] = c.R, c.G, c.B
	b[9] = 0x02
	return b
}

// breatheCmd returns the command pulsing the keyboard in c with the
// given period in milliseconds.
func (p *protocol) breatheCmd(c RGB, speed uint16) []byte {
	b := make([]byte, p.cmdLen)
	copy(b, p.breathe)
	b[6], b[7], b[8] = c.R, c.G, c.B
	binary.BigEndian.PutUint16(b[9:], p.limitSpeed(speed))
	b[12] = 0x64
	return b
}

// cycleCmd returns the command cycling the keyboard through the colour
// wheel with the given period in milliseconds.
func (p *protocol) cycleCmd(speed uint16) []byte {
	b := make([]byte, p.cmdLen)
	copy(b, p.cycle)
	b[6], b[7], b[8] = 0xff, 0xff, 0xff
	binary.BigEndian.PutUint16(b[11:], p.limitSpeed(speed))
	b[13] = 0x64
	return b
}

func (p *protocol) limitSpeed(speed uint16) uint16 {
	if speed < p.minSpeed {
		return p.minSpeed
	}
	return speed
}
