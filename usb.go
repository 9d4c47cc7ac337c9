// Copyright ©2025 The g213 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package g213

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/gousb"
)

const ioTimeout = 200 * time.Millisecond

// claimedDevice is a gousb backed usbDevice holding everything that
// must be released on Close.
type claimedDevice struct {
	ctx  *gousb.Context
	dev  *gousb.Device
	cfg  *gousb.Config
	intf *gousb.Interface
	ack  *gousb.InEndpoint
}

// openUSB opens the first device matching p, claims the lighting
// interface and resolves the acknowledgement endpoint. On failure
// everything acquired up to that point is released before returning.
func openUSB(p *protocol) (*claimedDevice, error) {
	ctx := gousb.NewContext()
	dev, err := ctx.OpenDeviceWithVIDPID(gousb.ID(p.vendor), gousb.ID(p.product))
	if err != nil {
		ctx.Close()
		return nil, classify(err)
	}
	if dev == nil {
		ctx.Close()
		return nil, fmt.Errorf("%w: %04x:%04x", ErrNotFound, p.vendor, p.product)
	}
	dev.ControlTimeout = ioTimeout
	if err := dev.SetAutoDetach(true); err != nil {
		dev.Close()
		ctx.Close()
		return nil, classify(err)
	}
	cfg, err := dev.Config(1)
	if err != nil {
		dev.Close()
		ctx.Close()
		return nil, classify(err)
	}
	intf, err := cfg.Interface(p.iface, 0)
	if err != nil {
		cfg.Close()
		dev.Close()
		ctx.Close()
		return nil, classify(err)
	}
	ack, err := intf.InEndpoint(p.ackEP)
	if err != nil {
		intf.Close()
		cfg.Close()
		dev.Close()
		ctx.Close()
		return nil, classify(err)
	}
	return &claimedDevice{ctx: ctx, dev: dev, cfg: cfg, intf: intf, ack: ack}, nil
}

func (d *claimedDevice) Control(rType, request uint8, val, idx uint16, data []byte) (int, error) {
	return d.dev.Control(rType, request, val, idx, data)
}

func (d *claimedDevice) ReadAck(buf []byte) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), ioTimeout)
	defer cancel()
	return d.ack.ReadContext(ctx, buf)
}

func (d *claimedDevice) Close() error {
	d.intf.Close()
	err := d.cfg.Close()
	if cerr := d.dev.Close(); err == nil {
		err = cerr
	}
	if cerr := d.ctx.Close(); err == nil {
		err = cerr
	}
	return err
}

// classify maps libusb failures onto the error kinds a caller can act
// on, distinguishing missing privilege and competing claims from other
// failures.
func classify(err error) error {
	switch {
	case errors.Is(err, gousb.ErrorAccess):
		return fmt.Errorf("%w: %v", ErrPermission, err)
	case errors.Is(err, gousb.ErrorBusy):
		return fmt.Errorf("%w: %v", ErrBusy, err)
	case errors.Is(err, gousb.ErrorNoDevice), errors.Is(err, gousb.ErrorNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	default:
		return err
	}
}
