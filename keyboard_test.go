// Copyright ©2025 The g213 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package g213

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/gousb"
)

type fakeDevice struct {
	rType, request uint8
	value, index   uint16
	sent           [][]byte

	controlErr error
	short      bool
	ackErr     error
	closed     bool
}

func (f *fakeDevice) Control(rType, request uint8, val, idx uint16, data []byte) (int, error) {
	if f.controlErr != nil {
		return 0, f.controlErr
	}
	f.rType, f.request, f.value, f.index = rType, request, val, idx
	f.sent = append(f.sent, append([]byte(nil), data...))
	if f.short {
		return len(data) - 1, nil
	}
	return len(data), nil
}

func (f *fakeDevice) ReadAck(buf []byte) (int, error) {
	if f.ackErr != nil {
		return 0, f.ackErr
	}
	return len(buf), nil
}

func (f *fakeDevice) Close() error {
	f.closed = true
	return nil
}

func testKeyboard(f *fakeDevice) *Keyboard {
	return &Keyboard{proto: &g213Proto, dev: f}
}

func TestSetColor(t *testing.T) {
	f := &fakeDevice{}
	k := testKeyboard(f)
	err := k.SetColor(RGB{R: 0xff, G: 0xd0, B: 0xc0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []byte{
		0x11, 0xff, 0x0c, 0x3a, 0x00, 0x01,
		0xff, 0xd0, 0xc0,
		0x02,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
	if len(f.sent) != 1 || !bytes.Equal(f.sent[0], want) {
		t.Errorf("unexpected command: got:%#v want:%#v", f.sent, want)
	}
	if f.rType != 0x21 || f.request != 0x09 || f.value != 0x0211 || f.index != 0x0001 {
		t.Errorf("unexpected transfer parameters: type:%#02x req:%#02x val:%#04x idx:%#04x",
			f.rType, f.request, f.value, f.index)
	}
}

func TestSetBreathe(t *testing.T) {
	f := &fakeDevice{}
	err := testKeyboard(f).SetBreathe(RGB{R: 0x10, G: 0xd0, B: 0x10}, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []byte{
		0x11, 0xff, 0x0c, 0x3a, 0x00, 0x02,
		0x10, 0xd0, 0x10,
		0x03, 0xe8,
		0x00, 0x64,
		0, 0, 0, 0, 0, 0, 0,
	}
	if len(f.sent) != 1 || !bytes.Equal(f.sent[0], want) {
		t.Errorf("unexpected command: got:%#v want:%#v", f.sent, want)
	}
}

func TestSetBreatheSpeedLimit(t *testing.T) {
	f := &fakeDevice{}
	err := testKeyboard(f).SetBreathe(RGB{}, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := f.sent[0][9:11]; !bytes.Equal(got, []byte{0x00, 0x20}) {
		t.Errorf("speed not raised to minimum: got:%#v", got)
	}
}

func TestSetCycle(t *testing.T) {
	f := &fakeDevice{}
	err := testKeyboard(f).SetCycle(5000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []byte{
		0x11, 0xff, 0x0c, 0x3a, 0x00, 0x03,
		0xff, 0xff, 0xff,
		0x00, 0x00,
		0x13, 0x88,
		0x64,
		0, 0, 0, 0, 0, 0,
	}
	if len(f.sent) != 1 || !bytes.Equal(f.sent[0], want) {
		t.Errorf("unexpected command: got:%#v want:%#v", f.sent, want)
	}
}

func TestSendControlFailure(t *testing.T) {
	f := &fakeDevice{controlErr: errors.New("epipe")}
	k := testKeyboard(f)
	err := k.SetColor(DefaultColor)
	if !errors.Is(err, ErrTransfer) {
		t.Errorf("unexpected error: got:%v want:%v", err, ErrTransfer)
	}
	if len(f.sent) != 0 {
		t.Errorf("command recorded despite failure: %#v", f.sent)
	}
	k.Close()
	if !f.closed {
		t.Error("device not closed after failed transfer")
	}
}

func TestSendShortWrite(t *testing.T) {
	f := &fakeDevice{short: true}
	if err := testKeyboard(f).SetColor(DefaultColor); !errors.Is(err, ErrTransfer) {
		t.Errorf("unexpected error: got:%v want:%v", err, ErrTransfer)
	}
}

func TestSendAckFailure(t *testing.T) {
	f := &fakeDevice{ackErr: errors.New("timeout")}
	if err := testKeyboard(f).SetColor(DefaultColor); !errors.Is(err, ErrTransfer) {
		t.Errorf("unexpected error: got:%v want:%v", err, ErrTransfer)
	}
}

func TestClose(t *testing.T) {
	f := &fakeDevice{}
	k := testKeyboard(f)
	if err := k.SetColor(RGB{R: 0xff}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := k.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.closed {
		t.Error("device not closed")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		in   error
		want error
	}{
		{in: gousb.ErrorAccess, want: ErrPermission},
		{in: gousb.ErrorBusy, want: ErrBusy},
		{in: gousb.ErrorNoDevice, want: ErrNotFound},
		{in: gousb.ErrorNotFound, want: ErrNotFound},
	}
	for _, test := range tests {
		if got := classify(test.in); !errors.Is(got, test.want) {
			t.Errorf("unexpected classification for %v: got:%v want:%v", test.in, got, test.want)
		}
	}
	other := errors.New("unrelated")
	if got := classify(other); got != other {
		t.Errorf("unrelated error not passed through: got:%v", got)
	}
}
