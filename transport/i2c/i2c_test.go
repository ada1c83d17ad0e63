// go-skyetek
// Copyright (c) 2025 The Zaparoo Project Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-skyetek.
//
// go-skyetek is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-skyetek is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-skyetek; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

package i2c

import (
	"errors"
	"testing"

	skyetek "github.com/ZaparooProject/go-skyetek"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type txCall struct {
	w []byte
	r int
}

type fakeDev struct {
	writeErr error
	readErr  error
	calls    []txCall
}

func (d *fakeDev) Tx(w, r []byte) error {
	d.calls = append(d.calls, txCall{w: append([]byte(nil), w...), r: len(r)})
	if len(w) > 0 && d.writeErr != nil {
		return d.writeErr
	}
	if len(r) > 0 {
		if d.readErr != nil {
			return d.readErr
		}
		for i := range r {
			r[i] = byte(i)
		}
	}
	return nil
}

type fakeBus struct {
	closed int
}

func (b *fakeBus) Close() error {
	b.closed++
	return nil
}

func TestNew_RejectsTenBitAddress(t *testing.T) {
	t.Parallel()
	_, err := New("/dev/i2c-1", 0x80)
	require.ErrorIs(t, err, skyetek.ErrInvalidParameter)
}

func TestExchange_WriteThenRead(t *testing.T) {
	t.Parallel()
	dev := &fakeDev{}
	tr := newTransport("/dev/i2c-1", 0x42, WithReadLength(8), WithSettleDelay(0))
	tr.dev = dev

	frm := skyetek.BuildReadMemFrame(skyetek.ReadMemParams{TagType: 0x01, NumBlocks: 1})
	resp, err := tr.Exchange(frm)
	require.NoError(t, err)

	require.Len(t, dev.calls, 2)
	assert.Equal(t, frm, dev.calls[0].w)
	assert.Equal(t, 0, dev.calls[0].r)
	assert.Empty(t, dev.calls[1].w)
	assert.Equal(t, 8, dev.calls[1].r)
	assert.Equal(t, []byte{0, 1, 2, 3, 4, 5, 6, 7}, resp)
}

func TestExchange_Errors(t *testing.T) {
	t.Parallel()
	cause := errors.New("remote I/O error")

	tr := newTransport("/dev/i2c-1", 0x42, WithSettleDelay(0))
	tr.dev = &fakeDev{writeErr: cause}
	_, err := tr.Exchange([]byte{0x01})
	assert.ErrorIs(t, err, skyetek.ErrTransportWrite)
	assert.ErrorIs(t, err, cause)

	tr.dev = &fakeDev{readErr: cause}
	_, err = tr.Exchange([]byte{0x01})
	assert.ErrorIs(t, err, skyetek.ErrTransportRead)
	assert.ErrorIs(t, err, cause)
}

func TestDefaultsAndType(t *testing.T) {
	t.Parallel()
	tr := newTransport("/dev/i2c-1", 0x42, WithReadLength(0), WithSettleDelay(-1))

	assert.Equal(t, DefaultReadLength, tr.readLength)
	assert.Equal(t, DefaultSettleDelay, tr.settleDelay)
	assert.Equal(t, skyetek.TransportI2C, tr.Type())
	assert.False(t, tr.IsConnected())
}

func TestClose(t *testing.T) {
	t.Parallel()
	bus := &fakeBus{}
	tr := newTransport("/dev/i2c-1", 0x42)
	tr.dev = &fakeDev{}
	tr.bus = bus

	require.NoError(t, tr.Close())
	require.NoError(t, tr.Close())
	assert.Equal(t, 1, bus.closed)

	_, err := tr.Exchange([]byte{0x01})
	assert.ErrorIs(t, err, skyetek.ErrTransportClosed)
}
