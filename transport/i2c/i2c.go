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

// Package i2c provides I2C transport implementation for SkyeTek reader modules
package i2c

import (
	"fmt"
	"io"
	"sync"
	"time"

	skyetek "github.com/ZaparooProject/go-skyetek"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

const (
	// Max clock frequency (400 kHz).
	maxClockFreq = 400 * physic.KiloHertz

	// DefaultReadLength is the number of bytes read back after a request
	DefaultReadLength = 32

	// DefaultSettleDelay gives the module time to prepare its reply
	DefaultSettleDelay = 10 * time.Millisecond

	// MaxAddress is the largest 7-bit I2C address
	MaxAddress = 0x7F
)

// txer is the subset of i2c.Dev the transport uses
type txer interface {
	Tx(w, r []byte) error
}

// Transport implements the skyetek.Transport interface for I2C communication
type Transport struct {
	dev         txer
	bus         io.Closer
	busName     string
	addr        uint16
	readLength  int
	settleDelay time.Duration
	timeout     time.Duration
	mu          sync.Mutex
}

// Option configures a Transport
type Option func(*Transport)

// WithReadLength sets how many bytes are read back per exchange
func WithReadLength(n int) Option {
	return func(t *Transport) {
		if n > 0 {
			t.readLength = n
		}
	}
}

// WithSettleDelay sets the pause between writing a request and reading
func WithSettleDelay(d time.Duration) Option {
	return func(t *Transport) {
		if d >= 0 {
			t.settleDelay = d
		}
	}
}

// New creates a new I2C transport for the module at addr
func New(busName string, addr uint16, opts ...Option) (*Transport, error) {
	if addr > MaxAddress {
		return nil, skyetek.NewInvalidParameterError("i2c-address", fmt.Sprintf("0x%02X", addr))
	}
	t := newTransport(busName, addr, opts...)

	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph host: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("failed to open I2C bus %s: %w", busName, err)
	}

	_ = bus.SetSpeed(maxClockFreq) // Ignore error, continue with default speed

	t.dev = &i2c.Dev{Addr: addr, Bus: bus}
	t.bus = bus
	return t, nil
}

func newTransport(busName string, addr uint16, opts ...Option) *Transport {
	t := &Transport{
		busName:     busName,
		addr:        addr,
		readLength:  DefaultReadLength,
		settleDelay: DefaultSettleDelay,
		timeout:     skyetek.DefaultTimeout,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Exchange writes the frame in one transaction and reads the reply in a
// second one after the settle delay
func (t *Transport) Exchange(frm []byte) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.dev == nil {
		return nil, skyetek.NewTransportClosedError("exchange", t.busName)
	}

	if err := t.dev.Tx(frm, nil); err != nil {
		return nil, skyetek.NewTransportWriteError("exchange", t.busName, err)
	}

	if t.settleDelay > 0 {
		time.Sleep(t.settleDelay)
	}

	resp := make([]byte, t.readLength)
	if err := t.dev.Tx(nil, resp); err != nil {
		return nil, skyetek.NewTransportReadError("exchange", t.busName, err)
	}

	return resp, nil
}

// SetTimeout sets the read timeout for the transport
func (t *Transport) SetTimeout(timeout time.Duration) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timeout = timeout
	return nil
}

// Close releases the I2C bus
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.dev == nil {
		return nil
	}
	t.dev = nil
	if t.bus != nil {
		if err := t.bus.Close(); err != nil {
			return fmt.Errorf("failed to close I2C bus %s: %w", t.busName, err)
		}
	}
	return nil
}

// IsConnected returns true if the transport is connected
func (t *Transport) IsConnected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dev != nil
}

// Type returns the transport type
func (*Transport) Type() skyetek.TransportType {
	return skyetek.TransportI2C
}

// Ensure Transport implements skyetek.Transport
var _ skyetek.Transport = (*Transport)(nil)
