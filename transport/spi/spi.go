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

// Package spi provides SPI transport implementation for SkyeTek reader modules
package spi

import (
	"fmt"
	"io"
	"sync"
	"time"

	skyetek "github.com/ZaparooProject/go-skyetek"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

const (
	// DefaultSpeed is the clock rate used unless WithSpeed is given
	DefaultSpeed = 500 * physic.KiloHertz

	// DefaultMode is the SPI mode used unless WithMode is given
	DefaultMode = spi.Mode0

	bitsPerWord = 8
)

// txer is the subset of spi.Conn the transport uses
type txer interface {
	Tx(w, r []byte) error
}

// Transport implements the skyetek.Transport interface for SPI communication
type Transport struct {
	conn       txer
	port       io.Closer
	busName    string
	speed      physic.Frequency
	mode       spi.Mode
	readLength int
	timeout    time.Duration
	mu         sync.Mutex
	closed     bool
}

// Option configures a Transport
type Option func(*Transport)

// WithSpeed sets the SPI clock frequency
func WithSpeed(speed physic.Frequency) Option {
	return func(t *Transport) {
		t.speed = speed
	}
}

// WithMode sets the SPI clock polarity and phase
func WithMode(mode spi.Mode) Option {
	return func(t *Transport) {
		t.mode = mode
	}
}

// WithReadLength clocks n extra bytes after the frame so a reply that
// follows the request fits in the same transfer
func WithReadLength(n int) Option {
	return func(t *Transport) {
		if n >= 0 {
			t.readLength = n
		}
	}
}

// ParseMode converts a numeric SPI mode (0-3) to spi.Mode
func ParseMode(mode int) (spi.Mode, error) {
	switch mode {
	case 0:
		return spi.Mode0, nil
	case 1:
		return spi.Mode1, nil
	case 2:
		return spi.Mode2, nil
	case 3:
		return spi.Mode3, nil
	default:
		return 0, skyetek.NewInvalidParameterError("spi-mode", fmt.Sprintf("%d", mode))
	}
}

// New opens an SPI port and connects to it. An empty busName opens the
// first registered port.
func New(busName string, opts ...Option) (*Transport, error) {
	t := newTransport(busName, opts...)

	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph host: %w", err)
	}

	port, err := spireg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("failed to open SPI port %s: %w", busName, err)
	}

	conn, err := port.Connect(t.speed, t.mode, bitsPerWord)
	if err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("failed to connect to SPI port %s: %w", busName, err)
	}

	t.conn = conn
	t.port = port
	if busName == "" {
		t.busName = port.String()
	}

	return t, nil
}

func newTransport(busName string, opts ...Option) *Transport {
	t := &Transport{
		busName: busName,
		speed:   DefaultSpeed,
		mode:    DefaultMode,
		timeout: skyetek.DefaultTimeout,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Exchange performs one full-duplex transfer. The returned slice holds the
// bytes clocked in while the frame, and any extra read length, was clocked out.
func (t *Transport) Exchange(frm []byte) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed || t.conn == nil {
		return nil, skyetek.NewTransportClosedError("exchange", t.busName)
	}

	w := make([]byte, len(frm)+t.readLength)
	copy(w, frm)
	r := make([]byte, len(w))

	if err := t.conn.Tx(w, r); err != nil {
		return nil, skyetek.NewTransportError("exchange", t.busName,
			fmt.Errorf("SPI transfer failed: %w", err), skyetek.ErrorTypeTransient)
	}

	return r, nil
}

// SetTimeout records the timeout. SPI transfers are clocked by the host and
// complete without waiting on the reader.
func (t *Transport) SetTimeout(timeout time.Duration) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timeout = timeout
	return nil
}

// Close releases the SPI port
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true
	t.conn = nil

	if t.port != nil {
		if err := t.port.Close(); err != nil {
			return fmt.Errorf("failed to close SPI port %s: %w", t.busName, err)
		}
	}
	return nil
}

// IsConnected returns true if the transport is connected
func (t *Transport) IsConnected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.conn != nil && !t.closed
}

// Type returns the transport type
func (*Transport) Type() skyetek.TransportType {
	return skyetek.TransportSPI
}

// BusName returns the name of the opened port
func (t *Transport) BusName() string {
	return t.busName
}

// Ensure Transport implements skyetek.Transport
var _ skyetek.Transport = (*Transport)(nil)
