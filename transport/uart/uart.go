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

// Package uart provides UART transport implementation for SkyeTek reader modules
package uart

import (
	"fmt"
	"io"
	"sync"
	"time"

	skyetek "github.com/ZaparooProject/go-skyetek"
	"go.bug.st/serial"
)

const (
	// DefaultBaudRate is the factory serial speed of SkyeTek modules
	DefaultBaudRate = 38400

	// DefaultInterByteTimeout ends a response once the line goes quiet
	DefaultInterByteTimeout = 20 * time.Millisecond

	// maxResponseLength bounds a single read; a one-byte MSG_LEN frame
	// never exceeds it
	maxResponseLength = 256
)

// serialPort is the subset of serial.Port the transport uses
type serialPort interface {
	io.ReadWriteCloser
	SetReadTimeout(t time.Duration) error
	ResetInputBuffer() error
}

// Transport implements the skyetek.Transport interface for UART communication
type Transport struct {
	port             serialPort
	portName         string
	baudRate         int
	timeout          time.Duration
	interByteTimeout time.Duration
	mu               sync.Mutex
}

// Option configures a Transport
type Option func(*Transport)

// WithBaudRate sets the serial speed
func WithBaudRate(baud int) Option {
	return func(t *Transport) {
		if baud > 0 {
			t.baudRate = baud
		}
	}
}

// WithInterByteTimeout sets how long the line may stay idle before a
// response is considered complete
func WithInterByteTimeout(d time.Duration) Option {
	return func(t *Transport) {
		if d > 0 {
			t.interByteTimeout = d
		}
	}
}

// New opens a serial port at 8N1
func New(portName string, opts ...Option) (*Transport, error) {
	t := newTransport(portName, opts...)

	mode := &serial.Mode{
		BaudRate: t.baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", portName, err)
	}

	t.port = port
	return t, nil
}

func newTransport(portName string, opts ...Option) *Transport {
	t := &Transport{
		portName:         portName,
		baudRate:         DefaultBaudRate,
		timeout:          skyetek.DefaultTimeout,
		interByteTimeout: DefaultInterByteTimeout,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Exchange writes the frame and collects the reply. The reply ends when the
// line stays idle for the inter-byte timeout after the first byte arrives.
func (t *Transport) Exchange(frm []byte) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.port == nil {
		return nil, skyetek.NewTransportClosedError("exchange", t.portName)
	}

	// Drop anything left over from a previous, abandoned exchange
	if err := t.port.ResetInputBuffer(); err != nil {
		return nil, skyetek.NewTransportReadError("exchange", t.portName, err)
	}

	if err := t.writeAll(frm); err != nil {
		return nil, err
	}

	return t.readResponse()
}

func (t *Transport) writeAll(frm []byte) error {
	for written := 0; written < len(frm); {
		n, err := t.port.Write(frm[written:])
		if err != nil {
			return skyetek.NewTransportWriteError("exchange", t.portName, err)
		}
		if n == 0 {
			return skyetek.NewTransportWriteError("exchange", t.portName, io.ErrShortWrite)
		}
		written += n
	}
	return nil
}

func (t *Transport) readResponse() ([]byte, error) {
	if err := t.port.SetReadTimeout(t.timeout); err != nil {
		return nil, skyetek.NewTransportReadError("exchange", t.portName, err)
	}

	resp := make([]byte, 0, maxResponseLength)
	buf := make([]byte, maxResponseLength)

	for len(resp) < maxResponseLength {
		n, err := t.port.Read(buf[:maxResponseLength-len(resp)])
		if err != nil {
			return nil, skyetek.NewTransportReadError("exchange", t.portName, err)
		}
		if n == 0 {
			// Read timeout with no data
			break
		}

		if len(resp) == 0 {
			if err := t.port.SetReadTimeout(t.interByteTimeout); err != nil {
				return nil, skyetek.NewTransportReadError("exchange", t.portName, err)
			}
		}
		resp = append(resp, buf[:n]...)
	}

	if len(resp) == 0 {
		return nil, skyetek.NewTimeoutError("exchange", t.portName)
	}
	return resp, nil
}

// SetTimeout sets how long to wait for the first response byte
func (t *Transport) SetTimeout(timeout time.Duration) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timeout = timeout
	return nil
}

// Close closes the serial port
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.port == nil {
		return nil
	}
	err := t.port.Close()
	t.port = nil
	if err != nil {
		return fmt.Errorf("failed to close serial port %s: %w", t.portName, err)
	}
	return nil
}

// IsConnected returns true if the transport is connected
func (t *Transport) IsConnected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.port != nil
}

// Type returns the transport type
func (*Transport) Type() skyetek.TransportType {
	return skyetek.TransportUART
}

// Ensure Transport implements skyetek.Transport
var _ skyetek.Transport = (*Transport)(nil)
