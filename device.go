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

package skyetek

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// DefaultTimeout is the exchange timeout used when none is configured
const DefaultTimeout = 1 * time.Second

// DeviceConfig contains configuration options for the Device
type DeviceConfig struct {
	// Timeout is the default timeout for a single exchange
	Timeout time.Duration
}

// DefaultDeviceConfig returns default device configuration
func DefaultDeviceConfig() *DeviceConfig {
	return &DeviceConfig{
		Timeout: DefaultTimeout,
	}
}

// Device represents a SkyeTek reader module reached through one Transport.
//
// The Device owns its transport: Close releases it. Exchanges are
// serialized, so a Device may be shared between goroutines, but only one
// command is on the bus at a time.
type Device struct {
	transport TransportContext
	config    *DeviceConfig
	mu        sync.Mutex
}

// New creates a new device with the given transport
func New(transport Transport, opts ...Option) (*Device, error) {
	if transport == nil {
		return nil, ErrNilTransport
	}

	device := &Device{
		config: DefaultDeviceConfig(),
	}

	for _, opt := range opts {
		if err := opt(device); err != nil {
			return nil, err
		}
	}

	device.transport = asTransportContext(transport, device.config.Timeout)
	if err := device.transport.SetTimeout(device.config.Timeout); err != nil {
		return nil, fmt.Errorf("failed to set transport timeout: %w", err)
	}

	return device, nil
}

// Transport returns the underlying transport
func (d *Device) Transport() Transport {
	return d.transport
}

// Config returns a copy of the device configuration
func (d *Device) Config() DeviceConfig {
	d.mu.Lock()
	defer d.mu.Unlock()
	return *d.config
}

// ReadMem sends one READ_MEM request and returns the reader's raw response.
// The response is not decoded.
func (d *Device) ReadMem(ctx context.Context, params ReadMemParams) ([]byte, error) {
	frm := BuildReadMemFrame(params)
	resp, err := d.Exchange(ctx, frm)
	if err != nil {
		return nil, fmt.Errorf("READ_MEM failed: %w", err)
	}
	return resp, nil
}

// Exchange transmits a pre-built frame and returns the raw response
func (d *Device) Exchange(ctx context.Context, frm []byte) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.transport.IsConnected() {
		return nil, NewTransportClosedError("exchange", string(d.transport.Type()))
	}

	parent := ctx
	if _, hasDeadline := ctx.Deadline(); !hasDeadline && d.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.config.Timeout)
		defer cancel()
	}

	debugFrame("tx", string(d.transport.Type()), frm)
	resp, err := d.transport.ExchangeContext(ctx, frm)
	if err != nil {
		// The default deadline expiring is a bus timeout, not a cancellation
		if parent.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
			return nil, NewTransportError("exchange", string(d.transport.Type()),
				fmt.Errorf("%w: %w", ErrTransportTimeout, err), ErrorTypeTimeout)
		}
		return nil, err
	}
	debugFrame("rx", string(d.transport.Type()), resp)

	return resp, nil
}

// SetTimeout sets the default exchange timeout
func (d *Device) SetTimeout(timeout time.Duration) error {
	if timeout <= 0 {
		return NewInvalidParameterError("timeout", timeout.String())
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	d.config.Timeout = timeout
	if d.transport == nil {
		return nil
	}
	if err := d.transport.SetTimeout(timeout); err != nil {
		return fmt.Errorf("failed to set transport timeout: %w", err)
	}
	return nil
}

// Close closes the device and its transport
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.transport.Close(); err != nil {
		return fmt.Errorf("failed to close transport: %w", err)
	}
	debugf("device closed")
	return nil
}
