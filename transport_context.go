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
	"fmt"
	"sync/atomic"
	"time"
)

// TransportContext defines the interface for communication with reader
// modules with context support for cancellation and timeouts.
type TransportContext interface {
	Transport

	// ExchangeContext performs Exchange with context support
	ExchangeContext(ctx context.Context, frame []byte) ([]byte, error)
}

// transportContextAdapter wraps a Transport to provide context support
type transportContextAdapter struct {
	Transport
	// busy holds a token while an exchange is on the bus. A cancelled caller
	// returns early, but the next exchange still waits for the bus.
	busy           chan struct{}
	defaultTimeout atomic.Int64
}

// ExchangeContext implements TransportContext by using the context deadline
func (t *transportContextAdapter) ExchangeContext(ctx context.Context, frame []byte) ([]byte, error) {
	// Check if context is already cancelled
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("context cancelled before exchange: %w", ctx.Err())
	default:
	}

	select {
	case t.busy <- struct{}{}:
	case <-ctx.Done():
		return nil, fmt.Errorf("context cancelled while waiting for bus: %w", ctx.Err())
	}

	// If there's a deadline, set the transport timeout accordingly
	if deadline, ok := ctx.Deadline(); ok {
		if timeout := time.Until(deadline); timeout > 0 {
			if err := t.Transport.SetTimeout(timeout); err != nil {
				<-t.busy
				return nil, fmt.Errorf("failed to set timeout on underlying transport: %w", err)
			}
		}
	}

	type result struct {
		err  error
		data []byte
	}
	resultChan := make(chan result, 1)

	go func() {
		data, err := t.Exchange(frame)
		if err := t.Transport.SetTimeout(time.Duration(t.defaultTimeout.Load())); err != nil {
			debugf("failed to restore transport timeout: %v", err)
		}
		<-t.busy
		resultChan <- result{err, data}
	}()

	// Wait for either the result or context cancellation
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("context cancelled while waiting for response: %w", ctx.Err())
	case res := <-resultChan:
		return res.data, res.err
	}
}

// SetTimeout records timeout as the value restored after each exchange
func (t *transportContextAdapter) SetTimeout(timeout time.Duration) error {
	t.defaultTimeout.Store(int64(timeout))
	if err := t.Transport.SetTimeout(timeout); err != nil {
		return fmt.Errorf("failed to set timeout on underlying transport: %w", err)
	}
	return nil
}

// AsTransportContext converts a Transport to TransportContext
func AsTransportContext(t Transport) TransportContext {
	return asTransportContext(t, DefaultTimeout)
}

func asTransportContext(t Transport, defaultTimeout time.Duration) TransportContext {
	if tc, ok := t.(TransportContext); ok {
		return tc
	}
	adapter := &transportContextAdapter{
		Transport: t,
		busy:      make(chan struct{}, 1),
	}
	adapter.defaultTimeout.Store(int64(defaultTimeout))
	return adapter
}
