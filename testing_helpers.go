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
	"sync"
	"time"
)

// MockTransport is an in-memory transport for tests. It records every frame
// it is asked to send and answers from a queue, a response function, or a
// fixed echo of the request length.
type MockTransport struct {
	blockChan    chan struct{}
	ResponseFunc func(frame []byte) ([]byte, error)
	sent         [][]byte
	responses    [][]byte
	errs         []error
	timeout      time.Duration
	delay        time.Duration
	mu           sync.Mutex
	closed       bool
	blocking     bool
}

// NewMockTransport creates a new mock transport
func NewMockTransport() *MockTransport {
	return &MockTransport{
		blockChan: make(chan struct{}),
		timeout:   DefaultTimeout,
	}
}

// Exchange records frame and returns the next configured response
func (m *MockTransport) Exchange(frame []byte) ([]byte, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, NewTransportClosedError("exchange", "mock")
	}
	m.sent = append(m.sent, append([]byte(nil), frame...))
	delay := m.delay
	blocking := m.blocking
	blockChan := m.blockChan
	timeout := m.timeout
	m.mu.Unlock()

	if blocking {
		select {
		case <-blockChan:
		case <-time.After(timeout):
			return nil, NewTimeoutError("exchange", "mock")
		}
	}
	if delay > 0 {
		time.Sleep(delay)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, NewTransportClosedError("exchange", "mock")
	}
	if len(m.errs) > 0 {
		err := m.errs[0]
		m.errs = m.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	if m.ResponseFunc != nil {
		return m.ResponseFunc(frame)
	}
	if len(m.responses) > 0 {
		resp := m.responses[0]
		if len(m.responses) > 1 {
			m.responses = m.responses[1:]
		}
		return append([]byte(nil), resp...), nil
	}

	// Full-duplex default: one zero byte clocked back per byte sent
	return make([]byte, len(frame)), nil
}

// QueueResponse appends a response. The last queued response repeats once
// the queue is drained.
func (m *MockTransport) QueueResponse(resp []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, append([]byte(nil), resp...))
}

// QueueError makes the next exchange fail with err. A nil entry lets one
// exchange through.
func (m *MockTransport) QueueError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs = append(m.errs, err)
}

// SetResponseFunc configures a dynamic response function
func (m *MockTransport) SetResponseFunc(fn func(frame []byte) ([]byte, error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResponseFunc = fn
}

// SetDelay makes every exchange take at least d
func (m *MockTransport) SetDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
}

// SetBlocking makes exchanges wait for Unblock or the transport timeout
func (m *MockTransport) SetBlocking(blocking bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blocking = blocking
}

// Unblock allows blocked exchanges to proceed
func (m *MockTransport) Unblock() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		close(m.blockChan)
		m.blockChan = make(chan struct{})
	}
}

// Sent returns copies of every frame passed to Exchange
func (m *MockTransport) Sent() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(m.sent))
	for i, f := range m.sent {
		out[i] = append([]byte(nil), f...)
	}
	return out
}

// CallCount returns the number of Exchange calls
func (m *MockTransport) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

// Timeout returns the last timeout set
func (m *MockTransport) Timeout() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timeout
}

// Close unblocks all operations and marks transport as closed
func (m *MockTransport) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.blockChan)
	}
	return nil
}

// SetTimeout sets the timeout used while blocking
func (m *MockTransport) SetTimeout(timeout time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timeout = timeout
	return nil
}

// IsConnected returns false once Close has been called
func (m *MockTransport) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.closed
}

// Type returns TransportMock
func (*MockTransport) Type() TransportType {
	return TransportMock
}

var _ Transport = (*MockTransport)(nil)
