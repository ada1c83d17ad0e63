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

package polling

import (
	"bytes"
	"sync/atomic"
	"time"
)

// responseState remembers the last response seen by the scanner. It is only
// touched from the polling goroutine.
type responseState struct {
	last  []byte
	valid bool
}

// update stores resp and reports whether it differs from the previous one.
// The first response after a reset always counts as a change.
func (rs *responseState) update(resp []byte) bool {
	changed := !rs.valid || !bytes.Equal(rs.last, resp)
	rs.last = append(rs.last[:0], resp...)
	rs.valid = true
	return changed
}

// reset forgets the last response so the next one is reported as a change
func (rs *responseState) reset() {
	rs.last = rs.last[:0]
	rs.valid = false
}

// ScanMetrics tracks operational counters for a Scanner
type ScanMetrics struct {
	polls           atomic.Uint64
	responses       atomic.Uint64
	errors          atomic.Uint64
	lastPollLatency atomic.Int64 // in nanoseconds
}

// MetricsSnapshot is a point-in-time copy of ScanMetrics
type MetricsSnapshot struct {
	Polls           uint64        // Requests sent
	Responses       uint64        // Exchanges that returned data
	Errors          uint64        // Exchanges that failed
	LastPollLatency time.Duration // Duration of the last exchange
}

func (m *ScanMetrics) recordPoll(latency time.Duration) {
	m.polls.Add(1)
	m.lastPollLatency.Store(latency.Nanoseconds())
}

func (m *ScanMetrics) recordResponse() {
	m.responses.Add(1)
}

func (m *ScanMetrics) recordError() {
	m.errors.Add(1)
}

func (m *ScanMetrics) snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Polls:           m.polls.Load(),
		Responses:       m.responses.Load(),
		Errors:          m.errors.Load(),
		LastPollLatency: time.Duration(m.lastPollLatency.Load()),
	}
}
