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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResponseState(t *testing.T) {
	t.Parallel()

	var rs responseState
	assert.True(t, rs.update([]byte{0x01}), "first response is a change")
	assert.False(t, rs.update([]byte{0x01}))
	assert.True(t, rs.update([]byte{0x01, 0x02}))
	assert.True(t, rs.update(nil))
	assert.False(t, rs.update([]byte{}))

	rs.reset()
	assert.True(t, rs.update([]byte{}), "first response after reset is a change")
}

func TestResponseState_CopiesInput(t *testing.T) {
	t.Parallel()

	var rs responseState
	buf := []byte{0xAA}
	rs.update(buf)
	buf[0] = 0xBB
	assert.True(t, rs.update(buf))
}

func TestScanMetrics(t *testing.T) {
	t.Parallel()

	var m ScanMetrics
	m.recordPoll(3 * time.Millisecond)
	m.recordPoll(5 * time.Millisecond)
	m.recordResponse()
	m.recordError()

	assert.Equal(t, MetricsSnapshot{
		Polls:           2,
		Responses:       1,
		Errors:          1,
		LastPollLatency: 5 * time.Millisecond,
	}, m.snapshot())
}
