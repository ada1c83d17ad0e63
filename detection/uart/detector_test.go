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

package uart

import (
	"context"
	"errors"
	"testing"

	"github.com/ZaparooProject/go-skyetek/detection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial/enumerator"
)

func fakeDetector(ports []*enumerator.PortDetails, err error) *Detector {
	return &Detector{list: func() ([]*enumerator.PortDetails, error) { return ports, err }}
}

func TestDetect_FiltersPorts(t *testing.T) {
	t.Parallel()

	ports := []*enumerator.PortDetails{
		{Name: "/dev/ttyUSB0", IsUSB: true, VID: "0403", PID: "6001", SerialNumber: "A50285BI", Product: "FT232R"},
		{Name: "/dev/ttyUSB1", IsUSB: true, VID: "1a86", PID: "55d4"},
		{Name: "/dev/ttyS0"},
		{Name: "/dev/ttyACM0", IsUSB: true, VID: "2341", PID: "0043"},
		nil,
	}
	opts := detection.DefaultOptions()
	opts.IgnorePaths = []string{"/dev/ttyACM0"}

	devices, err := fakeDetector(ports, nil).Detect(context.Background(), &opts)
	require.NoError(t, err)
	require.Len(t, devices, 1)

	dev := devices[0]
	assert.Equal(t, "uart", dev.Transport)
	assert.Equal(t, "/dev/ttyUSB0", dev.Path)
	assert.Equal(t, "FT232R", dev.Name)
	assert.Equal(t, "0403:6001", dev.Metadata["vidpid"])
	assert.Equal(t, "A50285BI", dev.Metadata["serial"])
}

func TestDetect_IncludeNonUSB(t *testing.T) {
	t.Parallel()

	ports := []*enumerator.PortDetails{{Name: "/dev/ttyAMA0"}}
	opts := detection.Options{IncludeNonUSB: true}

	devices, err := fakeDetector(ports, nil).Detect(context.Background(), &opts)
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, "/dev/ttyAMA0", devices[0].Name)
	assert.Empty(t, devices[0].Metadata)
}

func TestDetect_Errors(t *testing.T) {
	t.Parallel()

	cause := errors.New("permission denied")
	_, err := fakeDetector(nil, cause).Detect(context.Background(), nil)
	require.ErrorIs(t, err, cause)

	_, err = fakeDetector(nil, nil).Detect(context.Background(), nil)
	require.ErrorIs(t, err, detection.ErrNoDevicesFound)
}

func TestDetect_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ports := []*enumerator.PortDetails{{Name: "/dev/ttyUSB0", IsUSB: true}}

	_, err := fakeDetector(ports, nil).Detect(ctx, nil)
	require.ErrorIs(t, err, detection.ErrDetectionTimeout)
}

func TestTransportName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "uart", New().Transport())
}
