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
	"context"
	"testing"

	"github.com/ZaparooProject/go-skyetek/detection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/i2c/i2creg"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	refs := []*i2creg.Ref{
		{Name: "I2C1", Number: 1},
		{Name: "ftdi-i2c", Number: -1},
	}
	d := &Detector{list: func() ([]*i2creg.Ref, error) { return refs, nil }}

	devices, err := d.Detect(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, devices, 2)
	assert.Equal(t, "/dev/i2c-1", devices[0].Path)
	assert.Equal(t, "I2C1", devices[0].Metadata["bus"])
	assert.Equal(t, "ftdi-i2c", devices[1].Path)
}

func TestDetect_AllIgnored(t *testing.T) {
	t.Parallel()

	refs := []*i2creg.Ref{{Name: "I2C1", Number: 1}}
	d := &Detector{list: func() ([]*i2creg.Ref, error) { return refs, nil }}
	opts := &detection.Options{IgnorePaths: []string{"/dev/i2c-1"}}

	_, err := d.Detect(context.Background(), opts)
	require.ErrorIs(t, err, detection.ErrNoDevicesFound)
	assert.Equal(t, "i2c", d.Transport())
}
