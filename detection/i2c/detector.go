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

// Package i2c lists I2C buses registered with periph.io.
package i2c

import (
	"context"
	"fmt"

	"github.com/ZaparooProject/go-skyetek/detection"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// Detector reports every I2C bus periph.io knows about. The module address
// is not probed; callers supply it when opening the transport.
type Detector struct {
	list func() ([]*i2creg.Ref, error)
}

// New creates an I2C detector backed by the periph.io registry
func New() *Detector {
	return &Detector{list: listBuses}
}

func init() {
	detection.RegisterDetector(New())
}

func listBuses() ([]*i2creg.Ref, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph host: %w", err)
	}
	return i2creg.All(), nil
}

// Transport returns the transport type name
func (*Detector) Transport() string {
	return "i2c"
}

// Detect returns one candidate per bus
func (d *Detector) Detect(ctx context.Context, opts *detection.Options) ([]detection.DeviceInfo, error) {
	refs, err := d.list()
	if err != nil {
		return nil, err
	}

	var devices []detection.DeviceInfo
	for _, ref := range refs {
		if ctx.Err() != nil {
			return devices, detection.ErrDetectionTimeout
		}
		path := ref.Name
		if ref.Number >= 0 {
			path = fmt.Sprintf("/dev/i2c-%d", ref.Number)
		}
		devices = append(devices, detection.DeviceInfo{
			Transport: d.Transport(),
			Path:      path,
			Name:      ref.Name,
			Metadata: map[string]string{
				"bus": ref.Name,
			},
		})
	}

	devices = detection.Filter(devices, opts)
	if len(devices) == 0 {
		return nil, detection.ErrNoDevicesFound
	}
	return devices, nil
}

var _ detection.Detector = (*Detector)(nil)
