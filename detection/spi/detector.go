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

// Package spi lists SPI ports registered with periph.io.
package spi

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ZaparooProject/go-skyetek/detection"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// Detector reports every SPI port periph.io knows about
type Detector struct {
	list func() ([]*spireg.Ref, error)
}

// New creates an SPI detector backed by the periph.io registry
func New() *Detector {
	return &Detector{list: listPorts}
}

func init() {
	detection.RegisterDetector(New())
}

func listPorts() ([]*spireg.Ref, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph host: %w", err)
	}
	return spireg.All(), nil
}

// Transport returns the transport type name
func (*Detector) Transport() string {
	return "spi"
}

// Detect returns one candidate per SPI port
func (d *Detector) Detect(ctx context.Context, opts *detection.Options) ([]detection.DeviceInfo, error) {
	refs, err := d.list()
	if err != nil {
		return nil, err
	}

	devices := make([]detection.DeviceInfo, 0, len(refs))
	for _, ref := range refs {
		if ctx.Err() != nil {
			return devices, detection.ErrDetectionTimeout
		}
		info := detection.DeviceInfo{
			Transport: d.Transport(),
			Path:      ref.Name,
			Name:      ref.Name,
			Metadata:  map[string]string{},
		}
		if ref.Number >= 0 {
			info.Metadata["number"] = strconv.Itoa(ref.Number)
		}
		if len(ref.Aliases) > 0 {
			info.Metadata["alias"] = ref.Aliases[0]
		}
		devices = append(devices, info)
	}

	devices = detection.Filter(devices, opts)
	if len(devices) == 0 {
		return nil, detection.ErrNoDevicesFound
	}
	return devices, nil
}

var _ detection.Detector = (*Detector)(nil)
