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

// Package uart lists serial ports that may host a reader module.
package uart

import (
	"context"
	"fmt"

	"github.com/ZaparooProject/go-skyetek/detection"
	"go.bug.st/serial/enumerator"
)

// Detector enumerates serial ports through go.bug.st/serial
type Detector struct {
	list func() ([]*enumerator.PortDetails, error)
}

// New creates a UART detector
func New() *Detector {
	return &Detector{list: enumerator.GetDetailedPortsList}
}

func init() {
	detection.RegisterDetector(New())
}

// Transport returns the transport type name
func (*Detector) Transport() string {
	return "uart"
}

// Detect returns USB serial adapters not on the blocklist. Non-USB ports are
// included only when opts.IncludeNonUSB is set.
func (d *Detector) Detect(ctx context.Context, opts *detection.Options) ([]detection.DeviceInfo, error) {
	if opts == nil {
		defaults := detection.DefaultOptions()
		opts = &defaults
	}

	ports, err := d.list()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate serial ports: %w", err)
	}

	var devices []detection.DeviceInfo
	for _, port := range ports {
		if ctx.Err() != nil {
			return devices, detection.ErrDetectionTimeout
		}
		if info, ok := portInfo(port, opts); ok {
			devices = append(devices, info)
		}
	}

	if len(devices) == 0 {
		return nil, detection.ErrNoDevicesFound
	}
	return devices, nil
}

func portInfo(port *enumerator.PortDetails, opts *detection.Options) (detection.DeviceInfo, bool) {
	if port == nil || port.Name == "" {
		return detection.DeviceInfo{}, false
	}
	if detection.IsPathIgnored(port.Name, opts.IgnorePaths) {
		return detection.DeviceInfo{}, false
	}
	if !port.IsUSB && !opts.IncludeNonUSB {
		return detection.DeviceInfo{}, false
	}

	info := detection.DeviceInfo{
		Transport: "uart",
		Path:      port.Name,
		Name:      port.Name,
		Metadata:  map[string]string{},
	}
	if port.IsUSB {
		vidpid := detection.FormatVIDPID(port.VID, port.PID)
		if detection.IsBlocked(vidpid, opts.Blocklist) {
			return detection.DeviceInfo{}, false
		}
		if vidpid != "" {
			info.Metadata["vidpid"] = vidpid
		}
		if port.SerialNumber != "" {
			info.Metadata["serial"] = port.SerialNumber
		}
		if port.Product != "" {
			info.Name = port.Product
		}
	}
	return info, true
}

var _ detection.Detector = (*Detector)(nil)
