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
	"time"
)

// Option is a functional option for configuring a Device
type Option func(*Device) error

// WithTimeout sets the default timeout for a single exchange
func WithTimeout(timeout time.Duration) Option {
	return func(d *Device) error {
		return d.SetTimeout(timeout)
	}
}

// WithDeviceConfig replaces the whole device configuration
func WithDeviceConfig(config *DeviceConfig) Option {
	return func(d *Device) error {
		if config == nil {
			return NewInvalidParameterError("config", "nil")
		}
		if config.Timeout <= 0 {
			return NewInvalidParameterError("timeout", config.Timeout.String())
		}
		cfg := *config
		d.config = &cfg
		return nil
	}
}
