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

// Transport defines the interface for communication with SkyeTek reader
// modules. This can be implemented by SPI, UART, or I2C backends.
//
// The bus is half-duplex request/response: implementations perform one
// exchange at a time and are owned by a single Device.
type Transport interface {
	// Exchange transmits a complete frame and returns the raw bytes the
	// reader clocked back. The response is returned as-is.
	Exchange(frame []byte) ([]byte, error)

	// Close releases the underlying bus handle
	Close() error

	// SetTimeout sets the read timeout for the transport
	SetTimeout(timeout time.Duration) error

	// IsConnected returns true if the transport is connected
	IsConnected() bool

	// Type returns the transport type
	Type() TransportType
}

// TransportType represents the type of transport
type TransportType string

const (
	// TransportSPI represents SPI bus transport.
	TransportSPI TransportType = "spi"
	// TransportUART represents UART/serial transport.
	TransportUART TransportType = "uart"
	// TransportI2C represents I2C bus transport.
	TransportI2C TransportType = "i2c"
	// TransportMock represents a mock transport for testing
	TransportMock TransportType = "mock"
)

// ParseTransportType converts a user-supplied name into a TransportType
func ParseTransportType(name string) (TransportType, error) {
	switch TransportType(name) {
	case TransportSPI, TransportUART, TransportI2C:
		return TransportType(name), nil
	default:
		return "", NewInvalidParameterError("transport", name)
	}
}
