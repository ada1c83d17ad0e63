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

package main

import (
	"fmt"

	"periph.io/x/conn/v3/physic"

	skyetek "github.com/ZaparooProject/go-skyetek"
	"github.com/ZaparooProject/go-skyetek/internal/config"
	"github.com/ZaparooProject/go-skyetek/transport/i2c"
	"github.com/ZaparooProject/go-skyetek/transport/spi"
	"github.com/ZaparooProject/go-skyetek/transport/uart"
)

// newTransport opens the bus described by a validated config
func newTransport(cfg *config.Config) (skyetek.Transport, error) {
	transportType, err := skyetek.ParseTransportType(cfg.Transport)
	if err != nil {
		return nil, err
	}

	switch transportType {
	case skyetek.TransportSPI:
		mode, err := spi.ParseMode(cfg.SPIMode)
		if err != nil {
			return nil, err
		}
		t, err := spi.New(cfg.Device,
			spi.WithSpeed(physic.Frequency(cfg.SPISpeed)*physic.Hertz),
			spi.WithMode(mode))
		if err != nil {
			return nil, fmt.Errorf("failed to create SPI transport: %w", err)
		}
		return t, nil
	case skyetek.TransportUART:
		t, err := uart.New(cfg.Device, uart.WithBaudRate(cfg.BaudRate))
		if err != nil {
			return nil, fmt.Errorf("failed to create UART transport: %w", err)
		}
		return t, nil
	case skyetek.TransportI2C:
		t, err := i2c.New(cfg.Device, uint16(cfg.I2CAddress))
		if err != nil {
			return nil, fmt.Errorf("failed to create I2C transport: %w", err)
		}
		return t, nil
	default:
		return nil, fmt.Errorf("unsupported transport type: %s", cfg.Transport)
	}
}
