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

/*
Package skyetek provides a pure Go library for driving SkyeTek RFID/NFC reader
modules over SPI, UART, or I2C using the SkyeTek Protocol V2 binary framing.

The library implements the READ_MEM command: it builds a length-prefixed,
CRC-16 terminated request, exchanges it with the reader, and hands back the
raw bytes the reader returned. Responses are not decoded.

Frame layout (big-endian):

	MSG_LEN | FLAGS | COMMAND | TAG_TYPE | STARTING_BLOCK | NUM_BLOCKS | CRC16
	   1        1        1         1             2              2          2

MSG_LEN counts the bytes after itself. FLAGS is always 0x00. The CRC is
CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF, no reflection, no final XOR)
computed over every byte before it.

Basic Usage:

	import (
	    "github.com/ZaparooProject/go-skyetek"
	    "github.com/ZaparooProject/go-skyetek/transport/spi"
	)

	// Open the SPI bus (bus 0, chip select 0)
	transport, err := spi.New("/dev/spidev0.0")
	if err != nil {
	    log.Fatal(err)
	}

	// The device owns the transport and closes it
	device, err := skyetek.New(transport, skyetek.WithTimeout(500*time.Millisecond))
	if err != nil {
	    log.Fatal(err)
	}
	defer device.Close()

	resp, err := device.ReadMem(ctx, skyetek.ReadMemParams{
	    TagType:       0x01,
	    StartingBlock: 0x0000,
	    NumBlocks:     0x0001,
	})

For continuous scanning at a fixed interval see the polling package.

Frames can be built without a device:

	frm := skyetek.BuildReadMemFrame(skyetek.ReadMemParams{TagType: 0x01, NumBlocks: 1})
	crc := skyetek.Checksum(frm[:len(frm)-2])

Error Handling:

Bus failures are reported as *TransportError values that can be inspected:

	if skyetek.IsTransportError(err) {
	    // log and try again on the next poll
	}
	if errors.Is(err, skyetek.ErrTransportTimeout) {
	    // reader did not answer in time
	}

Thread Safety:

BuildReadMemFrame and Checksum are pure and safe for concurrent use. A Device
serializes its exchanges; only one command is on the bus at a time.
*/
package skyetek
