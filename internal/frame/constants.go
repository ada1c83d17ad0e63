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

// Package frame provides frame construction and protocol constants for
// SkyeTek Protocol V2 binary communication
package frame

// Command codes
const (
	CmdReadMem = 0x20 // READ_MEM: read tag memory blocks
)

// Flags byte values. Only the default is sent.
const (
	FlagsNone = 0x00
)

// Frame layout sizes.
//
// A frame is MSG_LEN, body, CRC16. MSG_LEN counts the bytes that follow it
// (body and CRC), so the full frame is MSG_LEN+1 bytes on the wire.
const (
	LengthSize = 1 // MSG_LEN prefix
	CRCSize    = 2 // trailing CRC16, big-endian

	// Overhead is the number of bytes Build adds around a body
	Overhead = LengthSize + CRCSize

	// MaxMsgLen is the largest value a one-byte MSG_LEN can carry
	MaxMsgLen     = 0xFF
	MaxBodyLength = MaxMsgLen - CRCSize
)

// READ_MEM body layout: flags(1) + command(1) + tag type(1) +
// starting block(2) + number of blocks(2)
const (
	ReadMemBodyLength  = 7
	ReadMemMsgLen      = ReadMemBodyLength + CRCSize // 0x09
	ReadMemFrameLength = ReadMemBodyLength + Overhead
)

// CRC-16/CCITT-FALSE parameters
const (
	CRCPolynomial = 0x1021
	CRCInit       = 0xFFFF
)
