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
	"github.com/ZaparooProject/go-skyetek/internal/frame"
)

// SkyeTek Protocol V2 command codes
const (
	CmdReadMem byte = frame.CmdReadMem
)

// ReadMemFrameLength is the wire length of every READ_MEM frame
const ReadMemFrameLength = frame.ReadMemFrameLength

// ReadMemParams holds the caller-supplied fields of a READ_MEM request.
// Field widths match the wire encoding, so every value is encodable.
type ReadMemParams struct {
	StartingBlock uint16
	NumBlocks     uint16
	TagType       uint8
}

// Checksum returns the CRC-16/CCITT-FALSE checksum of data as carried in the
// trailing two bytes of every frame
func Checksum(data []byte) uint16 {
	return frame.CRC16(data)
}

// BuildReadMemFrame encodes a complete READ_MEM frame:
//
//	MSG_LEN | FLAGS | 0x20 | TAG_TYPE | STARTING_BLOCK | NUM_BLOCKS | CRC16
//
// Multi-byte fields are big-endian. The CRC covers every byte before it.
// The result is freshly allocated on each call.
func BuildReadMemFrame(params ReadMemParams) []byte {
	return frame.Build(frame.ReadMemBody(params.TagType, params.StartingBlock, params.NumBlocks))
}
