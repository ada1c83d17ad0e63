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

package frame

import (
	"encoding/binary"
	"fmt"
)

// Build wraps body in a SkyeTek binary frame: MSG_LEN, body, CRC16.
// The CRC covers MSG_LEN and body. Build panics if body is too long for a
// one-byte MSG_LEN; callers only pass fixed-shape command bodies.
func Build(body []byte) []byte {
	if len(body) > MaxBodyLength {
		panic(fmt.Sprintf("frame: body of %d bytes exceeds %d", len(body), MaxBodyLength))
	}

	frm := make([]byte, 0, len(body)+Overhead)
	frm = append(frm, byte(len(body)+CRCSize))
	frm = append(frm, body...)
	return AppendCRC16(frm)
}

// ReadMemBody encodes the READ_MEM body: flags, command, tag type, starting
// block and block count, multi-byte fields big-endian
func ReadMemBody(tagType uint8, startingBlock, numBlocks uint16) []byte {
	body := make([]byte, ReadMemBodyLength)
	body[0] = FlagsNone
	body[1] = CmdReadMem
	body[2] = tagType
	binary.BigEndian.PutUint16(body[3:5], startingBlock)
	binary.BigEndian.PutUint16(body[5:7], numBlocks)
	return body
}

// Verify reports whether frm is a well-formed frame as produced by Build:
// MSG_LEN matches the byte count that follows it and the trailing CRC16
// matches the preceding bytes.
func Verify(frm []byte) bool {
	if len(frm) < Overhead {
		return false
	}
	if int(frm[0]) != len(frm)-LengthSize {
		return false
	}
	end := len(frm) - CRCSize
	return binary.BigEndian.Uint16(frm[end:]) == CRC16(frm[:end])
}

// Body returns the body of a frame that passes Verify, or nil
func Body(frm []byte) []byte {
	if !Verify(frm) {
		return nil
	}
	return frm[LengthSize : len(frm)-CRCSize]
}
