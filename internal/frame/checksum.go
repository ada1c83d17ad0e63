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

// CRC16 computes the CRC-16/CCITT-FALSE checksum of data: polynomial 0x1021,
// initial value 0xFFFF, no input or output reflection, no final XOR.
//
// Computed bit-serially, without a lookup table. Empty input returns 0xFFFF.
func CRC16(data []byte) uint16 {
	crc := uint16(CRCInit)
	for _, b := range data {
		crc ^= uint16(b) << 8
		for range 8 {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ CRCPolynomial
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// AppendCRC16 appends the big-endian CRC16 of data to data
func AppendCRC16(data []byte) []byte {
	crc := CRC16(data)
	return append(data, byte(crc>>8), byte(crc))
}
