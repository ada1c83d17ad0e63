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
	"math/rand/v2"
	"testing"

	"github.com/sigurn/crc16"
)

func TestCRC16(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		data []byte
		want uint16
	}{
		{
			name: "empty data",
			data: []byte{},
			want: 0xFFFF,
		},
		{
			name: "nil data",
			data: nil,
			want: 0xFFFF,
		},
		{
			name: "check string 123456789",
			data: []byte("123456789"),
			want: 0x29B1,
		},
		{
			name: "single zero byte",
			data: []byte{0x00},
			want: 0xE1F0,
		},
		{
			name: "single 0xFF byte",
			data: []byte{0xFF},
			want: 0xFF00,
		},
		{
			name: "ASCII A",
			data: []byte("A"),
			want: 0xB915,
		},
		{
			name: "read mem frame prefix",
			data: []byte{0x09, 0x00, 0x20, 0x01, 0x00, 0x00, 0x00, 0x01},
			want: 0xE74F,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CRC16(tt.data); got != tt.want {
				t.Errorf("CRC16() = 0x%04X, want 0x%04X", got, tt.want)
			}
		})
	}
}

func TestCRC16Deterministic(t *testing.T) {
	t.Parallel()
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05}

	first := CRC16(data)
	for i := 0; i < 10; i++ {
		if got := CRC16(data); got != first {
			t.Fatalf("CRC16 not deterministic: call %d = 0x%04X, first = 0x%04X", i, got, first)
		}
	}
}

func TestCRC16DoesNotModifyInput(t *testing.T) {
	t.Parallel()
	data := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	orig := append([]byte(nil), data...)

	_ = CRC16(data)

	for i := range data {
		if data[i] != orig[i] {
			t.Fatalf("input modified at %d: got 0x%02X, want 0x%02X", i, data[i], orig[i])
		}
	}
}

// TestCRC16MatchesTableDriven cross-checks the bit-serial implementation
// against an independent table-driven CCITT-FALSE implementation
func TestCRC16MatchesTableDriven(t *testing.T) {
	t.Parallel()
	table := crc16.MakeTable(crc16.CRC16_CCITT_FALSE)
	rng := rand.New(rand.NewPCG(0x5EED, 0x0020))

	for i := 0; i < 500; i++ {
		data := make([]byte, rng.IntN(64))
		for j := range data {
			data[j] = byte(rng.UintN(256))
		}
		want := crc16.Checksum(data, table)
		if got := CRC16(data); got != want {
			t.Fatalf("CRC16(% X) = 0x%04X, table-driven = 0x%04X", data, got, want)
		}
	}
}

func TestAppendCRC16(t *testing.T) {
	t.Parallel()
	got := AppendCRC16([]byte("123456789"))
	if len(got) != 11 {
		t.Fatalf("len = %d, want 11", len(got))
	}
	if got[9] != 0x29 || got[10] != 0xB1 {
		t.Errorf("CRC bytes = %02X %02X, want 29 B1", got[9], got[10])
	}
}

// TestCRC16Residue verifies that running the CRC over a message followed by
// its own big-endian CRC yields zero, the property receivers rely on
func TestCRC16Residue(t *testing.T) {
	t.Parallel()
	for _, msg := range [][]byte{
		{},
		[]byte("123456789"),
		{0x09, 0x00, 0x20, 0x01, 0x00, 0x00, 0x00, 0x01},
	} {
		if got := CRC16(AppendCRC16(append([]byte(nil), msg...))); got != 0 {
			t.Errorf("residue for % X = 0x%04X, want 0", msg, got)
		}
	}
}
