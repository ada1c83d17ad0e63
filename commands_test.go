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
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksum(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		data []byte
		want uint16
	}{
		{
			name: "empty",
			data: []byte{},
			want: 0xFFFF,
		},
		{
			name: "standard check value",
			data: []byte{0x31, 0x32, 0x33, 0x34, 0x35, 0x36, 0x37, 0x38, 0x39},
			want: 0x29B1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Checksum(tt.data))
		})
	}
}

func TestBuildReadMemFrame_KnownFrame(t *testing.T) {
	t.Parallel()
	got := BuildReadMemFrame(ReadMemParams{TagType: 0x01, StartingBlock: 0x0000, NumBlocks: 0x0001})

	prefix := []byte{0x09, 0x00, 0x20, 0x01, 0x00, 0x00, 0x00, 0x01}
	crc := Checksum(prefix)
	want := append(append([]byte(nil), prefix...), byte(crc>>8), byte(crc))

	assert.Equal(t, want, got)
	assert.Equal(t, []byte{0x09, 0x00, 0x20, 0x01, 0x00, 0x00, 0x00, 0x01, 0xE7, 0x4F}, got)
}

func TestBuildReadMemFrame_Layout(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		params ReadMemParams
	}{
		{name: "zero values", params: ReadMemParams{}},
		{name: "typical", params: ReadMemParams{TagType: 0x01, StartingBlock: 0x0000, NumBlocks: 0x0001}},
		{name: "max starting block", params: ReadMemParams{TagType: 0x02, StartingBlock: 0xFFFF, NumBlocks: 0x0001}},
		{name: "max num blocks", params: ReadMemParams{TagType: 0x03, StartingBlock: 0x0001, NumBlocks: 0xFFFF}},
		{name: "all max", params: ReadMemParams{TagType: 0xFF, StartingBlock: 0xFFFF, NumBlocks: 0xFFFF}},
		{name: "mixed bytes", params: ReadMemParams{TagType: 0x80, StartingBlock: 0x1234, NumBlocks: 0xABCD}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			frm := BuildReadMemFrame(tt.params)

			require.Len(t, frm, ReadMemFrameLength)
			assert.Equal(t, byte(len(frm)-1), frm[0], "MSG_LEN counts the bytes after it")
			assert.Equal(t, byte(0x00), frm[1], "flags")
			assert.Equal(t, CmdReadMem, frm[2], "command")
			assert.Equal(t, tt.params.TagType, frm[3], "tag type")
			assert.Equal(t, []byte{byte(tt.params.StartingBlock >> 8), byte(tt.params.StartingBlock)}, frm[4:6])
			assert.Equal(t, []byte{byte(tt.params.NumBlocks >> 8), byte(tt.params.NumBlocks)}, frm[6:8])

			crc := Checksum(frm[:8])
			assert.Equal(t, []byte{byte(crc >> 8), byte(crc)}, frm[8:10])
		})
	}
}

func TestBuildReadMemFrame_LengthIsBodyPlusThree(t *testing.T) {
	t.Parallel()
	const headerAndPayload = 7 // flags, command, tag type, 2x uint16
	for _, p := range []ReadMemParams{{}, {TagType: 9, StartingBlock: 300, NumBlocks: 7}} {
		assert.Len(t, BuildReadMemFrame(p), headerAndPayload+3)
	}
}

func TestBuildReadMemFrame_BoundaryFieldsIsolated(t *testing.T) {
	t.Parallel()
	base := BuildReadMemFrame(ReadMemParams{TagType: 0x01})
	maxStart := BuildReadMemFrame(ReadMemParams{TagType: 0x01, StartingBlock: 0xFFFF})
	maxNum := BuildReadMemFrame(ReadMemParams{TagType: 0x01, NumBlocks: 0xFFFF})

	assert.Equal(t, base[:4], maxStart[:4])
	assert.Equal(t, []byte{0xFF, 0xFF}, maxStart[4:6])
	assert.Equal(t, base[6:8], maxStart[6:8])

	assert.Equal(t, base[:6], maxNum[:6])
	assert.Equal(t, []byte{0xFF, 0xFF}, maxNum[6:8])
}

func TestBuildReadMemFrame_Idempotent(t *testing.T) {
	t.Parallel()
	params := ReadMemParams{TagType: 0x04, StartingBlock: 0x0102, NumBlocks: 0x0304}

	first := BuildReadMemFrame(params)
	second := BuildReadMemFrame(params)

	assert.Equal(t, first, second)

	// Fresh allocation per call
	first[0] = 0x00
	assert.NotEqual(t, first, second)
}

func TestBuildReadMemFrame_Concurrent(t *testing.T) {
	t.Parallel()
	params := ReadMemParams{TagType: 0x01, NumBlocks: 0x0001}
	want := BuildReadMemFrame(params)

	var wg sync.WaitGroup
	errs := make(chan []byte, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := BuildReadMemFrame(params); !bytes.Equal(got, want) {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)

	for got := range errs {
		t.Errorf("concurrent build = % X, want % X", got, want)
	}
}
