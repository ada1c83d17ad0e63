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
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	skyetek "github.com/ZaparooProject/go-skyetek"
	"github.com/ZaparooProject/go-skyetek/internal/config"
	"github.com/ZaparooProject/go-skyetek/polling"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFormatResult(t *testing.T) {
	t.Parallel()
	r := polling.ScanResult{
		Sequence: 7,
		Frame:    []byte{0x09, 0x00, 0x20},
		Response: []byte{0xAA, 0x0B},
		At:       time.Date(2025, 1, 2, 3, 4, 5, 6_000_000, time.UTC),
	}
	assert.Equal(t, "03:04:05.006 #7 tx=09 00 20 rx=AA 0B", formatResult(r))
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeConfig(t, "skyscan.toml", `
transport = "uart"
device = "/dev/ttyUSB0"
tag_type = 2
num_blocks = 3
`)
	t.Setenv("SKYETEK_NUM_BLOCKS", "5")
	t.Setenv("SKYETEK_DEVICE", "/dev/ttyUSB9")

	cfg := config.DefaultConfig()
	cfg.Device = "/dev/ttyACM0"
	changed := map[string]bool{"device": true}

	require.NoError(t, loadConfig(&cfg, path, changed))
	assert.Equal(t, "uart", cfg.Transport, "file applies")
	assert.Equal(t, 2, cfg.TagType, "file applies")
	assert.Equal(t, 5, cfg.NumBlocks, "env overrides file")
	assert.Equal(t, "/dev/ttyACM0", cfg.Device, "flag overrides env")
}

func TestLoadConfig_ExplicitMissingFile(t *testing.T) {
	cfg := config.DefaultConfig()
	err := loadConfig(&cfg, filepath.Join(t.TempDir(), "absent.toml"), map[string]bool{})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRootCmd_RejectsInvalidInput(t *testing.T) {
	emptyConfig := writeConfig(t, "empty.toml", "")

	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown transport", args: []string{"--transport", "usb"}},
		{name: "tag type out of range", args: []string{"--tag-type", "0x100"}},
		{name: "start block out of range", args: []string{"--start-block", "65536"}},
		{name: "num blocks out of range", args: []string{"--num-blocks", "-1"}},
		{name: "bad spi mode", args: []string{"--mode", "7"}},
		{name: "uart without device", args: []string{"--transport", "uart"}},
		{name: "i2c without address", args: []string{"--transport", "i2c"}},
		{name: "unknown flag", args: []string{"--frequency", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			cmd := newRootCmd(&out)
			cmd.SetErr(&out)
			cmd.SetArgs(append([]string{"--config", emptyConfig}, tt.args...))
			require.Error(t, cmd.Execute())
		})
	}
}

func TestRootCmd_RangeErrorIsInvalidParameter(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs([]string{"--config", writeConfig(t, "empty.toml", ""), "--tag-type", "256"})
	require.ErrorIs(t, cmd.Execute(), skyetek.ErrInvalidParameter)
}

func TestNewTransport_Unsupported(t *testing.T) {
	t.Parallel()
	cfg := config.DefaultConfig()
	cfg.Transport = "mock"
	_, err := newTransport(&cfg)
	require.ErrorIs(t, err, skyetek.ErrInvalidParameter)
}
