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

package config

import "os"

// EnvPrefix prefixes every environment variable read by ApplyEnvConfig
const EnvPrefix = "SKYETEK_"

// ApplyEnvConfig applies configuration from environment variables (SKYETEK_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("transport", os.Getenv(EnvPrefix+"TRANSPORT"), &cfg.Transport)
	s.setString("device", os.Getenv(EnvPrefix+"DEVICE"), &cfg.Device)

	if err := s.setInt64FromString("speed", os.Getenv(EnvPrefix+"SPEED"), &cfg.SPISpeed); err != nil {
		return err
	}

	ints := []struct {
		dst  *int
		flag string
		env  string
	}{
		{flag: "mode", env: "MODE", dst: &cfg.SPIMode},
		{flag: "baud", env: "BAUD", dst: &cfg.BaudRate},
		{flag: "address", env: "ADDRESS", dst: &cfg.I2CAddress},
		{flag: "tag-type", env: "TAG_TYPE", dst: &cfg.TagType},
		{flag: "start-block", env: "START_BLOCK", dst: &cfg.StartBlock},
		{flag: "num-blocks", env: "NUM_BLOCKS", dst: &cfg.NumBlocks},
		{flag: "count", env: "COUNT", dst: &cfg.Count},
	}
	for _, v := range ints {
		if err := s.setIntFromString(v.flag, os.Getenv(EnvPrefix+v.env), v.dst); err != nil {
			return err
		}
	}

	if err := s.setDuration("interval", os.Getenv(EnvPrefix+"INTERVAL"), &cfg.Interval); err != nil {
		return err
	}
	if err := s.setDuration("timeout", os.Getenv(EnvPrefix+"TIMEOUT"), &cfg.Timeout); err != nil {
		return err
	}

	s.setBoolFromString("debug", os.Getenv(EnvPrefix+"DEBUG"), &cfg.Debug)

	return nil
}
