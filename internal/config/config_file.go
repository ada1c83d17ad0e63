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

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FileConfig mirrors Config but uses strings for durations and pointers for
// values where zero is meaningful.
type FileConfig struct {
	Transport  string `toml:"transport" yaml:"transport"`
	Device     string `toml:"device" yaml:"device"`
	SPISpeed   int64  `toml:"speed" yaml:"speed"`
	SPIMode    *int   `toml:"mode" yaml:"mode"`
	BaudRate   *int   `toml:"baud" yaml:"baud"`
	I2CAddress *int   `toml:"address" yaml:"address"`
	TagType    *int   `toml:"tag_type" yaml:"tag_type"`
	StartBlock *int   `toml:"start_block" yaml:"start_block"`
	NumBlocks  *int   `toml:"num_blocks" yaml:"num_blocks"`
	Interval   string `toml:"interval" yaml:"interval"`
	Timeout    string `toml:"timeout" yaml:"timeout"`
	Count      *int   `toml:"count" yaml:"count"`
	Debug      *bool  `toml:"debug" yaml:"debug"`
}

// LoadFileConfig reads and parses a config file from the given path.
// Files ending in .yaml or .yml are parsed as YAML, anything else as TOML.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		if err := toml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.skyetek/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".skyetek", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("transport", fc.Transport, &cfg.Transport)
	s.setString("device", fc.Device, &cfg.Device)

	s.setInt64("speed", fc.SPISpeed, &cfg.SPISpeed)
	s.setInt("mode", fc.SPIMode, &cfg.SPIMode)
	s.setInt("baud", fc.BaudRate, &cfg.BaudRate)
	s.setInt("address", fc.I2CAddress, &cfg.I2CAddress)
	s.setInt("tag-type", fc.TagType, &cfg.TagType)
	s.setInt("start-block", fc.StartBlock, &cfg.StartBlock)
	s.setInt("num-blocks", fc.NumBlocks, &cfg.NumBlocks)
	s.setInt("count", fc.Count, &cfg.Count)

	if err := s.setDuration("interval", fc.Interval, &cfg.Interval); err != nil {
		return err
	}
	if err := s.setDuration("timeout", fc.Timeout, &cfg.Timeout); err != nil {
		return err
	}

	s.setBool("debug", fc.Debug, &cfg.Debug)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
