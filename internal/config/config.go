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

// Package config holds skyscan configuration and its file, environment and
// flag sources. Flags take precedence over environment variables, which take
// precedence over the config file.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	skyetek "github.com/ZaparooProject/go-skyetek"
)

// Defaults for a scan session
const (
	DefaultTransport = "spi"
	DefaultSPISpeed  = 500_000
	DefaultBaudRate  = 38400
	DefaultTagType   = 0x01
	DefaultNumBlocks = 0x0001
	DefaultInterval  = 500 * time.Millisecond

	// Valid 7-bit I2C addresses exclude the reserved ranges at both ends
	MinI2CAddress = 0x08
	MaxI2CAddress = 0x77
)

// Config holds CLI configuration for skyscan.
type Config struct {
	Transport string
	Device    string

	SPISpeed   int64
	SPIMode    int
	BaudRate   int
	I2CAddress int

	TagType    int
	StartBlock int
	NumBlocks  int

	Interval time.Duration
	Timeout  time.Duration
	Count    int

	Detect bool
	Debug  bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Transport: DefaultTransport,
		SPISpeed:  DefaultSPISpeed,
		BaudRate:  DefaultBaudRate,
		TagType:   DefaultTagType,
		NumBlocks: DefaultNumBlocks,
		Interval:  DefaultInterval,
		Timeout:   skyetek.DefaultTimeout,
	}
}

// Validate checks the configuration for errors and normalizes the transport
// name. Tag and block values outside their field widths are rejected.
func (c *Config) Validate() error {
	c.Transport = strings.ToLower(strings.TrimSpace(c.Transport))
	if c.Detect {
		return nil
	}

	transport, err := skyetek.ParseTransportType(c.Transport)
	if err != nil {
		return err
	}

	if err := checkRange("tag-type", int64(c.TagType), 0, 0xFF); err != nil {
		return err
	}
	if err := checkRange("start-block", int64(c.StartBlock), 0, 0xFFFF); err != nil {
		return err
	}
	if err := checkRange("num-blocks", int64(c.NumBlocks), 0, 0xFFFF); err != nil {
		return err
	}

	switch transport {
	case skyetek.TransportSPI:
		if c.SPISpeed <= 0 {
			return skyetek.NewInvalidParameterError("speed", strconv.FormatInt(c.SPISpeed, 10))
		}
		if err := checkRange("mode", int64(c.SPIMode), 0, 3); err != nil {
			return err
		}
	case skyetek.TransportUART:
		if c.Device == "" {
			return fmt.Errorf("device is required for uart transport")
		}
		if c.BaudRate <= 0 {
			return skyetek.NewInvalidParameterError("baud", strconv.Itoa(c.BaudRate))
		}
	case skyetek.TransportI2C:
		if err := checkRange("address", int64(c.I2CAddress), MinI2CAddress, MaxI2CAddress); err != nil {
			return err
		}
	}

	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.Count < 0 {
		return fmt.Errorf("count must not be negative")
	}
	return nil
}

// ReadMemParams returns the READ_MEM parameters. Call Validate first.
func (c *Config) ReadMemParams() skyetek.ReadMemParams {
	return skyetek.ReadMemParams{
		TagType:       uint8(c.TagType),
		StartingBlock: uint16(c.StartBlock),
		NumBlocks:     uint16(c.NumBlocks),
	}
}

func checkRange(name string, v, lo, hi int64) error {
	if v < lo || v > hi {
		return skyetek.NewInvalidParameterError(name, fmt.Sprintf("%d (want %d..%d)", v, lo, hi))
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value from a pointer if not nil and flag not changed.
// Nil means unset; zero is a legal value.
func (s *configSetter) setInt(flag string, value *int, dst *int) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setInt64 sets an int64 value if positive and flag not changed.
func (s *configSetter) setInt64(flag string, value int64, dst *int64) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Accepts decimal, 0x hex and 0o octal forms.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.ParseInt(strings.TrimSpace(value), 0, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = int(i)
	return nil
}

// setInt64FromString parses a string to int64 and sets the destination if valid.
func (s *configSetter) setInt64FromString(flag, value string, dst *int64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.ParseInt(strings.TrimSpace(value), 0, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
