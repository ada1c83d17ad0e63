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

// Package detection enumerates buses and ports that may host a SkyeTek
// reader module. Detectors for each transport register themselves on import.
package detection

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// Detection errors
var (
	ErrNoDevicesFound      = errors.New("no devices found")
	ErrUnsupportedPlatform = errors.New("detection not supported on this platform")
	ErrDetectionTimeout    = errors.New("detection timeout")
)

// DeviceInfo describes a candidate device
type DeviceInfo struct {
	Metadata  map[string]string
	Transport string
	Path      string
	Name      string
}

// String returns a human-readable description
func (d DeviceInfo) String() string {
	if d.Name != "" && d.Name != d.Path {
		return d.Transport + ":" + d.Path + " (" + d.Name + ")"
	}
	return d.Transport + ":" + d.Path
}

// Options controls detection
type Options struct {
	// Blocklist holds USB VID:PID pairs that are never reported
	Blocklist []string
	// IgnorePaths holds device paths that are never reported
	IgnorePaths []string
	// Timeout bounds a DetectAll call
	Timeout time.Duration
	// IncludeNonUSB reports serial ports that are not USB adapters
	IncludeNonUSB bool
}

// DefaultOptions returns default detection options
func DefaultOptions() Options {
	return Options{
		Timeout:   5 * time.Second,
		Blocklist: DefaultBlocklist(),
	}
}

// Detector finds candidate devices for one transport
type Detector interface {
	// Transport returns the transport type name
	Transport() string
	// Detect returns the candidates found
	Detect(ctx context.Context, opts *Options) ([]DeviceInfo, error)
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Detector{}
)

// RegisterDetector adds a detector. A later registration for the same
// transport replaces the earlier one.
func RegisterDetector(d Detector) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[d.Transport()] = d
}

// Detectors returns registered detectors sorted by transport name
func Detectors() []Detector {
	registryMu.RLock()
	defer registryMu.RUnlock()

	out := make([]Detector, 0, len(registry))
	for _, d := range registry {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Transport() < out[j].Transport() })
	return out
}

// DetectAll runs every registered detector. Detectors that find nothing or
// are unsupported on this platform are skipped; any other error is returned
// together with whatever was found.
func DetectAll(ctx context.Context, opts *Options) ([]DeviceInfo, error) {
	return detectWith(ctx, opts, Detectors())
}

func detectWith(ctx context.Context, opts *Options, detectors []Detector) ([]DeviceInfo, error) {
	if opts == nil {
		defaults := DefaultOptions()
		opts = &defaults
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	var (
		devices []DeviceInfo
		errs    []error
	)
	for _, d := range detectors {
		select {
		case <-ctx.Done():
			return devices, ErrDetectionTimeout
		default:
		}

		found, err := d.Detect(ctx, opts)
		if err != nil && !errors.Is(err, ErrNoDevicesFound) && !errors.Is(err, ErrUnsupportedPlatform) {
			errs = append(errs, err)
		}
		devices = append(devices, found...)
	}

	if len(devices) == 0 && len(errs) == 0 {
		return nil, ErrNoDevicesFound
	}
	return devices, errors.Join(errs...)
}

// Filter drops devices on the ignore list
func Filter(devices []DeviceInfo, opts *Options) []DeviceInfo {
	if opts == nil || len(opts.IgnorePaths) == 0 {
		return devices
	}
	out := devices[:0:0]
	for _, d := range devices {
		if !IsPathIgnored(d.Path, opts.IgnorePaths) {
			out = append(out, d)
		}
	}
	return out
}
