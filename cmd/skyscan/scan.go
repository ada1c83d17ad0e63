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
	"context"
	"errors"
	"fmt"
	"io"

	skyetek "github.com/ZaparooProject/go-skyetek"
	"github.com/ZaparooProject/go-skyetek/detection"
	// Import all detectors to register them
	_ "github.com/ZaparooProject/go-skyetek/detection/i2c"
	_ "github.com/ZaparooProject/go-skyetek/detection/spi"
	_ "github.com/ZaparooProject/go-skyetek/detection/uart"
	"github.com/ZaparooProject/go-skyetek/internal/config"
	"github.com/ZaparooProject/go-skyetek/polling"
)

// runScan opens the transport and polls until interrupted or Count requests
// have been sent. The transport is closed on every path.
func runScan(ctx context.Context, cfg *config.Config, out io.Writer) error {
	transport, err := newTransport(cfg)
	if err != nil {
		return err
	}

	device, err := skyetek.New(transport, skyetek.WithTimeout(cfg.Timeout))
	if err != nil {
		_ = transport.Close()
		return fmt.Errorf("failed to create device: %w", err)
	}
	defer func() {
		if closeErr := device.Close(); closeErr != nil {
			log := skyetek.Logger()
			log.Warn().Err(closeErr).Msg("close failed")
		}
	}()

	scanConfig := polling.DefaultScanConfig()
	scanConfig.PollInterval = cfg.Interval
	scanConfig.MaxPolls = uint64(cfg.Count)

	scanner, err := polling.NewScanner(device, cfg.ReadMemParams(), scanConfig)
	if err != nil {
		return err
	}
	scanner.OnResponse = func(r polling.ScanResult) error {
		_, err := fmt.Fprintln(out, formatResult(r))
		return err
	}

	log := skyetek.Logger()
	log.Info().
		Str("transport", cfg.Transport).
		Str("device", cfg.Device).
		Hex("frame", skyetek.BuildReadMemFrame(cfg.ReadMemParams())).
		Dur("interval", cfg.Interval).
		Msg("scanning")

	err = scanner.Run(ctx)
	m := scanner.Metrics()
	log.Info().
		Uint64("polls", m.Polls).
		Uint64("responses", m.Responses).
		Uint64("errors", m.Errors).
		Msg("scan stopped")

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// formatResult renders one exchange as a single line
func formatResult(r polling.ScanResult) string {
	return fmt.Sprintf("%s #%d tx=% X rx=% X", r.At.Format("15:04:05.000"), r.Sequence, r.Frame, r.Response)
}

// runDetect prints every candidate bus and port
func runDetect(ctx context.Context, out io.Writer) error {
	opts := detection.DefaultOptions()
	devices, err := detection.DetectAll(ctx, &opts)
	if errors.Is(err, detection.ErrNoDevicesFound) {
		_, _ = fmt.Fprintln(out, "no devices found")
		return nil
	}

	for _, d := range devices {
		_, _ = fmt.Fprintln(out, d.String())
	}
	return err
}
