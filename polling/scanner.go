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

// Package polling sends READ_MEM requests to a reader at a fixed interval.
package polling

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	skyetek "github.com/ZaparooProject/go-skyetek"
)

// DefaultPollInterval is the pause between READ_MEM requests
const DefaultPollInterval = 500 * time.Millisecond

// Scanner provides continuous READ_MEM polling of one device. Callbacks run
// on the polling goroutine; Stop called from a callback cancels the scan
// without waiting for it to end.
type Scanner struct {
	device   *skyetek.Device
	config   *ScanConfig
	previous responseState
	lastErr  error
	// OnResponse receives every successful exchange. A returned error
	// stops the scanner.
	OnResponse func(ScanResult) error
	// OnChange receives a result only when its response differs from the
	// one before it. A returned error stops the scanner.
	OnChange func(ScanResult) error
	// OnError receives transport errors that did not stop the scanner
	OnError    func(error)
	cancelFunc context.CancelFunc
	done       chan struct{}
	metrics    ScanMetrics
	params     skyetek.ReadMemParams
	sequence   atomic.Uint64
	stopMutex  sync.Mutex
	running    atomic.Bool
	inCallback atomic.Bool
}

// ScanConfig holds configuration options for the Scanner
type ScanConfig struct {
	// PollInterval is the pause between requests
	PollInterval time.Duration
	// MaxPolls stops the scanner after this many requests. Zero means
	// poll until stopped.
	MaxPolls uint64
}

// ScanResult is one completed READ_MEM exchange
type ScanResult struct {
	At       time.Time
	Frame    []byte
	Response []byte
	Sequence uint64
}

// Scanner-specific errors
var (
	ErrScannerRunning = errors.New("scanner is already running")
	ErrNilDevice      = errors.New("device cannot be nil")
	ErrInvalidConfig  = errors.New("invalid scan configuration")
)

// NewScanner creates a new scanner for device sending params on every poll
func NewScanner(device *skyetek.Device, params skyetek.ReadMemParams, config *ScanConfig) (*Scanner, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if config == nil {
		config = DefaultScanConfig()
	}
	if config.PollInterval <= 0 {
		return nil, ErrInvalidConfig
	}

	cfg := *config
	return &Scanner{
		device: device,
		params: params,
		config: &cfg,
	}, nil
}

// DefaultScanConfig returns sensible default configuration values
func DefaultScanConfig() *ScanConfig {
	return &ScanConfig{
		PollInterval: DefaultPollInterval,
	}
}

// Params returns the READ_MEM parameters sent on every poll
func (s *Scanner) Params() skyetek.ReadMemParams {
	return s.params
}

// Start begins continuous scanning (non-blocking). The error that ended the
// run is available from Err once IsRunning reports false.
func (s *Scanner) Start(ctx context.Context) error {
	scanCtx, err := s.begin(ctx)
	if err != nil {
		return err
	}

	go func() {
		err := s.pollLoop(scanCtx)
		s.finish(err)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger := skyetek.Logger()
			logger.Error().Err(err).Msg("scanner stopped")
		}
	}()

	return nil
}

// Run scans until ctx is done, MaxPolls is reached or a fatal error occurs.
// Reaching MaxPolls returns nil.
func (s *Scanner) Run(ctx context.Context) error {
	scanCtx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	err = s.pollLoop(scanCtx)
	s.finish(err)
	return err
}

func (s *Scanner) begin(ctx context.Context) (context.Context, error) {
	s.stopMutex.Lock()
	defer s.stopMutex.Unlock()

	if !s.running.CompareAndSwap(false, true) {
		return nil, ErrScannerRunning
	}

	scanCtx, cancel := context.WithCancel(ctx)
	s.cancelFunc = cancel
	s.done = make(chan struct{})
	s.lastErr = nil
	return scanCtx, nil
}

func (s *Scanner) finish(err error) {
	s.stopMutex.Lock()
	defer s.stopMutex.Unlock()

	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}
	s.lastErr = err
	s.running.Store(false)
	close(s.done)
}

// Stop gracefully stops the scanner
// Blocks until the scanner has fully stopped, unless called while a
// callback is running, in which case it only cancels the scan.
func (s *Scanner) Stop() error {
	s.stopMutex.Lock()
	cancelFunc := s.cancelFunc
	done := s.done
	s.stopMutex.Unlock()

	if cancelFunc == nil {
		return nil
	}
	cancelFunc()
	if s.inCallback.Load() {
		return nil
	}
	<-done
	return nil
}

// IsRunning returns whether the scanner is currently active
func (s *Scanner) IsRunning() bool {
	return s.running.Load()
}

// Err returns the error that ended the last run
func (s *Scanner) Err() error {
	s.stopMutex.Lock()
	defer s.stopMutex.Unlock()
	return s.lastErr
}

// Metrics returns a snapshot of the polling counters
func (s *Scanner) Metrics() MetricsSnapshot {
	return s.metrics.snapshot()
}
