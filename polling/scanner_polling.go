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

package polling

import (
	"context"
	"errors"
	"fmt"
	"time"

	skyetek "github.com/ZaparooProject/go-skyetek"
)

// pollLoop sends one request immediately and then one per interval
func (s *Scanner) pollLoop(ctx context.Context) error {
	ticker := time.NewTicker(s.config.PollInterval)
	defer ticker.Stop()

	var polls uint64
	for {
		if err := s.pollOnce(ctx); err != nil {
			return err
		}
		polls++
		if s.config.MaxPolls > 0 && polls >= s.config.MaxPolls {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// pollOnce performs a single READ_MEM exchange. It returns an error only
// when polling must stop.
func (s *Scanner) pollOnce(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	frm := skyetek.BuildReadMemFrame(s.params)
	seq := s.sequence.Add(1)

	start := time.Now()
	resp, err := s.device.Exchange(ctx, frm)
	s.metrics.recordPoll(time.Since(start))

	if err != nil {
		return s.handlePollingError(ctx, err)
	}

	result := ScanResult{
		Sequence: seq,
		Frame:    frm,
		Response: resp,
		At:       time.Now(),
	}
	s.metrics.recordResponse()

	if s.OnResponse != nil {
		if cbErr := s.callback(s.OnResponse, result); cbErr != nil {
			return fmt.Errorf("response callback failed: %w", cbErr)
		}
	}
	if s.previous.update(resp) && s.OnChange != nil {
		if cbErr := s.callback(s.OnChange, result); cbErr != nil {
			return fmt.Errorf("change callback failed: %w", cbErr)
		}
	}
	return nil
}

// callback runs fn with the in-callback flag set so Stop does not wait on
// the goroutine that is calling it
func (s *Scanner) callback(fn func(ScanResult) error, result ScanResult) error {
	s.inCallback.Store(true)
	defer s.inCallback.Store(false)
	return fn(result)
}

// handlePollingError decides whether a failed exchange ends the scan.
// Transport faults are reported and polling continues; a closed transport,
// cancellation or any other error stops it.
func (s *Scanner) handlePollingError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	s.metrics.recordError()
	s.previous.reset()

	if errors.Is(err, skyetek.ErrTransportClosed) || !skyetek.IsTransportError(err) {
		return fmt.Errorf("poll %d failed: %w", s.sequence.Load(), err)
	}

	logger := skyetek.Logger()
	logger.Warn().Err(err).Uint64("sequence", s.sequence.Load()).Msg("poll failed")
	if s.OnError != nil {
		s.inCallback.Store(true)
		s.OnError(err)
		s.inCallback.Store(false)
	}
	return nil
}
