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
	"errors"
	"fmt"
)

// Transport errors
var (
	ErrTransportTimeout  = errors.New("transport timeout")
	ErrTransportRead     = errors.New("transport read failed")
	ErrTransportWrite    = errors.New("transport write failed")
	ErrTransportClosed   = errors.New("transport closed")
	ErrTransportNotReady = errors.New("transport not ready")
	ErrEmptyResponse     = errors.New("empty response from reader")
)

// Device errors
var (
	ErrDeviceNotFound   = errors.New("device not found")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrNilTransport     = errors.New("transport cannot be nil")
)

// ErrorType classifies errors for retry decisions and loop control
type ErrorType string

const (
	// ErrorTypeTransient indicates a temporary bus or device condition
	ErrorTypeTransient ErrorType = "transient"
	// ErrorTypeTimeout indicates the reader did not answer in time
	ErrorTypeTimeout ErrorType = "timeout"
	// ErrorTypePermanent indicates a condition that will not clear by itself
	ErrorTypePermanent ErrorType = "permanent"
)

// TransportError describes a failure on the bus
type TransportError struct {
	Err       error
	Op        string
	Port      string
	Type      ErrorType
	Retryable bool
}

func (e *TransportError) Error() string {
	if e.Port != "" {
		return fmt.Sprintf("%s on %s: %v", e.Op, e.Port, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError creates a transport error. Transient and timeout errors
// are marked retryable.
func NewTransportError(op, port string, err error, errType ErrorType) *TransportError {
	return &TransportError{
		Op:        op,
		Port:      port,
		Err:       err,
		Type:      errType,
		Retryable: errType != ErrorTypePermanent,
	}
}

// NewTimeoutError creates a timeout transport error
func NewTimeoutError(op, port string) *TransportError {
	return NewTransportError(op, port, ErrTransportTimeout, ErrorTypeTimeout)
}

// NewTransportClosedError reports use of a transport after Close
func NewTransportClosedError(op, port string) *TransportError {
	return NewTransportError(op, port, ErrTransportClosed, ErrorTypePermanent)
}

// NewTransportNotReadyError reports a bus that is not ready for an exchange
func NewTransportNotReadyError(op, port string) *TransportError {
	return NewTransportError(op, port, ErrTransportNotReady, ErrorTypeTransient)
}

// NewTransportReadError wraps a read failure
func NewTransportReadError(op, port string, err error) *TransportError {
	return NewTransportError(op, port, fmt.Errorf("%w: %w", ErrTransportRead, err), ErrorTypeTransient)
}

// NewTransportWriteError wraps a write failure
func NewTransportWriteError(op, port string, err error) *TransportError {
	return NewTransportError(op, port, fmt.Errorf("%w: %w", ErrTransportWrite, err), ErrorTypeTransient)
}

// NewInvalidParameterError reports a value rejected at an input boundary
func NewInvalidParameterError(name, value string) error {
	return fmt.Errorf("%w: %s=%q", ErrInvalidParameter, name, value)
}

// IsRetryable reports whether err describes a condition worth trying again
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var te *TransportError
	if errors.As(err, &te) {
		return te.Retryable
	}

	switch {
	case errors.Is(err, ErrTransportTimeout),
		errors.Is(err, ErrTransportRead),
		errors.Is(err, ErrTransportWrite),
		errors.Is(err, ErrTransportNotReady),
		errors.Is(err, ErrEmptyResponse):
		return true
	default:
		return false
	}
}

// GetErrorType returns the ErrorType of err
func GetErrorType(err error) ErrorType {
	if err == nil {
		return ErrorTypePermanent
	}

	var te *TransportError
	if errors.As(err, &te) {
		return te.Type
	}

	switch {
	case errors.Is(err, ErrTransportTimeout):
		return ErrorTypeTimeout
	case errors.Is(err, ErrTransportRead),
		errors.Is(err, ErrTransportWrite),
		errors.Is(err, ErrTransportNotReady),
		errors.Is(err, ErrEmptyResponse):
		return ErrorTypeTransient
	default:
		return ErrorTypePermanent
	}
}

// IsTransportError reports whether err originated on the bus, as opposed to
// a programming or configuration error
func IsTransportError(err error) bool {
	if err == nil {
		return false
	}

	var te *TransportError
	if errors.As(err, &te) {
		return true
	}

	return errors.Is(err, ErrTransportTimeout) ||
		errors.Is(err, ErrTransportRead) ||
		errors.Is(err, ErrTransportWrite) ||
		errors.Is(err, ErrTransportNotReady) ||
		errors.Is(err, ErrTransportClosed) ||
		errors.Is(err, ErrEmptyResponse)
}
