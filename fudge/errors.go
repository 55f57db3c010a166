// Copyright 2024 The fudge-go Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fudge

import (
	"errors"
	"fmt"
)

// Kind classifies why an operation on a Fudge stream failed, per the
// error kinds described in the wire format's error handling design.
type Kind int

const (
	// KindMalformedFrame covers prefix/type inconsistency, truncated
	// fields, size overflow, unknown fixed-width type ids and envelope
	// totalSize mismatch. Fatal to the current stream.
	KindMalformedFrame Kind = iota
	// KindEncodingOverflow covers a value whose declared size, name
	// length or ordinal does not fit the wire format's limits. Reported
	// before any bytes are written for the offending field.
	KindEncodingOverflow
	// KindUnknownType means no wire type is registered for a value's
	// runtime type during a write.
	KindUnknownType
	// KindConversionFailure means the type dictionary could not adapt a
	// value to a requested type. Never fatal; typed getters return the
	// zero value instead of propagating this kind.
	KindConversionFailure
	// KindStateViolation means a reader, writer or container was used
	// outside its legal state. A programming bug; the stream is left
	// unusable.
	KindStateViolation
	// KindIoFailure wraps a failure from the underlying byte source or
	// sink.
	KindIoFailure
)

func (k Kind) String() string {
	switch k {
	case KindMalformedFrame:
		return "MalformedFrame"
	case KindEncodingOverflow:
		return "EncodingOverflow"
	case KindUnknownType:
		return "UnknownType"
	case KindConversionFailure:
		return "ConversionFailure"
	case KindStateViolation:
		return "StateViolation"
	case KindIoFailure:
		return "IoFailure"
	default:
		return "UnknownKind"
	}
}

// WireError is the error type returned by every fallible operation in
// this package. Op names the failing operation (e.g. "writeField",
// "readEnvelope"); Err, if non-nil, is the underlying cause.
type WireError struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *WireError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fudge: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("fudge: %s: %s", e.Op, e.Kind)
}

func (e *WireError) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e's Kind, so callers can
// write errors.Is(err, fudge.ErrMalformedFrame) without type-asserting
// WireError.
func (e *WireError) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]
	return ok && target == sentinel
}

// Sentinel errors, one per Kind, for use with errors.Is.
var (
	ErrMalformedFrame    = errors.New("fudge: malformed frame")
	ErrEncodingOverflow  = errors.New("fudge: encoding overflow")
	ErrUnknownType       = errors.New("fudge: unknown type")
	ErrConversionFailure = errors.New("fudge: conversion failure")
	ErrStateViolation    = errors.New("fudge: state violation")
	ErrIoFailure         = errors.New("fudge: io failure")
)

var kindSentinels = map[Kind]error{
	KindMalformedFrame:    ErrMalformedFrame,
	KindEncodingOverflow:  ErrEncodingOverflow,
	KindUnknownType:       ErrUnknownType,
	KindConversionFailure: ErrConversionFailure,
	KindStateViolation:    ErrStateViolation,
	KindIoFailure:         ErrIoFailure,
}

func newErr(kind Kind, op string, cause error) *WireError {
	return &WireError{Kind: kind, Op: op, Err: cause}
}

func malformedf(op, format string, args ...any) *WireError {
	return newErr(KindMalformedFrame, op, fmt.Errorf(format, args...))
}

func overflowf(op, format string, args ...any) *WireError {
	return newErr(KindEncodingOverflow, op, fmt.Errorf(format, args...))
}

func stateViolation(op, format string, args ...any) *WireError {
	return newErr(KindStateViolation, op, fmt.Errorf(format, args...))
}

func ioFailure(op string, cause error) *WireError {
	return newErr(KindIoFailure, op, cause)
}

func unknownType(op, format string, args ...any) *WireError {
	return newErr(KindUnknownType, op, fmt.Errorf(format, args...))
}
