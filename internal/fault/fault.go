// Copyright 2026 The PGLedger Authors
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

// Package fault defines the error taxonomy shared by every core operation.
// Transport maps kinds to protocol status codes; the core never exposes
// internal detail beyond a stable code and a human-readable message.
package fault

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for callers.
type Kind string

const (
	// KindValidation marks malformed or missing input. Never a server fault.
	KindValidation Kind = "validation"
	// KindNotFound marks an absent owner, room, bed or tenant.
	KindNotFound Kind = "not_found"
	// KindConflict marks a lost uniqueness race: occupied bed, duplicate
	// payment month, duplicate phone number at registration.
	KindConflict Kind = "conflict"
	// KindUnavailable marks a transient store failure. Retryable.
	KindUnavailable Kind = "unavailable"
	// KindInvariant marks detected impossible state, e.g. an occupied bed
	// with no occupant. Indicates a correctness bug, never ignored.
	KindInvariant Kind = "invariant_violation"
)

// Error is a typed failure with a stable code for callers and logs.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.err }

// Is matches errors by code so sentinel comparisons with errors.Is work
// across wrapping.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// New creates a typed error.
func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Wrap attaches an underlying cause to a typed error, keeping kind and code.
func Wrap(base *Error, err error) *Error {
	return &Error{Kind: base.Kind, Code: base.Code, Message: base.Message, err: err}
}

// Validation creates a validation error with a request-specific message.
func Validation(code, message string) *Error {
	return New(KindValidation, code, message)
}

// Unavailable wraps a transient store failure.
func Unavailable(err error) *Error {
	return &Error{Kind: KindUnavailable, Code: "store_unavailable", Message: "persistence store unavailable", err: err}
}

// Invariant reports detected impossible state.
func Invariant(code, message string) *Error {
	return New(KindInvariant, code, message)
}

// KindOf extracts the kind from any error chain. Unclassified errors map to
// KindUnavailable so transport fails them as retryable server faults rather
// than leaking detail.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnavailable
}
