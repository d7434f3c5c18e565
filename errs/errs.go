// Copyright 2025 Zintix Labs
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

// Package errs holds the leveled error type shared by every tosslab package.
//
// The analysis engine itself never fails; errors only come from the edges:
// record validation, dataset loading, request decoding and server wiring.
package errs

import (
	"errors"
	"fmt"
)

// ErrLevel tells the outermost caller how serious a failure is.
type ErrLevel uint8

const (
	None  ErrLevel = iota
	Fatal          // not recoverable by the caller (I/O, broken wiring)
	Warn           // bad input; the caller can fix it and retry
	Log            // informational only
)

var errLvMap = map[ErrLevel]string{
	None:  "",
	Fatal: "fatal",
	Warn:  "warn",
	Log:   "log",
}

func (l ErrLevel) String() string {
	if str, ok := errLvMap[l]; ok {
		return str
	}
	return ""
}

// E is the unified error type.
//
// Message is the main text, Extra is optional caller context, Cause is the
// wrapped lower-level error.
type E struct {
	Message string
	Extra   string
	Cause   error
	ErrLv   ErrLevel
}

func (e *E) Error() string {
	base := fmt.Sprintf("errlv=%s %s", e.ErrLv, e.Message)
	if e.Extra != "" {
		base += " | extra: " + e.Extra
	}
	if e.Cause != nil {
		base += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return base
}

// Unwrap lets errors.Is / errors.As walk into Cause.
func (e *E) Unwrap() error { return e.Cause }

func New(errLv ErrLevel, msg string) *E {
	return &E{Message: msg, ErrLv: errLv}
}

func NewFatal(msg string) *E { return New(Fatal, msg) }

func NewWarn(msg string) *E { return New(Warn, msg) }

func NewLog(msg string) *E { return New(Log, msg) }

func Fatalf(format string, a ...any) *E { return NewFatal(fmt.Sprintf(format, a...)) }

func Warnf(format string, a ...any) *E { return NewWarn(fmt.Sprintf(format, a...)) }

func Logf(format string, a ...any) *E { return NewLog(fmt.Sprintf(format, a...)) }

// NewWithExtra is New plus a context string that does not change Message.
func NewWithExtra(errLv ErrLevel, msg string, extra string) *E {
	e := New(errLv, msg)
	e.Extra = extra
	return e
}

// Wrap wraps cause with msg.
//
// A cause that is already an *E keeps its level. Anything else (stdlib or
// third-party errors) is treated as Fatal. If the situation is an expected,
// recoverable one, build an *E with the right level instead of wrapping.
func Wrap(cause error, msg string) *E {
	r := New(levelOf(cause), msg)
	r.Cause = cause
	return r
}

// WrapWithExtra is Wrap plus a context string.
func WrapWithExtra(cause error, msg string, extra string) *E {
	r := NewWithExtra(levelOf(cause), msg, extra)
	r.Cause = cause
	return r
}

// WrapWarn wraps cause and forces Warn, for decode failures on caller input.
func WrapWarn(cause error, msg string) *E {
	r := NewWarn(msg)
	r.Cause = cause
	return r
}

func AsErr(err error) (*E, bool) {
	var e *E
	if errors.As(err, &e) {
		return e, true
	}
	return e, false
}

// Level reports the level of err, or None when err carries no *E.
func Level(err error) ErrLevel {
	if e, ok := AsErr(err); ok {
		return e.ErrLv
	}
	return None
}

func levelOf(cause error) ErrLevel {
	var e *E
	if errors.As(cause, &e) {
		return e.ErrLv
	}
	return Fatal
}
