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

import "log"

// Verbosity gates the small amount of diagnostic logging this package
// does (unknown type ids tolerated on read, decode errors swallowed by
// EncodedMessage accessors). It is
// never consulted on the hot encode/decode path for known types.
type Verbosity int

const (
	LogQuiet Verbosity = iota
	LogDebug
)

// currentVerbosity is package-global rather than threaded through every
// Context because it gates only best-effort diagnostics, never control
// flow; SetVerbosity is safe to call once at process startup.
var currentVerbosity = LogQuiet

// SetVerbosity controls whether debugf calls at v or below reach the
// standard logger. Fudge itself only ever calls debugf at LogDebug, so
// this is effectively an on/off switch for now.
func SetVerbosity(v Verbosity) { currentVerbosity = v }

func debugf(v Verbosity, format string, args ...any) {
	if currentVerbosity < v {
		return
	}
	log.Printf("fudge: "+format, args...)
}
