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

// Wire-format limits: compile-time constants, following the teacher's
// config-package convention of plain named constants rather than a
// runtime configuration object. Every one of these is fixed by the wire
// format itself, not caller policy, so there is no accompanying
// override type.
const (
	// MaxNameLength is the largest UTF-8 encoded field name, in bytes,
	// the one-byte name-length prefix can represent.
	MaxNameLength = 255

	// MaxFixedVariableSize is the largest value size representable by a
	// single-byte variable-width size prefix.
	MaxFixedVariableSize = 255
	// MaxShortVariableSize is the largest value size representable by a
	// two-byte variable-width size prefix.
	MaxShortVariableSize = 32767
	// MaxVariableSize is the largest value size the format can express
	// at all, via a four-byte size prefix.
	MaxVariableSize = 1<<31 - 1

	// EnvelopeHeaderSize is the fixed size, in bytes, of an envelope
	// header: processingDirectives, schemaVersion, taxonomyId, totalSize.
	EnvelopeHeaderSize = 8

	// defaultBufferGrowth is the initial capacity given to a fresh
	// writeBuffer when no size hint is available, mirroring
	// msg_buffer.go's NewMsgBuffer default.
	defaultBufferGrowth = 64
)
