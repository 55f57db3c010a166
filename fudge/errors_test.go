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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWireErrorIsMatchesSentinelByKind(t *testing.T) {
	err := malformedf("readField", "truncated field at offset %d", 12)

	assert.True(t, errors.Is(err, ErrMalformedFrame))
	assert.False(t, errors.Is(err, ErrEncodingOverflow))
	assert.False(t, errors.Is(err, ErrStateViolation))
}

func TestWireErrorIsCoversEveryKind(t *testing.T) {
	cases := []struct {
		err      *WireError
		sentinel error
	}{
		{overflowf("writeField", "name too long"), ErrEncodingOverflow},
		{unknownType("encodeValue", "no wire type for %s", "custom"), ErrUnknownType},
		{newErr(KindConversionFailure, "getValueByName", nil), ErrConversionFailure},
		{stateViolation("next", "writer already closed"), ErrStateViolation},
		{ioFailure("readEnvelope", errors.New("short read")), ErrIoFailure},
	}
	for _, c := range cases {
		assert.True(t, errors.Is(c.err, c.sentinel), "expected Is to match %s", c.sentinel)
	}
}

func TestWireErrorUnwrapExposesCause(t *testing.T) {
	cause := errors.New("boom")
	err := ioFailure("writeEnvelope", cause)

	assert.Same(t, cause, errors.Unwrap(err))
}

func TestWireErrorErrorMessageFormatting(t *testing.T) {
	withCause := ioFailure("readEnvelope", errors.New("short read"))
	assert.Contains(t, withCause.Error(), "readEnvelope")
	assert.Contains(t, withCause.Error(), "IoFailure")
	assert.Contains(t, withCause.Error(), "short read")

	withoutCause := stateViolation("next", "writer already closed")
	assert.Contains(t, withoutCause.Error(), "StateViolation")
	assert.NotContains(t, withoutCause.Error(), "<nil>")
}
