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
	"io"
	"math"
)

// WriterState is the StreamWriter state machine's current state (§4.6).
type WriterState int

const (
	WriterIdle WriterState = iota
	WriterInEnvelope
	WriterDone
)

func (s WriterState) String() string {
	switch s {
	case WriterIdle:
		return "Idle"
	case WriterInEnvelope:
		return "InEnvelope"
	case WriterDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// StreamWriter is a pull-style, single-pass encoder: WriteEnvelopeHeader
// opens an envelope with a declared total size, then WriteField appends
// fields against a shrinking byte budget until it reaches zero.
type StreamWriter struct {
	dict      *TypeDictionary
	sink      io.Writer
	state     WriterState
	remaining int64
	calc      SizeCalculator
}

// NewStreamWriter builds a writer over sink using dict for value->wire
// type resolution.
func NewStreamWriter(dict *TypeDictionary, sink io.Writer) *StreamWriter {
	return &StreamWriter{dict: dict, sink: sink, state: WriterIdle}
}

func (w *StreamWriter) State() WriterState { return w.state }

// WriteEnvelopeHeader emits the 8-byte envelope header and transitions
// Idle -> InEnvelope. totalSize must include the header itself.
func (w *StreamWriter) WriteEnvelopeHeader(processingDirectives, schemaVersion byte, taxonomyID int16, totalSize int32) error {
	if w.state != WriterIdle {
		return stateViolation("writeEnvelopeHeader", "writer is in state %s, want Idle", w.state)
	}
	if totalSize < EnvelopeHeaderSize {
		return overflowf("writeEnvelopeHeader", "totalSize %d is smaller than the %d-byte header", totalSize, EnvelopeHeaderSize)
	}
	buf := newWriteBuffer(EnvelopeHeaderSize)
	buf.writeByte(processingDirectives)
	buf.writeByte(schemaVersion)
	buf.writeInt16(taxonomyID)
	buf.writeInt32(totalSize)
	if err := w.flush(buf); err != nil {
		return err
	}
	w.remaining = int64(totalSize) - EnvelopeHeaderSize
	if w.remaining == 0 {
		w.state = WriterDone
	} else {
		w.state = WriterInEnvelope
	}
	return nil
}

// WriteField encodes and emits one field against the current budget.
// taxonomy may be nil. When the budget reaches exactly zero the writer
// transitions to Done; the current taxonomy is not otherwise tracked by
// the writer (§4.6: "the current-taxonomy is retained for the next
// envelope" is a caller-level concern, not writer state).
func (w *StreamWriter) WriteField(taxonomy Taxonomy, f Field) error {
	if w.state != WriterInEnvelope {
		return stateViolation("writeField", "writer is in state %s, want InEnvelope", w.state)
	}
	size, err := w.calc.CalculateFieldSizeOf(taxonomy, f)
	if err != nil {
		return err
	}
	if int64(size) > w.remaining {
		return overflowf("writeField", "field needs %d bytes, only %d remain in envelope budget", size, w.remaining)
	}
	buf := newWriteBuffer(size)
	if err := w.encodeField(buf, taxonomy, f); err != nil {
		return err
	}
	if err := w.flush(buf); err != nil {
		return err
	}
	w.remaining -= int64(size)
	if w.remaining == 0 {
		w.state = WriterDone
	}
	return nil
}

// encodeField writes one field (header plus value payload) to buf,
// per §6's field emission order and §4.6's name/ordinal substitution
// rule. It recurses for sub-message values without emitting a nested
// envelope header, since sub-message bytes are a bare field
// concatenation (§6).
func (w *StreamWriter) encodeField(buf *writeBuffer, taxonomy Taxonomy, f Field) error {
	name := f.Name
	ordinal := f.Ordinal
	if name != nil && taxonomy != nil {
		if resolved, ok := taxonomy.OrdinalFor(*name); ok {
			ordinal = &resolved
			name = nil
		}
	}
	hasOrdinal := ordinal != nil
	hasName := name != nil
	fixedWidth := !f.Type.IsVariableWidth()

	var valueSize int
	if fixedWidth {
		valueSize = f.Type.FixedSize
	} else if f.Type.ID == TypeFudgeMsg {
		sub, ok := f.Value.(Message)
		if !ok {
			return unknownType("writeField", "sub-message value %T does not implement Message", f.Value)
		}
		n, err := w.calc.CalculateMessageSize(taxonomy, sub)
		if err != nil {
			return err
		}
		valueSize = n
	} else {
		n, err := f.Type.Size(f.Value, taxonomy)
		if err != nil {
			return err
		}
		valueSize = n
	}

	buf.writeByte(composeFieldPrefix(fixedWidth, valueSize, hasOrdinal, hasName))
	buf.writeByte(byte(f.Type.ID))
	if hasOrdinal {
		buf.writeInt16(*ordinal)
	}
	if hasName {
		nameBytes := []byte(*name)
		if len(nameBytes) > MaxNameLength {
			return overflowf("writeField", "name %q is %d bytes, exceeds max %d", *name, len(nameBytes), MaxNameLength)
		}
		buf.writeByte(byte(len(nameBytes)))
		buf.writeBytes(nameBytes)
	}
	if !fixedWidth {
		writeVariableSize(buf, valueSize)
	}

	if f.Type.ID == TypeFudgeMsg {
		sub := f.Value.(Message)
		for _, child := range sub.Fields() {
			if err := w.encodeField(buf, taxonomy, child); err != nil {
				return err
			}
		}
		return nil
	}
	return f.Type.Write(buf, f.Value)
}

func writeVariableSize(buf *writeBuffer, size int) {
	switch variableWidthSizeCode(size) {
	case sizeCode1:
		buf.writeByte(byte(size))
	case sizeCode2:
		buf.writeUint16(uint16(size))
	default:
		buf.writeUint32(uint32(size))
	}
}

func (w *StreamWriter) flush(buf *writeBuffer) error {
	if _, err := w.sink.Write(buf.Bytes()); err != nil {
		return ioFailure("write", err)
	}
	return nil
}

// WriteMessageEnvelope is a convenience wrapper that sizes msg, writes
// the envelope header and every top-level field, and leaves the writer
// in state Done. It is equivalent to calling WriteEnvelopeHeader then
// WriteField for each of msg.Fields() by hand.
func WriteMessageEnvelope(w *StreamWriter, taxonomy Taxonomy, processingDirectives, schemaVersion byte, taxonomyID int16, msg Message) error {
	totalSize, err := w.calc.CalculateMessageEnvelopeSize(taxonomy, msg)
	if err != nil {
		return err
	}
	if totalSize > math.MaxInt32 {
		return overflowf("writeMessageEnvelope", "total size %d exceeds max %d", totalSize, math.MaxInt32)
	}
	if err := w.WriteEnvelopeHeader(processingDirectives, schemaVersion, taxonomyID, int32(totalSize)); err != nil {
		return err
	}
	for _, f := range msg.Fields() {
		if err := w.WriteField(taxonomy, f); err != nil {
			return err
		}
	}
	return nil
}
