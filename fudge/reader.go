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

// StreamElement is the kind of element a StreamReader just produced
// (§4.7).
type StreamElement int

const (
	ElementNone StreamElement = iota
	ElementMessageEnvelope
	ElementSimpleField
	ElementSubMessageFieldStart
	ElementSubMessageFieldEnd
)

func (e StreamElement) String() string {
	switch e {
	case ElementMessageEnvelope:
		return "MessageEnvelope"
	case ElementSimpleField:
		return "SimpleField"
	case ElementSubMessageFieldStart:
		return "SubMessageFieldStart"
	case ElementSubMessageFieldEnd:
		return "SubMessageFieldEnd"
	default:
		return "None"
	}
}

// ReaderState is the StreamReader state machine's current state.
type ReaderState int

const (
	ReaderInitial ReaderState = iota
	ReaderEnvelope
	ReaderInField
	ReaderEnd
)

// frame tracks how many payload bytes remain in the current message
// level (top-level envelope body, or a sub-message), per §4.7's
// processing-state stack.
type frame struct {
	remaining int64
}

// StreamReader is a pull-style decoder over a byte source, producing a
// sequence of StreamElements. next() must be called before any accessor
// reflects a new element.
type StreamReader struct {
	dict  *TypeDictionary
	r     *readCursor
	state ReaderState
	stack []frame

	element    StreamElement
	name       *string
	ordinal    *int16
	fieldType  *WireType
	value      any
	subMsgSize int
}

// NewStreamReader builds a reader over the full buffered contents of
// buf. Fudge streams are processed as complete, in-memory byte ranges
// throughout this package (the encoded-backed container is the
// streaming-friendly abstraction; see encoded_message.go), so a
// StreamReader is always constructed over a []byte rather than an
// io.Reader.
func NewStreamReader(dict *TypeDictionary, buf []byte) *StreamReader {
	return &StreamReader{dict: dict, r: newReadCursor(buf), state: ReaderInitial}
}

// newFieldStreamReader builds a reader already positioned to read fields
// directly from buf, with no envelope header to consume. Used for
// sub-message byte ranges, which are a bare field concatenation (§6).
func newFieldStreamReader(dict *TypeDictionary, buf []byte) *StreamReader {
	return &StreamReader{
		dict:  dict,
		r:     newReadCursor(buf),
		state: ReaderEnvelope,
		stack: []frame{{remaining: int64(len(buf))}},
	}
}

func (sr *StreamReader) State() ReaderState     { return sr.state }
func (sr *StreamReader) Element() StreamElement { return sr.element }
func (sr *StreamReader) FieldName() *string     { return sr.name }
func (sr *StreamReader) FieldOrdinal() *int16   { return sr.ordinal }
func (sr *StreamReader) FieldType() *WireType   { return sr.fieldType }
func (sr *StreamReader) FieldValue() any        { return sr.value }

// EnvelopeHeader returns the header fields produced by the most recent
// ElementMessageEnvelope, or ok=false if the reader's current value
// isn't an envelope header (any time other than immediately after a
// MessageEnvelope element).
func (sr *StreamReader) EnvelopeHeader() (processingDirectives, schemaVersion byte, taxonomyID int16, totalSize int32, ok bool) {
	h, ok := sr.value.(envelopeHeader)
	if !ok {
		return 0, 0, 0, 0, false
	}
	return h.ProcessingDirectives, h.SchemaVersion, h.TaxonomyID, h.TotalSize, true
}

// Next advances the reader and reports the element it produced.
func (sr *StreamReader) Next() (StreamElement, error) {
	switch sr.state {
	case ReaderInitial:
		return sr.readEnvelopeHeader()
	case ReaderEnvelope, ReaderInField:
		return sr.readNextField()
	case ReaderEnd:
		return ElementNone, stateViolation("next", "reader is at End")
	default:
		return ElementNone, stateViolation("next", "reader is in an unknown state")
	}
}

func (sr *StreamReader) readEnvelopeHeader() (StreamElement, error) {
	processingDirectives, err := sr.r.readByte("readEnvelopeHeader")
	if err != nil {
		return ElementNone, err
	}
	schemaVersion, err := sr.r.readByte("readEnvelopeHeader")
	if err != nil {
		return ElementNone, err
	}
	taxonomyID, err := sr.r.readInt16("readEnvelopeHeader")
	if err != nil {
		return ElementNone, err
	}
	totalSize, err := sr.r.readInt32("readEnvelopeHeader")
	if err != nil {
		return ElementNone, err
	}
	if totalSize < EnvelopeHeaderSize {
		return ElementNone, malformedf("readEnvelopeHeader", "totalSize %d smaller than header size %d", totalSize, EnvelopeHeaderSize)
	}
	sr.stack = []frame{{remaining: int64(totalSize) - EnvelopeHeaderSize}}
	sr.state = ReaderEnvelope
	sr.element = ElementMessageEnvelope
	sr.name = nil
	sr.ordinal = nil
	sr.fieldType = nil
	sr.value = envelopeHeader{processingDirectives, schemaVersion, taxonomyID, totalSize}
	return sr.element, nil
}

type envelopeHeader struct {
	ProcessingDirectives byte
	SchemaVersion        byte
	TaxonomyID           int16
	TotalSize            int32
}

func (sr *StreamReader) currentFrame() *frame { return &sr.stack[len(sr.stack)-1] }

func (sr *StreamReader) readNextField() (StreamElement, error) {
	top := sr.currentFrame()
	if top.remaining == 0 {
		wasTopLevel := len(sr.stack) == 1
		sr.stack = sr.stack[:len(sr.stack)-1]
		sr.name, sr.ordinal, sr.fieldType, sr.value = nil, nil, nil, nil
		if wasTopLevel {
			sr.state = ReaderEnd
			sr.element = ElementNone
			return sr.element, nil
		}
		sr.state = ReaderInField
		sr.element = ElementSubMessageFieldEnd
		return sr.element, nil
	}

	startPos := sr.r.pos()
	prefixByte, err := sr.r.readByte("readField")
	if err != nil {
		return ElementNone, err
	}
	typeIDByte, err := sr.r.readByte("readField")
	if err != nil {
		return ElementNone, err
	}
	decoded := decodeFieldPrefix(prefixByte)

	var ordinal *int16
	if decoded.HasOrdinal {
		o, err := sr.r.readInt16("readField")
		if err != nil {
			return ElementNone, err
		}
		ordinal = &o
	}
	var name *string
	if decoded.HasName {
		nameLen, err := sr.r.readByte("readField")
		if err != nil {
			return ElementNone, err
		}
		nameBytes, err := sr.r.readBytes(int(nameLen), "readField")
		if err != nil {
			return ElementNone, err
		}
		n := string(nameBytes)
		name = &n
	}

	typeID := TypeID(typeIDByte)
	wt, known := sr.dict.ByID(typeID)

	var declaredSize int
	if decoded.FixedWidth {
		if !known {
			return ElementNone, malformedf("readField", "unknown fixed-width type id %d", typeID)
		}
		declaredSize = wt.FixedSize
	} else {
		declaredSize, err = readVariableSize(sr.r, decoded.VariableSizeCode)
		if err != nil {
			return ElementNone, err
		}
	}

	consumed := int64(sr.r.pos() - startPos + declaredSize)
	if consumed > top.remaining {
		return ElementNone, malformedf("readField", "field consumes %d bytes, only %d remain", consumed, top.remaining)
	}

	sr.name, sr.ordinal = name, ordinal

	if known && typeID == TypeFudgeMsg {
		// The cursor sits right after the field header (prefix, type id,
		// optional ordinal/name, size prefix); children are read directly
		// from it by subsequent Next() calls, not copied out first.
		top.remaining -= consumed
		sr.stack = append(sr.stack, frame{remaining: int64(declaredSize)})
		sr.fieldType = wt
		sr.value = nil
		sr.subMsgSize = declaredSize
		sr.state = ReaderInField
		sr.element = ElementSubMessageFieldStart
		return sr.element, nil
	}

	if !known {
		raw, err := sr.r.readBytes(declaredSize, "readField")
		if err != nil {
			return ElementNone, err
		}
		cp := make([]byte, len(raw))
		copy(cp, raw)
		debugf(LogDebug, "readField: tolerating unknown variable-width type id %d as raw bytes", typeID)
		sr.fieldType = &WireType{ID: typeID, Name: "unknown", FixedSize: sizeVariable}
		sr.value = cp
	} else {
		v, err := wt.Read(sr.r, declaredSize)
		if err != nil {
			return ElementNone, err
		}
		sr.fieldType = wt
		sr.value = v
	}

	top.remaining -= consumed
	sr.state = ReaderInField
	sr.element = ElementSimpleField
	return sr.element, nil
}

// readVariableSize reads a 1/2/4-byte unsigned big-endian size prefix,
// per the field-prefix's chosen width.
func readVariableSize(r *readCursor, width int) (int, error) {
	switch width {
	case 1:
		b, err := r.readByte("readFieldSize")
		return int(b), err
	case 2:
		v, err := r.readUint16("readFieldSize")
		return int(v), err
	case 4:
		v, err := r.readUint32("readFieldSize")
		return int(v), err
	default:
		return 0, malformedf("readFieldSize", "invalid variable-width size code")
	}
}

// SkipMessageField skips the current sub-message field (current element
// must be SubMessageFieldStart) and returns the raw bytes of its
// payload, positioning the reader at the sibling field that follows.
// Used by the lazy container to wrap sub-ranges without decoding them.
func (sr *StreamReader) SkipMessageField() ([]byte, error) {
	if sr.element != ElementSubMessageFieldStart {
		return nil, stateViolation("skipMessageField", "current element is %s, want SubMessageFieldStart", sr.element)
	}
	start := sr.r.pos()
	n := sr.subMsgSize
	if err := sr.r.skip(n, "skipMessageField"); err != nil {
		return nil, err
	}
	// Pop the frame that readNextField pushed for this sub-message.
	sr.stack = sr.stack[:len(sr.stack)-1]
	if len(sr.stack) == 0 {
		sr.state = ReaderEnd
	} else {
		sr.state = ReaderInField
	}
	sr.element = ElementSubMessageFieldEnd
	return sr.r.buf[start : start+n], nil
}
