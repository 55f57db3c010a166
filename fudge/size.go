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

// SizeCalculator precomputes the on-wire byte size of fields and
// messages without encoding them, so a writer can size-prefix
// sub-messages and envelopes in a single forward pass. Transcribed from
// calculateFieldSize/calculateMessageSize/calculateMessageEnvelopeSize,
// which this type's methods are named after.
type SizeCalculator struct{}

// fudgeEncodedBytes is satisfied by a container that already knows its
// own encoded byte range (the lazy container); calculateMessageSize
// short-circuits to its length rather than re-summing fields. The
// shortcut is only valid when re-encoding under the same taxonomy (or
// lack of one) the container's fields were decoded and counterpart-
// resolved with: re-encoding under a different taxonomy can add or drop
// name/ordinal bytes per field and would make len(data) wrong.
type fudgeEncodedBytes interface {
	encodedBytes(taxonomy Taxonomy) ([]byte, bool)
}

// CalculateFieldSize returns the number of bytes name, ordinal, type and
// value will occupy on the wire as a single field, including the
// 2-byte prefix+typeId header. If taxonomy is non-nil and name resolves
// to an ordinal under it, the field is sized as if written by ordinal
// instead of by name — the writer later makes the same substitution
// (§4.5).
func (SizeCalculator) CalculateFieldSize(taxonomy Taxonomy, name *string, ordinal *int16, t *WireType, value any) (int, error) {
	size := 2 // prefix byte + type id byte

	hasOrdinal := ordinal != nil
	hasName := name != nil
	if hasName && taxonomy != nil {
		if _, ok := taxonomy.OrdinalFor(*name); ok {
			hasOrdinal = true
			hasName = false
		}
	}

	if hasOrdinal {
		size += 2
	}
	if hasName {
		size++ // name length prefix
		size += len([]byte(*name))
	}

	if t.IsVariableWidth() {
		var valueSize int
		var err error
		if t.ID == TypeFudgeMsg {
			sub, ok := value.(Message)
			if !ok {
				return 0, unknownType("calculateFieldSize", "sub-message value %T does not implement Message", value)
			}
			valueSize, err = (SizeCalculator{}).CalculateMessageSize(taxonomy, sub)
		} else {
			valueSize, err = t.Size(value, taxonomy)
		}
		if err != nil {
			return 0, err
		}
		if valueSize > MaxVariableSize {
			return 0, overflowf("calculateFieldSize", "value size %d exceeds max %d", valueSize, MaxVariableSize)
		}
		switch {
		case valueSize <= MaxFixedVariableSize:
			size += valueSize + 1
		case valueSize <= MaxShortVariableSize:
			size += valueSize + 2
		default:
			size += valueSize + 4
		}
	} else {
		size += t.FixedSize
	}
	return size, nil
}

// CalculateFieldSizeOf is a convenience wrapper taking a Field directly.
func (c SizeCalculator) CalculateFieldSizeOf(taxonomy Taxonomy, f Field) (int, error) {
	return c.CalculateFieldSize(taxonomy, f.Name, f.Ordinal, f.Type, f.Value)
}

// CalculateMessageSize sums the size of every field in msg. If msg is an
// encoded-backed container with a known byte range, its length is
// returned directly without summing fields.
func (c SizeCalculator) CalculateMessageSize(taxonomy Taxonomy, msg Message) (int, error) {
	if enc, ok := msg.(fudgeEncodedBytes); ok {
		if b, ok := enc.encodedBytes(taxonomy); ok {
			return len(b), nil
		}
	}
	total := 0
	for _, f := range msg.Fields() {
		n, err := c.CalculateFieldSizeOf(taxonomy, f)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

// CalculateMessageEnvelopeSize is CalculateMessageSize plus the 8-byte
// envelope header.
func (c SizeCalculator) CalculateMessageEnvelopeSize(taxonomy Taxonomy, msg Message) (int, error) {
	n, err := c.CalculateMessageSize(taxonomy, msg)
	if err != nil {
		return 0, err
	}
	return EnvelopeHeaderSize + n, nil
}
