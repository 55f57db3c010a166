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
	"encoding/binary"
	"math"
)

// writeBuffer is an append-only byte accumulator used while encoding a
// field or message body before it is flushed to the underlying sink.
// Modeled on msg_buffer.go's MsgBuffer, but write-only and error-free:
// appends to a slice never fail.
type writeBuffer struct {
	buf []byte
}

func newWriteBuffer(sizeHint int) *writeBuffer {
	if sizeHint <= 0 {
		sizeHint = defaultBufferGrowth
	}
	return &writeBuffer{buf: make([]byte, 0, sizeHint)}
}

func (w *writeBuffer) Bytes() []byte { return w.buf }
func (w *writeBuffer) Len() int      { return len(w.buf) }

func (w *writeBuffer) writeByte(b byte) {
	w.buf = append(w.buf, b)
}

func (w *writeBuffer) writeBytes(p []byte) {
	w.buf = append(w.buf, p...)
}

func (w *writeBuffer) writeUint16(v uint16) {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	w.writeBytes(tmp[:])
}

func (w *writeBuffer) writeInt16(v int16) { w.writeUint16(uint16(v)) }

func (w *writeBuffer) writeUint32(v uint32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	w.writeBytes(tmp[:])
}

func (w *writeBuffer) writeInt32(v int32) { w.writeUint32(uint32(v)) }

func (w *writeBuffer) writeUint64(v uint64) {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	w.writeBytes(tmp[:])
}

func (w *writeBuffer) writeInt64(v int64) { w.writeUint64(uint64(v)) }

func (w *writeBuffer) writeFloat32(v float32) { w.writeUint32(math.Float32bits(v)) }
func (w *writeBuffer) writeFloat64(v float64) { w.writeUint64(math.Float64bits(v)) }

// readCursor is a read-only, offset-tracked view over a byte slice, used
// by the encoded-backed lazy container and by the in-memory decode path.
// Modeled on msg_buffer.go's read-offset half, generalized to always
// return an error rather than panicking on underrun.
type readCursor struct {
	buf    []byte
	offset int
}

func newReadCursor(buf []byte) *readCursor {
	return &readCursor{buf: buf}
}

func (r *readCursor) remaining() int { return len(r.buf) - r.offset }
func (r *readCursor) atEnd() bool    { return r.offset >= len(r.buf) }
func (r *readCursor) pos() int       { return r.offset }

func (r *readCursor) require(n int, op string) error {
	if r.remaining() < n {
		return malformedf(op, "need %d bytes, have %d", n, r.remaining())
	}
	return nil
}

func (r *readCursor) readByte(op string) (byte, error) {
	if err := r.require(1, op); err != nil {
		return 0, err
	}
	b := r.buf[r.offset]
	r.offset++
	return b, nil
}

func (r *readCursor) readBytes(n int, op string) ([]byte, error) {
	if err := r.require(n, op); err != nil {
		return nil, err
	}
	b := r.buf[r.offset : r.offset+n]
	r.offset += n
	return b, nil
}

func (r *readCursor) readUint16(op string) (uint16, error) {
	b, err := r.readBytes(2, op)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (r *readCursor) readInt16(op string) (int16, error) {
	v, err := r.readUint16(op)
	return int16(v), err
}

func (r *readCursor) readUint32(op string) (uint32, error) {
	b, err := r.readBytes(4, op)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (r *readCursor) readInt32(op string) (int32, error) {
	v, err := r.readUint32(op)
	return int32(v), err
}

func (r *readCursor) readUint64(op string) (uint64, error) {
	b, err := r.readBytes(8, op)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (r *readCursor) readInt64(op string) (int64, error) {
	v, err := r.readUint64(op)
	return int64(v), err
}

func (r *readCursor) readFloat32(op string) (float32, error) {
	v, err := r.readUint32(op)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (r *readCursor) readFloat64(op string) (float64, error) {
	v, err := r.readUint64(op)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

func (r *readCursor) skip(n int, op string) error {
	if err := r.require(n, op); err != nil {
		return err
	}
	r.offset += n
	return nil
}
