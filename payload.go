// Copyright 2021-2025 The Connect Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package steamwire

import (
	"errors"
	"io"
)

// DefaultPayloadReserve is the payload capacity envelopes start with unless
// WithPayloadReserve says otherwise.
const DefaultPayloadReserve = 64

// A Payload is a growable byte buffer with a read cursor that is independent
// of writes: Write always appends, Read consumes from the cursor, and Bytes
// returns everything ever written. Growth reallocates and never drops bytes.
//
// A Payload isn't safe for concurrent use.
type Payload struct {
	buf []byte
	off int
}

// NewPayload returns an empty payload with the given initial capacity.
// Negative reserves are treated as zero.
func NewPayload(reserve int) *Payload {
	if reserve < 0 {
		reserve = 0
	}
	return &Payload{buf: make([]byte, 0, reserve)}
}

var (
	_ io.ReadWriteSeeker = (*Payload)(nil)
	_ io.ByteReader      = (*Payload)(nil)
	_ io.ByteWriter      = (*Payload)(nil)
	_ io.StringWriter    = (*Payload)(nil)
)

// Write appends p to the payload. It never returns an error.
func (p *Payload) Write(b []byte) (int, error) {
	p.buf = append(p.buf, b...)
	return len(b), nil
}

// WriteByte appends c to the payload.
func (p *Payload) WriteByte(c byte) error {
	p.buf = append(p.buf, c)
	return nil
}

// WriteString appends s to the payload.
func (p *Payload) WriteString(s string) (int, error) {
	p.buf = append(p.buf, s...)
	return len(s), nil
}

// Read reads from the cursor, returning io.EOF once the cursor reaches the
// end of the written bytes.
func (p *Payload) Read(b []byte) (int, error) {
	if p.off >= len(p.buf) {
		if len(b) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := copy(b, p.buf[p.off:])
	p.off += n
	return n, nil
}

// ReadByte reads one byte from the cursor.
func (p *Payload) ReadByte() (byte, error) {
	if p.off >= len(p.buf) {
		return 0, io.EOF
	}
	c := p.buf[p.off]
	p.off++
	return c, nil
}

// Seek moves the read cursor. Seeking past the end is allowed; reads there
// return io.EOF.
func (p *Payload) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(p.off) + offset
	case io.SeekEnd:
		abs = int64(len(p.buf)) + offset
	default:
		return 0, errors.New("payload: invalid whence")
	}
	if abs < 0 {
		return 0, errors.New("payload: negative position")
	}
	p.off = int(abs)
	return abs, nil
}

// Bytes returns the full contents, regardless of the read cursor. The slice
// aliases the payload until the next write.
func (p *Payload) Bytes() []byte {
	return p.buf
}

// Unread returns the bytes between the cursor and the end.
func (p *Payload) Unread() []byte {
	if p.off >= len(p.buf) {
		return p.buf[len(p.buf):]
	}
	return p.buf[p.off:]
}

// Len returns the total number of bytes written.
func (p *Payload) Len() int {
	return len(p.buf)
}

// Cap returns the capacity of the underlying buffer.
func (p *Payload) Cap() int {
	return cap(p.buf)
}

// Position returns the read cursor.
func (p *Payload) Position() int {
	return p.off
}

// Reset empties the payload and rewinds the cursor, keeping its capacity.
func (p *Payload) Reset() {
	p.buf = p.buf[:0]
	p.off = 0
}

// set replaces the contents with a copy of b and rewinds the cursor.
func (p *Payload) set(b []byte) {
	p.buf = append(p.buf[:0], b...)
	p.off = 0
}
