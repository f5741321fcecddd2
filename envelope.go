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
	"bytes"
	"io"

	"google.golang.org/protobuf/proto"
)

// A Message is anything carrying a message type and a protobuf header, such
// as an Envelope. NewReply uses it to find the job to answer.
type Message interface {
	MsgType() EMsg
	ProtoHeader() *ProtoHeader
}

// An Envelope binds a Header, a schema-typed body and a trailing payload into
// one protocol message.
//
// Envelopes are built either fresh, with NewEnvelope or NewRequest, as replies
// with NewReply, or from inbound bytes with Deserialize. The message type is
// fixed at construction. An Envelope has exactly one owner for its lifetime
// and isn't safe for concurrent use.
type Envelope[B proto.Message] struct {
	header  Header
	body    B
	hasBody bool
	payload *Payload
	codec   Codec
}

var _ Message = (*Envelope[proto.Message])(nil)

// NewEnvelope returns an outbound envelope for msgType. The body is allocated
// by newBody and is ready for its fields to be set; a nil newBody gives a
// message with no body segment. Nothing is sent anywhere.
func NewEnvelope[B proto.Message](msgType EMsg, newBody func() B, options ...Option) *Envelope[B] {
	config := newEnvelopeConfig(options)
	env := &Envelope[B]{
		header:  NewHeader(msgType),
		payload: NewPayload(config.PayloadReserve),
		codec:   config.Codec,
	}
	if newBody != nil {
		env.body = newBody()
		env.hasBody = true
	}
	return env
}

// NewRequest is NewEnvelope for a message that expects a reply: the header's
// JobIDSource is drawn from jobs.
func NewRequest[B proto.Message](msgType EMsg, newBody func() B, jobs *JobSequence, options ...Option) *Envelope[B] {
	env := NewEnvelope(msgType, newBody, options...)
	env.header.Proto.JobIDSource = jobs.Next()
	return env
}

// NewReply returns an envelope answering origin: its JobIDTarget is origin's
// JobIDSource.
//
// If origin carries no valid JobIDSource, NewReply still returns the fully
// built envelope together with an error coded CodeMissingCorrelationID.
// Callers that want to send an uncorrelated reply anyway may ignore it.
func NewReply[B proto.Message](msgType EMsg, newBody func() B, origin Message, options ...Option) (*Envelope[B], error) {
	env := NewEnvelope(msgType, newBody, options...)
	// our target is where the message came from
	source := origin.ProtoHeader().JobIDSource
	env.header.Proto.JobIDTarget = source
	if !source.IsValid() {
		return env, errorf(CodeMissingCorrelationID, "reply to %v: origin has no job source", origin.MsgType())
	}
	return env, nil
}

// Deserialize builds an inbound envelope from data. The header is read from
// the front of data, and everything after it becomes the payload, with the
// read cursor at the start. The body is allocated by newBody but left unset:
// decoding it is schema-specific, see UnmarshalBody.
//
// Data shorter than the header encoding fails with CodeTruncatedHeader and no
// envelope. An empty payload region is valid.
func Deserialize[B proto.Message](data []byte, newBody func() B, options ...Option) (*Envelope[B], error) {
	src := bytes.NewReader(data)
	var header Header
	if err := header.Deserialize(src); err != nil {
		return nil, err
	}
	env := NewEnvelope(header.MsgType(), newBody, options...)
	env.header = header
	env.payload.set(data[len(data)-src.Len():])
	return env, nil
}

// MsgType returns the message type.
func (e *Envelope[B]) MsgType() EMsg {
	return e.header.MsgType()
}

// Header returns a copy of the header. Use ProtoHeader to change routing and
// correlation fields.
func (e *Envelope[B]) Header() Header {
	return e.header
}

// ProtoHeader returns the envelope's mutable correlation sub-structure.
func (e *Envelope[B]) ProtoHeader() *ProtoHeader {
	return &e.header.Proto
}

// Body returns the owned body for reading or in-place mutation. Changes made
// after Serialize don't affect its output.
func (e *Envelope[B]) Body() B {
	return e.body
}

// Payload returns the trailing payload buffer.
func (e *Envelope[B]) Payload() *Payload {
	return e.payload
}

// Serialize encodes the envelope as the body, then the header, then the
// whole payload, regardless of the payload's read cursor. The body is
// marshaled at call time. Serialize returns either the complete encoding or
// an error, never a partial result.
func (e *Envelope[B]) Serialize() ([]byte, error) {
	header, headerErr := e.header.appendTo(nil)
	if headerErr != nil {
		return nil, headerErr
	}
	buffer := getBuffer()
	defer putBuffer(buffer)
	if e.hasBody {
		if err := marshal(buffer, e.body, e.codec); err != nil {
			return nil, err
		}
	}
	buffer.Write(header)
	buffer.Write(e.payload.Bytes())
	return bytes.Clone(buffer.Bytes()), nil
}

// UnmarshalBody decodes the unread payload bytes into the body and moves the
// payload's cursor to the end. Protobuf bodies aren't self-delimiting, so the
// body must be the last thing in the payload.
func (e *Envelope[B]) UnmarshalBody() error {
	if !e.hasBody {
		return errorf(CodeMalformedBody, "%v: envelope has no body", e.MsgType())
	}
	if err := e.codec.Unmarshal(e.payload.Unread(), e.body); err != nil {
		return errorf(CodeMalformedBody, "unmarshal %v into %T: %w", e.MsgType(), e.body, err)
	}
	_, _ = e.payload.Seek(0, io.SeekEnd)
	return nil
}

func marshal(dst *bytes.Buffer, message any, codec Codec) *Error {
	if appender, ok := codec.(marshalAppender); ok {
		raw, err := appender.MarshalAppend(dst.Bytes(), message)
		if err != nil {
			return errorf(CodeMalformedBody, "marshal %T: %w", message, err)
		}
		setBuffer(dst, raw)
		return nil
	}
	raw, err := codec.Marshal(message)
	if err != nil {
		return errorf(CodeMalformedBody, "marshal %T: %w", message, err)
	}
	dst.Write(raw)
	return nil
}

// setBuffer sets the buffer to the given bytes. The buffer takes ownership of
// the bytes, so the caller must not use the bytes after calling setBuffer.
func setBuffer(dst *bytes.Buffer, buf []byte) {
	if cap(buf) > dst.Cap() {
		*dst = *bytes.NewBuffer(buf)
	} else {
		dst.Reset()
		dst.Write(buf)
	}
}
