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
	"encoding/binary"
	"errors"
	"io"

	"google.golang.org/protobuf/encoding/protowire"
)

// headerPrefixLen is the fixed part of the header: the type word and the
// length of the protobuf-encoded ProtoHeader that follows it.
const headerPrefixLen = 8

// Field numbers of the protobuf header.
const (
	fieldSteamID         protowire.Number = 1
	fieldClientSessionID protowire.Number = 2
	fieldRoutingAppID    protowire.Number = 3
	fieldJobIDSource     protowire.Number = 10
	fieldJobIDTarget     protowire.Number = 11
	fieldTargetJobName   protowire.Number = 12
	fieldEResult         protowire.Number = 13
	fieldErrorMessage    protowire.Number = 14
	fieldMessageID       protowire.Number = 18
	fieldSeqNum          protowire.Number = 24
	fieldRealm           protowire.Number = 32
	fieldTimeoutMS       protowire.Number = 33
)

// ProtoHeader is the correlation and routing sub-structure of a Header. Zero
// values are absent and aren't written to the wire.
type ProtoHeader struct {
	SteamID         SteamID
	ClientSessionID int32
	RoutingAppID    uint32
	JobIDSource     JobID
	JobIDTarget     JobID
	TargetJobName   string
	EResult         int32
	ErrorMessage    string
	MessageID       uint64
	SeqNum          int32
	Realm           uint32
	TimeoutMS       int64

	// unknown holds fields this package doesn't model, verbatim, so they
	// survive a decode and re-encode.
	unknown []byte
}

func (p *ProtoHeader) appendTo(b []byte) []byte {
	if p.SteamID != 0 {
		b = protowire.AppendTag(b, fieldSteamID, protowire.Fixed64Type)
		b = protowire.AppendFixed64(b, uint64(p.SteamID))
	}
	if p.ClientSessionID != 0 {
		b = protowire.AppendTag(b, fieldClientSessionID, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(p.ClientSessionID))
	}
	if p.RoutingAppID != 0 {
		b = protowire.AppendTag(b, fieldRoutingAppID, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(p.RoutingAppID))
	}
	if p.JobIDSource != 0 {
		b = protowire.AppendTag(b, fieldJobIDSource, protowire.Fixed64Type)
		b = protowire.AppendFixed64(b, uint64(p.JobIDSource))
	}
	if p.JobIDTarget != 0 {
		b = protowire.AppendTag(b, fieldJobIDTarget, protowire.Fixed64Type)
		b = protowire.AppendFixed64(b, uint64(p.JobIDTarget))
	}
	if p.TargetJobName != "" {
		b = protowire.AppendTag(b, fieldTargetJobName, protowire.BytesType)
		b = protowire.AppendString(b, p.TargetJobName)
	}
	if p.EResult != 0 {
		b = protowire.AppendTag(b, fieldEResult, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(p.EResult))
	}
	if p.ErrorMessage != "" {
		b = protowire.AppendTag(b, fieldErrorMessage, protowire.BytesType)
		b = protowire.AppendString(b, p.ErrorMessage)
	}
	if p.MessageID != 0 {
		b = protowire.AppendTag(b, fieldMessageID, protowire.VarintType)
		b = protowire.AppendVarint(b, p.MessageID)
	}
	if p.SeqNum != 0 {
		b = protowire.AppendTag(b, fieldSeqNum, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(p.SeqNum))
	}
	if p.Realm != 0 {
		b = protowire.AppendTag(b, fieldRealm, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(p.Realm))
	}
	if p.TimeoutMS != 0 {
		b = protowire.AppendTag(b, fieldTimeoutMS, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(p.TimeoutMS))
	}
	return append(b, p.unknown...)
}

func (p *ProtoHeader) unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		field := b[:n]
		b = b[n:]
		var (
			v uint64
			s string
			m int
		)
		switch {
		case typ == protowire.Fixed64Type && (num == fieldSteamID || num == fieldJobIDSource || num == fieldJobIDTarget):
			v, m = protowire.ConsumeFixed64(b)
		case typ == protowire.VarintType && isVarintField(num):
			v, m = protowire.ConsumeVarint(b)
		case typ == protowire.BytesType && (num == fieldTargetJobName || num == fieldErrorMessage):
			s, m = protowire.ConsumeString(b)
		default:
			m = protowire.ConsumeFieldValue(num, typ, b)
			if m < 0 {
				return protowire.ParseError(m)
			}
			p.unknown = append(p.unknown, field...)
			p.unknown = append(p.unknown, b[:m]...)
			b = b[m:]
			continue
		}
		if m < 0 {
			return protowire.ParseError(m)
		}
		b = b[m:]
		switch num {
		case fieldSteamID:
			p.SteamID = SteamID(v)
		case fieldClientSessionID:
			p.ClientSessionID = int32(v)
		case fieldRoutingAppID:
			p.RoutingAppID = uint32(v)
		case fieldJobIDSource:
			p.JobIDSource = JobID(v)
		case fieldJobIDTarget:
			p.JobIDTarget = JobID(v)
		case fieldTargetJobName:
			p.TargetJobName = s
		case fieldEResult:
			p.EResult = int32(v)
		case fieldErrorMessage:
			p.ErrorMessage = s
		case fieldMessageID:
			p.MessageID = v
		case fieldSeqNum:
			p.SeqNum = int32(v)
		case fieldRealm:
			p.Realm = uint32(v)
		case fieldTimeoutMS:
			p.TimeoutMS = int64(v)
		}
	}
	return nil
}

func isVarintField(num protowire.Number) bool {
	switch num {
	case fieldClientSessionID, fieldRoutingAppID, fieldEResult,
		fieldMessageID, fieldSeqNum, fieldRealm, fieldTimeoutMS:
		return true
	}
	return false
}

// A Header is the structured metadata segment of a message: the message type
// and the protobuf-encoded ProtoHeader.
//
// On the wire it's a little-endian type word with the protobuf flag set, a
// little-endian length, and then that many bytes of ProtoHeader. The length
// isn't constant, so callers must not assume a fixed header size.
type Header struct {
	msgType EMsg
	Proto   ProtoHeader
}

// NewHeader returns a header for the given message type.
func NewHeader(msgType EMsg) Header {
	return Header{msgType: msgType}
}

// MsgType returns the header's message type.
func (h *Header) MsgType() EMsg {
	return h.msgType
}

// SetMsgType sets the message type. It must be called before Serialize on a
// zero Header.
func (h *Header) SetMsgType(msgType EMsg) {
	h.msgType = msgType
}

// Serialize writes the header to dst in a single Write. It fails with
// CodeMalformedHeader, writing nothing, if no message type is set or the type
// has the protobuf flag bit set.
func (h *Header) Serialize(dst io.Writer) error {
	raw, err := h.appendTo(nil)
	if err != nil {
		return err
	}
	if _, err := dst.Write(raw); err != nil {
		return errorf(CodeUnknown, "write header: %w", err)
	}
	return nil
}

func (h *Header) appendTo(b []byte) ([]byte, *Error) {
	if h.msgType == EMsgInvalid {
		return nil, errorf(CodeMalformedHeader, "message type not set")
	}
	if uint32(h.msgType)&protoMask != 0 {
		return nil, errorf(CodeMalformedHeader, "message type %d overlaps the protobuf flag", uint32(h.msgType))
	}
	start := len(b)
	b = binary.LittleEndian.AppendUint32(b, MakeMsg(h.msgType, true))
	b = append(b, 0, 0, 0, 0) // length, patched below
	b = h.Proto.appendTo(b)
	binary.LittleEndian.PutUint32(b[start+4:start+headerPrefixLen], uint32(len(b)-start-headerPrefixLen))
	return b, nil
}

// Deserialize reads one header from src, consuming exactly the header's
// encoded length and leaving the rest of src untouched. It fails with
// CodeTruncatedHeader if src ends early and CodeMalformedHeader if the bytes
// don't describe a protobuf header. On failure, h is unchanged.
func (h *Header) Deserialize(src io.Reader) error {
	var prefix [headerPrefixLen]byte
	if _, err := io.ReadFull(src, prefix[:]); err != nil {
		return readHeaderError(err, "read header prefix")
	}
	raw := binary.LittleEndian.Uint32(prefix[:4])
	if !IsProto(raw) {
		return errorf(CodeMalformedHeader, "message type word %#08x lacks protobuf flag", raw)
	}
	size := binary.LittleEndian.Uint32(prefix[4:])
	// The length is untrusted: never allocate more than src delivers.
	if sized, ok := src.(interface{ Len() int }); ok && int64(sized.Len()) < int64(size) {
		return errorf(CodeTruncatedHeader, "protobuf header claims %d bytes, %d remain", size, sized.Len())
	}
	body, err := io.ReadAll(io.LimitReader(src, int64(size)))
	if err != nil {
		return readHeaderError(err, "read %d byte protobuf header", size)
	}
	if int64(len(body)) < int64(size) {
		return readHeaderError(io.ErrUnexpectedEOF, "read %d byte protobuf header", size)
	}
	var proto ProtoHeader
	if err := proto.unmarshal(body); err != nil {
		return errorf(CodeMalformedHeader, "parse protobuf header: %w", err)
	}
	h.msgType = MsgOf(raw)
	h.Proto = proto
	return nil
}

func readHeaderError(err error, template string, args ...any) *Error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return NewError(CodeTruncatedHeader, wrapf(err, template, args...))
	}
	return NewError(CodeUnknown, wrapf(err, template, args...))
}

// PeekMsgType returns the message type of the encoded header at the front of
// data without decoding the rest of it.
func PeekMsgType(data []byte) (EMsg, error) {
	if len(data) < 4 {
		return EMsgInvalid, errorf(CodeTruncatedHeader, "need 4 bytes for message type, got %d", len(data))
	}
	raw := binary.LittleEndian.Uint32(data)
	if !IsProto(raw) {
		return EMsgInvalid, errorf(CodeMalformedHeader, "message type word %#08x lacks protobuf flag", raw)
	}
	return MsgOf(raw), nil
}
