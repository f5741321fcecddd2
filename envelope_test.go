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
	"sync"
	"testing"

	"github.com/steamwire/steamwire/internal/assert"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func newStringValue() *wrapperspb.StringValue { return &wrapperspb.StringValue{} }

func newEmpty() *emptypb.Empty { return &emptypb.Empty{} }

func TestEnvelopeScenario(t *testing.T) {
	t.Parallel()
	env := NewEnvelope(42, newEmpty, WithPayloadReserve(0))
	assert.Zero(t, env.Payload().Cap())
	data, err := env.Serialize()
	assert.Nil(t, err)

	got, err := Deserialize(data, newEmpty)
	assert.Nil(t, err)
	assert.Equal(t, got.MsgType(), EMsg(42))
	assert.Zero(t, got.Payload().Len())
	assert.NotNil(t, got.Payload().Bytes())
}

func TestEnvelopeReply(t *testing.T) {
	t.Parallel()
	t.Run("correlated", func(t *testing.T) {
		t.Parallel()
		request := NewEnvelope(EMsgEconTradingInitiateTradeRequest, newStringValue)
		request.ProtoHeader().JobIDSource = 777
		reply, err := NewReply(EMsgEconTradingInitiateTradeResponse, newEmpty, request)
		assert.Nil(t, err)
		assert.Equal(t, reply.ProtoHeader().JobIDTarget, JobID(777))
		assert.Equal(t, reply.MsgType(), EMsgEconTradingInitiateTradeResponse)
		assert.Zero(t, reply.ProtoHeader().JobIDSource)
	})
	t.Run("from_inbound", func(t *testing.T) {
		t.Parallel()
		header := NewHeader(EMsgClientLogon)
		header.Proto.JobIDSource = 31337
		buf := &bytes.Buffer{}
		assert.Nil(t, header.Serialize(buf))
		inbound, err := Deserialize(buf.Bytes(), newEmpty)
		assert.Nil(t, err)

		reply, err := NewReply(EMsgClientLogOnResponse, newStringValue, inbound)
		assert.Nil(t, err)
		data, err := reply.Serialize()
		assert.Nil(t, err)
		// The reply's body is empty, so the header sits at the front.
		echoed, err := Deserialize(data, newEmpty)
		assert.Nil(t, err)
		assert.Equal(t, echoed.Header().Proto.JobIDTarget, JobID(31337))
	})
	missing := map[string]JobID{"missing_zero": 0, "missing_invalid": InvalidJobID}
	for name, source := range missing {
		name, source := name, source
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			request := NewEnvelope(EMsgClientHeartBeat, newEmpty)
			request.ProtoHeader().JobIDSource = source
			reply, err := NewReply(EMsgClientHeartBeat, newEmpty, request)
			assert.Equal(t, CodeOf(err), CodeMissingCorrelationID)
			assert.NotNil(t, reply)
			_, err = reply.Serialize()
			assert.Nil(t, err)
		})
	}
}

func TestEnvelopeRequest(t *testing.T) {
	t.Parallel()
	var jobs JobSequence
	first := NewRequest(EMsgClientLogon, newEmpty, &jobs)
	second := NewRequest(EMsgClientLogon, newEmpty, &jobs)
	assert.True(t, first.ProtoHeader().JobIDSource.IsValid())
	assert.NotEqual(t, first.ProtoHeader().JobIDSource, second.ProtoHeader().JobIDSource)

	reply, err := NewReply(EMsgClientLogOnResponse, newEmpty, second)
	assert.Nil(t, err)
	assert.Equal(t, reply.ProtoHeader().JobIDTarget, second.ProtoHeader().JobIDSource)
}

func TestEnvelopeSegmentOrder(t *testing.T) {
	t.Parallel()
	env := NewEnvelope(EMsgClientLogon, newStringValue)
	env.Body().Value = "hello"
	env.ProtoHeader().SteamID = 76561197960287930
	env.ProtoHeader().JobIDSource = 5
	_, _ = env.Payload().WriteString("tail")
	_, _ = env.Payload().Read(make([]byte, 2)) // cursor doesn't limit output

	data, err := env.Serialize()
	assert.Nil(t, err)

	body, err := proto.Marshal(wrapperspb.String("hello"))
	assert.Nil(t, err)
	header := &bytes.Buffer{}
	envHeader := env.Header()
	assert.Nil(t, envHeader.Serialize(header))

	assert.Equal(t, len(data), len(body)+header.Len()+len("tail"))
	assert.Equal(t, data[:len(body)], body)
	assert.Equal(t, data[len(body):len(body)+header.Len()], header.Bytes())
	assert.Equal(t, data[len(body)+header.Len():], []byte("tail"))
}

func TestEnvelopeBodySnapshot(t *testing.T) {
	t.Parallel()
	env := NewEnvelope(EMsgClientLogon, newStringValue)
	for _, v := range []string{"a", "bb", "ccc", "final"} {
		env.Body().Value = v
	}
	data, err := env.Serialize()
	assert.Nil(t, err)
	want, err := proto.Marshal(wrapperspb.String("final"))
	assert.Nil(t, err)
	assert.True(t, bytes.HasPrefix(data, want))

	snapshot := append([]byte(nil), data...)
	env.Body().Value = "changed after serialize"
	assert.Equal(t, data, snapshot)

	again, err := env.Serialize()
	assert.Nil(t, err)
	assert.NotEqual(t, again, data)
}

func TestEnvelopeSerializeErrors(t *testing.T) {
	t.Parallel()
	t.Run("no_message_type", func(t *testing.T) {
		t.Parallel()
		env := NewEnvelope(EMsgInvalid, newStringValue)
		env.Body().Value = "unsent"
		data, err := env.Serialize()
		assert.Equal(t, CodeOf(err), CodeMalformedHeader)
		assert.Nil(t, data)
	})
	t.Run("body_codec", func(t *testing.T) {
		t.Parallel()
		env := NewEnvelope(EMsgClientLogon, newStringValue, WithCodec(failingCodec{}))
		data, err := env.Serialize()
		assert.Equal(t, CodeOf(err), CodeMalformedBody)
		assert.Nil(t, data)
	})
}

type failingCodec struct{}

func (failingCodec) Name() string                { return "failing" }
func (failingCodec) Marshal(any) ([]byte, error) { return nil, errFailingCodec }
func (failingCodec) Unmarshal([]byte, any) error { return errFailingCodec }

var errFailingCodec = NewError(CodeUnknown, nil)

func TestEnvelopeNoBody(t *testing.T) {
	t.Parallel()
	env := NewEnvelope[*emptypb.Empty](EMsgMulti, nil)
	_, _ = env.Payload().Write([]byte{1, 2, 3})
	data, err := env.Serialize()
	assert.Nil(t, err)
	got, err := Deserialize[*emptypb.Empty](data, nil)
	assert.Nil(t, err)
	assert.Equal(t, got.Payload().Bytes(), []byte{1, 2, 3})
	assert.Equal(t, CodeOf(got.UnmarshalBody()), CodeMalformedBody)
}

func TestEnvelopeUnmarshalBody(t *testing.T) {
	t.Parallel()
	inbound := func(t *testing.T, codec Codec, body proto.Message) []byte {
		t.Helper()
		header := NewHeader(EMsgClientLogOnResponse)
		header.Proto.JobIDTarget = 8
		buf := &bytes.Buffer{}
		assert.Nil(t, header.Serialize(buf))
		raw, err := codec.Marshal(body)
		assert.Nil(t, err)
		buf.Write(raw)
		return buf.Bytes()
	}
	for _, name := range []string{CodecNameProtobuf, CodecNameJSON} {
		name := name
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			codec, err := CodecFor(name)
			assert.Nil(t, err)
			data := inbound(t, codec, wrapperspb.String("welcome"))
			env, err := Deserialize(data, newStringValue, WithCodec(codec))
			assert.Nil(t, err)
			assert.Zero(t, env.Body().GetValue())
			assert.Zero(t, env.Payload().Position())

			assert.Nil(t, env.UnmarshalBody())
			assert.Equal(t, env.Body(), wrapperspb.String("welcome"))
			assert.Equal(t, env.Payload().Position(), env.Payload().Len())
			assert.Equal(t, env.Header().Proto.JobIDTarget, JobID(8))
		})
	}
	t.Run("garbage", func(t *testing.T) {
		t.Parallel()
		header := NewHeader(EMsgClientLogOnResponse)
		buf := &bytes.Buffer{}
		assert.Nil(t, header.Serialize(buf))
		buf.Write([]byte{0xff, 0xff, 0xff})
		env, err := Deserialize(buf.Bytes(), newStringValue)
		assert.Nil(t, err)
		assert.Equal(t, CodeOf(env.UnmarshalBody()), CodeMalformedBody)
	})
}

func TestEnvelopePayloadReserve(t *testing.T) {
	t.Parallel()
	assert.Equal(t, NewEnvelope(EMsgMulti, newEmpty).Payload().Cap(), DefaultPayloadReserve)

	env := NewEnvelope(EMsgMulti, newEmpty, WithPayloadReserve(4))
	assert.Equal(t, env.Payload().Cap(), 4)
	large := bytes.Repeat([]byte("0123456789"), 100)
	_, _ = env.Payload().Write(large)
	assert.Equal(t, env.Payload().Bytes(), large)

	data, err := env.Serialize()
	assert.Nil(t, err)
	got, err := Deserialize(data, newEmpty, WithPayloadReserve(1))
	assert.Nil(t, err)
	assert.Equal(t, got.Payload().Bytes(), large)
}

func TestEnvelopeConcurrentOwners(t *testing.T) {
	t.Parallel()
	// Each goroutine owns its envelope; only the pooled scratch buffers are
	// shared.
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			env := NewEnvelope(EMsg(100+i), newStringValue)
			env.Body().Value = string(rune('a' + i))
			data, err := env.Serialize()
			if err != nil {
				t.Error(err)
				return
			}
			body, _ := proto.Marshal(wrapperspb.String(string(rune('a' + i))))
			if !bytes.HasPrefix(data, body) {
				t.Errorf("envelope %d: body prefix mismatch", i)
			}
		}(i)
	}
	wg.Wait()
}
