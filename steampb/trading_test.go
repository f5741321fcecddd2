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

package steampb

import (
	"testing"

	"github.com/steamwire/steamwire/internal/assert"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
)

func TestSchema(t *testing.T) {
	t.Parallel()
	assert.Equal(t, File.Path(), fileName)
	assert.Equal(t, File.Messages().Len(), 4)
	fields := initiateTradeResponseDesc.Fields()
	assert.Equal(t, fields.Len(), 9)
	assert.Equal(t, string(fields.ByNumber(4).Name()), "steamguard_required_days")
	assert.Equal(t, string(fields.ByNumber(8).Name()), "default_email_change_probation_days")
	assert.Equal(t, string(fields.ByNumber(9).Name()), "email_change_probation_days")
}

func TestInitiateTradeRequest(t *testing.T) {
	t.Parallel()
	msg := NewInitiateTradeRequest()
	assert.Zero(t, msg.TradeRequestID())
	msg.SetTradeRequestID(91)
	msg.SetOtherSteamID(76561197960287930)
	msg.SetOtherName("gaben")

	data, err := proto.Marshal(msg)
	assert.Nil(t, err)

	var want []byte
	want = protowire.AppendTag(want, 1, protowire.VarintType)
	want = protowire.AppendVarint(want, 91)
	want = protowire.AppendTag(want, 2, protowire.VarintType)
	want = protowire.AppendVarint(want, 76561197960287930)
	want = protowire.AppendTag(want, 3, protowire.BytesType)
	want = protowire.AppendString(want, "gaben")
	assert.WireBytes(t, data, want)

	got := NewInitiateTradeRequest()
	assert.Nil(t, proto.Unmarshal(data, got))
	assert.Equal(t, got.TradeRequestID(), uint32(91))
	assert.Equal(t, got.OtherSteamID(), uint64(76561197960287930))
	assert.Equal(t, got.OtherName(), "gaben")
	assert.True(t, proto.Equal(got, msg))
}

func TestInitiateTradeResponse(t *testing.T) {
	t.Parallel()
	msg := NewInitiateTradeResponse()
	msg.SetResponse(21)
	msg.SetTradeRequestID(5)
	msg.SetOtherSteamID(1)
	msg.SetSteamGuardRequiredDays(15)
	msg.SetNewDeviceCooldownDays(7)
	msg.SetDefaultPasswordResetProbationDays(5)
	msg.SetPasswordResetProbationDays(3)
	msg.SetDefaultEmailChangeProbationDays(30)
	msg.SetEmailChangeProbationDays(10)

	data, err := protojson.Marshal(msg)
	assert.Nil(t, err)
	got := NewInitiateTradeResponse()
	assert.Nil(t, protojson.Unmarshal(data, got))
	assert.Equal(t, got.Response(), uint32(21))
	assert.Equal(t, got.TradeRequestID(), uint32(5))
	assert.Equal(t, got.OtherSteamID(), uint64(1))
	assert.Equal(t, got.SteamGuardRequiredDays(), uint32(15))
	assert.Equal(t, got.NewDeviceCooldownDays(), uint32(7))
	assert.Equal(t, got.DefaultPasswordResetProbationDays(), uint32(5))
	assert.Equal(t, got.PasswordResetProbationDays(), uint32(3))
	assert.Equal(t, got.DefaultEmailChangeProbationDays(), uint32(30))
	assert.Equal(t, got.EmailChangeProbationDays(), uint32(10))

	raw := protowire.AppendTag(nil, 8, protowire.VarintType)
	raw = protowire.AppendVarint(raw, 30)
	raw = protowire.AppendTag(raw, 9, protowire.VarintType)
	raw = protowire.AppendVarint(raw, 10)
	decoded := NewInitiateTradeResponse()
	assert.Nil(t, proto.Unmarshal(raw, decoded))
	assert.Equal(t, decoded.DefaultEmailChangeProbationDays(), uint32(30))
	assert.Equal(t, decoded.EmailChangeProbationDays(), uint32(10))
	assert.Zero(t, len(decoded.GetUnknown()))
}

func TestSessionMessages(t *testing.T) {
	t.Parallel()
	start := NewStartSession()
	start.SetOtherSteamID(44)
	cancel := NewCancelTradeRequest()
	cancel.SetOtherSteamID(44)

	startData, err := proto.Marshal(start)
	assert.Nil(t, err)
	cancelData, err := proto.Marshal(cancel)
	assert.Nil(t, err)
	// Same shape, different schema.
	assert.Equal(t, startData, cancelData)
	assert.NotEqual(t, start.Descriptor().FullName(), cancel.Descriptor().FullName())

	got := NewCancelTradeRequest()
	assert.Nil(t, proto.Unmarshal(cancelData, got))
	assert.Equal(t, got.OtherSteamID(), uint64(44))
}
