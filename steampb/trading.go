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
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

func getUint32(m *dynamicpb.Message, num protoreflect.FieldNumber) uint32 {
	return uint32(m.Get(m.Descriptor().Fields().ByNumber(num)).Uint())
}

func getUint64(m *dynamicpb.Message, num protoreflect.FieldNumber) uint64 {
	return m.Get(m.Descriptor().Fields().ByNumber(num)).Uint()
}

func getString(m *dynamicpb.Message, num protoreflect.FieldNumber) string {
	return m.Get(m.Descriptor().Fields().ByNumber(num)).String()
}

func setUint32(m *dynamicpb.Message, num protoreflect.FieldNumber, v uint32) {
	m.Set(m.Descriptor().Fields().ByNumber(num), protoreflect.ValueOfUint32(v))
}

func setUint64(m *dynamicpb.Message, num protoreflect.FieldNumber, v uint64) {
	m.Set(m.Descriptor().Fields().ByNumber(num), protoreflect.ValueOfUint64(v))
}

func setString(m *dynamicpb.Message, num protoreflect.FieldNumber, v string) {
	m.Set(m.Descriptor().Fields().ByNumber(num), protoreflect.ValueOfString(v))
}

// InitiateTradeRequest is CMsgTrading_InitiateTradeRequest. It's sent to
// propose a trade and received when someone proposes one.
type InitiateTradeRequest struct {
	*dynamicpb.Message
}

// NewInitiateTradeRequest returns an empty InitiateTradeRequest.
func NewInitiateTradeRequest() *InitiateTradeRequest {
	return &InitiateTradeRequest{dynamicpb.NewMessage(initiateTradeRequestDesc)}
}

func (m *InitiateTradeRequest) TradeRequestID() uint32 { return getUint32(m.Message, 1) }
func (m *InitiateTradeRequest) OtherSteamID() uint64   { return getUint64(m.Message, 2) }
func (m *InitiateTradeRequest) OtherName() string      { return getString(m.Message, 3) }

func (m *InitiateTradeRequest) SetTradeRequestID(v uint32) { setUint32(m.Message, 1, v) }
func (m *InitiateTradeRequest) SetOtherSteamID(v uint64)   { setUint64(m.Message, 2, v) }
func (m *InitiateTradeRequest) SetOtherName(v string)      { setString(m.Message, 3, v) }

// InitiateTradeResponse is CMsgTrading_InitiateTradeResponse. It's sent to
// answer a proposal and received with the outcome of one.
type InitiateTradeResponse struct {
	*dynamicpb.Message
}

// NewInitiateTradeResponse returns an empty InitiateTradeResponse.
func NewInitiateTradeResponse() *InitiateTradeResponse {
	return &InitiateTradeResponse{dynamicpb.NewMessage(initiateTradeResponseDesc)}
}

func (m *InitiateTradeResponse) Response() uint32       { return getUint32(m.Message, 1) }
func (m *InitiateTradeResponse) TradeRequestID() uint32 { return getUint32(m.Message, 2) }
func (m *InitiateTradeResponse) OtherSteamID() uint64   { return getUint64(m.Message, 3) }
func (m *InitiateTradeResponse) SteamGuardRequiredDays() uint32 {
	return getUint32(m.Message, 4)
}
func (m *InitiateTradeResponse) NewDeviceCooldownDays() uint32 {
	return getUint32(m.Message, 5)
}
func (m *InitiateTradeResponse) DefaultPasswordResetProbationDays() uint32 {
	return getUint32(m.Message, 6)
}
func (m *InitiateTradeResponse) PasswordResetProbationDays() uint32 {
	return getUint32(m.Message, 7)
}
func (m *InitiateTradeResponse) DefaultEmailChangeProbationDays() uint32 {
	return getUint32(m.Message, 8)
}
func (m *InitiateTradeResponse) EmailChangeProbationDays() uint32 {
	return getUint32(m.Message, 9)
}

func (m *InitiateTradeResponse) SetResponse(v uint32)       { setUint32(m.Message, 1, v) }
func (m *InitiateTradeResponse) SetTradeRequestID(v uint32) { setUint32(m.Message, 2, v) }
func (m *InitiateTradeResponse) SetOtherSteamID(v uint64)   { setUint64(m.Message, 3, v) }
func (m *InitiateTradeResponse) SetSteamGuardRequiredDays(v uint32) {
	setUint32(m.Message, 4, v)
}
func (m *InitiateTradeResponse) SetNewDeviceCooldownDays(v uint32) {
	setUint32(m.Message, 5, v)
}
func (m *InitiateTradeResponse) SetDefaultPasswordResetProbationDays(v uint32) {
	setUint32(m.Message, 6, v)
}
func (m *InitiateTradeResponse) SetPasswordResetProbationDays(v uint32) {
	setUint32(m.Message, 7, v)
}
func (m *InitiateTradeResponse) SetDefaultEmailChangeProbationDays(v uint32) {
	setUint32(m.Message, 8, v)
}
func (m *InitiateTradeResponse) SetEmailChangeProbationDays(v uint32) {
	setUint32(m.Message, 9, v)
}

// StartSession is CMsgTrading_StartSession, received when a trade session
// opens.
type StartSession struct {
	*dynamicpb.Message
}

// NewStartSession returns an empty StartSession.
func NewStartSession() *StartSession {
	return &StartSession{dynamicpb.NewMessage(startSessionDesc)}
}

func (m *StartSession) OtherSteamID() uint64     { return getUint64(m.Message, 1) }
func (m *StartSession) SetOtherSteamID(v uint64) { setUint64(m.Message, 1, v) }

// CancelTradeRequest is CMsgTrading_CancelTradeRequest, sent to withdraw a
// proposal.
type CancelTradeRequest struct {
	*dynamicpb.Message
}

// NewCancelTradeRequest returns an empty CancelTradeRequest.
func NewCancelTradeRequest() *CancelTradeRequest {
	return &CancelTradeRequest{dynamicpb.NewMessage(cancelTradeRequestDesc)}
}

func (m *CancelTradeRequest) OtherSteamID() uint64     { return getUint64(m.Message, 1) }
func (m *CancelTradeRequest) SetOtherSteamID(v uint64) { setUint64(m.Message, 1, v) }
