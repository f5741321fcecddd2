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

import "fmt"

// protoMask marks a message type word whose header is protobuf encoded.
const protoMask uint32 = 0x80000000

// An EMsg is the numeric tag identifying the semantic kind of a message. The
// tag selects the schema used to interpret the body.
type EMsg uint32

// Message types used by this module. The full enumeration is much larger;
// callers may use any other numeric value.
const (
	EMsgInvalid EMsg = 0
	EMsgMulti   EMsg = 1

	EMsgClientHeartBeat     EMsg = 703
	EMsgClientLogOnResponse EMsg = 751
	EMsgClientLogon         EMsg = 5514

	EMsgEconTradingInitiateTradeRequest  EMsg = 1501
	EMsgEconTradingInitiateTradeProposed EMsg = 1502
	EMsgEconTradingInitiateTradeResponse EMsg = 1503
	EMsgEconTradingInitiateTradeResult   EMsg = 1504
	EMsgEconTradingStartSession          EMsg = 1505
	EMsgEconTradingCancelTradeRequest    EMsg = 1506
)

var emsgNames = map[EMsg]string{
	EMsgInvalid:                          "Invalid",
	EMsgMulti:                            "Multi",
	EMsgClientHeartBeat:                  "ClientHeartBeat",
	EMsgClientLogOnResponse:              "ClientLogOnResponse",
	EMsgClientLogon:                      "ClientLogon",
	EMsgEconTradingInitiateTradeRequest:  "EconTrading_InitiateTradeRequest",
	EMsgEconTradingInitiateTradeProposed: "EconTrading_InitiateTradeProposed",
	EMsgEconTradingInitiateTradeResponse: "EconTrading_InitiateTradeResponse",
	EMsgEconTradingInitiateTradeResult:   "EconTrading_InitiateTradeResult",
	EMsgEconTradingStartSession:          "EconTrading_StartSession",
	EMsgEconTradingCancelTradeRequest:    "EconTrading_CancelTradeRequest",
}

func (e EMsg) String() string {
	if name, ok := emsgNames[e]; ok {
		return name
	}
	return fmt.Sprintf("EMsg(%d)", uint32(e))
}

// MakeMsg returns the on-wire type word for e, setting the protobuf flag when
// isProto is true.
func MakeMsg(e EMsg, isProto bool) uint32 {
	raw := uint32(e) &^ protoMask
	if isProto {
		raw |= protoMask
	}
	return raw
}

// MsgOf strips the protobuf flag from an on-wire type word.
func MsgOf(raw uint32) EMsg {
	return EMsg(raw &^ protoMask)
}

// IsProto reports whether an on-wire type word carries the protobuf flag.
func IsProto(raw uint32) bool {
	return raw&protoMask != 0
}
