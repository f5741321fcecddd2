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

// Package callback defines the notification events decoded from inbound
// messages and a Manager that delivers them to subscribers.
//
// Events are immutable records built by pure projections from decoded bodies.
// They carry no reference to the envelope or connection they came from.
package callback

import (
	"github.com/steamwire/steamwire"
	"github.com/steamwire/steamwire/steampb"
)

// An Event is a decoded server notification. The set of events is closed:
// only types in this package implement it.
type Event interface {
	event()
}

var (
	_ Event = TradeProposed{}
	_ Event = TradeResult{}
	_ Event = TradeSessionStarted{}
)

// TradeProposed is delivered when another user proposes a trade.
type TradeProposed struct {
	tradeID     uint32
	otherClient steamwire.SteamID
}

// NewTradeProposed projects an EconTrading_InitiateTradeProposed body.
func NewTradeProposed(body *steampb.InitiateTradeRequest) TradeProposed {
	return TradeProposed{
		tradeID:     body.TradeRequestID(),
		otherClient: steamwire.SteamID(body.OtherSteamID()),
	}
}

func (TradeProposed) event() {}

// TradeID identifies the proposal when responding to it.
func (e TradeProposed) TradeID() uint32 { return e.tradeID }

// OtherClient is the user proposing the trade.
func (e TradeProposed) OtherClient() steamwire.SteamID { return e.otherClient }

// A TradeResponse is the server's verdict on a trade proposal.
type TradeResponse uint32

const (
	TradeResponseAccepted               TradeResponse = 0
	TradeResponseDeclined               TradeResponse = 1
	TradeResponseTradeBannedInitiator   TradeResponse = 2
	TradeResponseTradeBannedTarget      TradeResponse = 3
	TradeResponseTargetAlreadyTrading   TradeResponse = 4
	TradeResponseDisabled               TradeResponse = 5
	TradeResponseNotLoggedIn            TradeResponse = 6
	TradeResponseCancel                 TradeResponse = 7
	TradeResponseTooSoon                TradeResponse = 8
	TradeResponseTooSoonPenalty         TradeResponse = 9
	TradeResponseConnectionFailed       TradeResponse = 10
	TradeResponseAlreadyTrading         TradeResponse = 11
	TradeResponseAlreadyHasTradeRequest TradeResponse = 12
	TradeResponseNoResponse             TradeResponse = 13

	TradeResponseInitiatorBlockedTarget          TradeResponse = 18
	TradeResponseInitiatorNeedsVerifiedEmail     TradeResponse = 20
	TradeResponseInitiatorNeedsSteamGuard        TradeResponse = 21
	TradeResponseTargetAccountCannotTrade        TradeResponse = 22
	TradeResponseInitiatorSteamGuardDuration     TradeResponse = 23
	TradeResponseInitiatorPasswordResetProbation TradeResponse = 24
	TradeResponseInitiatorNewDeviceCooldown      TradeResponse = 25
)

// Accepted reports whether the proposal went through.
func (r TradeResponse) Accepted() bool {
	return r == TradeResponseAccepted
}

// TradeResult is delivered with the outcome of a proposal this client sent.
type TradeResult struct {
	tradeID                           uint32
	response                          TradeResponse
	otherClient                       steamwire.SteamID
	steamGuardRequiredDays            uint32
	newDeviceCooldownDays             uint32
	defaultPasswordResetProbationDays uint32
	passwordResetProbationDays        uint32
	defaultEmailChangeProbationDays   uint32
	emailChangeProbationDays          uint32
}

// NewTradeResult projects an EconTrading_InitiateTradeResult body.
func NewTradeResult(body *steampb.InitiateTradeResponse) TradeResult {
	return TradeResult{
		tradeID:                           body.TradeRequestID(),
		response:                          TradeResponse(body.Response()),
		otherClient:                       steamwire.SteamID(body.OtherSteamID()),
		steamGuardRequiredDays:            body.SteamGuardRequiredDays(),
		newDeviceCooldownDays:             body.NewDeviceCooldownDays(),
		defaultPasswordResetProbationDays: body.DefaultPasswordResetProbationDays(),
		passwordResetProbationDays:        body.PasswordResetProbationDays(),
		defaultEmailChangeProbationDays:   body.DefaultEmailChangeProbationDays(),
		emailChangeProbationDays:          body.EmailChangeProbationDays(),
	}
}

func (TradeResult) event() {}

func (e TradeResult) TradeID() uint32                    { return e.tradeID }
func (e TradeResult) Response() TradeResponse            { return e.response }
func (e TradeResult) OtherClient() steamwire.SteamID     { return e.otherClient }
func (e TradeResult) SteamGuardRequiredDays() uint32     { return e.steamGuardRequiredDays }
func (e TradeResult) NewDeviceCooldownDays() uint32      { return e.newDeviceCooldownDays }
func (e TradeResult) PasswordResetProbationDays() uint32 { return e.passwordResetProbationDays }
func (e TradeResult) EmailChangeProbationDays() uint32   { return e.emailChangeProbationDays }
func (e TradeResult) DefaultPasswordResetProbationDays() uint32 {
	return e.defaultPasswordResetProbationDays
}
func (e TradeResult) DefaultEmailChangeProbationDays() uint32 {
	return e.defaultEmailChangeProbationDays
}

// TradeSessionStarted is delivered when a trade session with another user
// opens.
type TradeSessionStarted struct {
	otherClient steamwire.SteamID
}

// NewTradeSessionStarted projects an EconTrading_StartSession body.
func NewTradeSessionStarted(body *steampb.StartSession) TradeSessionStarted {
	return TradeSessionStarted{otherClient: steamwire.SteamID(body.OtherSteamID())}
}

func (TradeSessionStarted) event() {}

// OtherClient is the user on the other side of the session.
func (e TradeSessionStarted) OtherClient() steamwire.SteamID { return e.otherClient }
