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

package callback

import (
	"testing"

	"github.com/steamwire/steamwire"
	"github.com/steamwire/steamwire/internal/assert"
	"github.com/steamwire/steamwire/steampb"
)

func TestNewTradeProposed(t *testing.T) {
	t.Parallel()
	body := steampb.NewInitiateTradeRequest()
	body.SetTradeRequestID(1234)
	body.SetOtherSteamID(76561197960287930)
	body.SetOtherName("ignored by the event")

	ev := NewTradeProposed(body)
	assert.Equal(t, ev.TradeID(), uint32(1234))
	assert.Equal(t, ev.OtherClient(), steamwire.SteamID(76561197960287930))

	// The event is a copy: later body changes don't leak into it.
	body.SetTradeRequestID(1)
	assert.Equal(t, ev.TradeID(), uint32(1234))
}

func TestNewTradeResult(t *testing.T) {
	t.Parallel()
	body := steampb.NewInitiateTradeResponse()
	body.SetResponse(uint32(TradeResponseInitiatorNeedsSteamGuard))
	body.SetTradeRequestID(9)
	body.SetOtherSteamID(3)
	body.SetSteamGuardRequiredDays(15)
	body.SetNewDeviceCooldownDays(7)
	body.SetDefaultPasswordResetProbationDays(5)
	body.SetPasswordResetProbationDays(2)
	body.SetDefaultEmailChangeProbationDays(30)
	body.SetEmailChangeProbationDays(4)

	ev := NewTradeResult(body)
	assert.Equal(t, ev.Response(), TradeResponseInitiatorNeedsSteamGuard)
	assert.False(t, ev.Response().Accepted())
	assert.Equal(t, ev.TradeID(), uint32(9))
	assert.Equal(t, ev.OtherClient(), steamwire.SteamID(3))
	assert.Equal(t, ev.SteamGuardRequiredDays(), uint32(15))
	assert.Equal(t, ev.NewDeviceCooldownDays(), uint32(7))
	assert.Equal(t, ev.DefaultPasswordResetProbationDays(), uint32(5))
	assert.Equal(t, ev.PasswordResetProbationDays(), uint32(2))
	assert.Equal(t, ev.DefaultEmailChangeProbationDays(), uint32(30))
	assert.Equal(t, ev.EmailChangeProbationDays(), uint32(4))
}

func TestNewTradeSessionStarted(t *testing.T) {
	t.Parallel()
	body := steampb.NewStartSession()
	body.SetOtherSteamID(88)
	assert.Equal(t, NewTradeSessionStarted(body).OtherClient(), steamwire.SteamID(88))
}

func TestEmptyBodiesProjectToZeroEvents(t *testing.T) {
	t.Parallel()
	assert.Zero(t, NewTradeProposed(steampb.NewInitiateTradeRequest()))
	assert.Zero(t, NewTradeResult(steampb.NewInitiateTradeResponse()))
	assert.Zero(t, NewTradeSessionStarted(steampb.NewStartSession()))
	assert.True(t, NewTradeResult(steampb.NewInitiateTradeResponse()).Response().Accepted())
}
