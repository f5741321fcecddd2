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

// Package trading sends economy trade requests and registers the inbound
// trading notifications.
package trading

import (
	"context"
	"errors"
	"fmt"

	"github.com/steamwire/steamwire"
	"github.com/steamwire/steamwire/callback"
	"github.com/steamwire/steamwire/registry"
	"github.com/steamwire/steamwire/steampb"
)

// A Sender writes one serialized message to the connection. Framing,
// encryption and retries are its business.
type Sender interface {
	Send(ctx context.Context, data []byte) error
}

// Handler builds trading messages and hands them to a Sender.
type Handler struct {
	sender  Sender
	options []steamwire.Option
}

// NewHandler returns a Handler sending through sender. The options apply to
// every envelope the handler builds.
func NewHandler(sender Sender, options ...steamwire.Option) *Handler {
	return &Handler{sender: sender, options: options}
}

// Trade proposes a trade to another user. The outcome arrives as a
// callback.TradeResult.
func (h *Handler) Trade(ctx context.Context, user steamwire.SteamID) error {
	env := steamwire.NewEnvelope(steamwire.EMsgEconTradingInitiateTradeRequest, steampb.NewInitiateTradeRequest, h.options...)
	env.Body().SetOtherSteamID(uint64(user))
	return h.send(ctx, env)
}

// RespondToTrade accepts or declines a proposal received as a
// callback.TradeProposed.
func (h *Handler) RespondToTrade(ctx context.Context, tradeID uint32, accept bool) error {
	env := steamwire.NewEnvelope(steamwire.EMsgEconTradingInitiateTradeResponse, steampb.NewInitiateTradeResponse, h.options...)
	response := callback.TradeResponseDeclined
	if accept {
		response = callback.TradeResponseAccepted
	}
	env.Body().SetTradeRequestID(tradeID)
	env.Body().SetResponse(uint32(response))
	return h.send(ctx, env)
}

// CancelTrade withdraws a proposal sent to user.
func (h *Handler) CancelTrade(ctx context.Context, user steamwire.SteamID) error {
	env := steamwire.NewEnvelope(steamwire.EMsgEconTradingCancelTradeRequest, steampb.NewCancelTradeRequest, h.options...)
	env.Body().SetOtherSteamID(uint64(user))
	return h.send(ctx, env)
}

type serializer interface {
	MsgType() steamwire.EMsg
	Serialize() ([]byte, error)
}

func (h *Handler) send(ctx context.Context, env serializer) error {
	data, err := env.Serialize()
	if err != nil {
		return err
	}
	if err := h.sender.Send(ctx, data); err != nil {
		return fmt.Errorf("send %v: %w", env.MsgType(), err)
	}
	return nil
}

// Register adds the inbound trading notifications to r.
func Register(r *registry.Registry) error {
	return errors.Join(
		registry.Register(r, steamwire.EMsgEconTradingInitiateTradeProposed, steampb.NewInitiateTradeRequest, callback.NewTradeProposed),
		registry.Register(r, steamwire.EMsgEconTradingInitiateTradeResult, steampb.NewInitiateTradeResponse, callback.NewTradeResult),
		registry.Register(r, steamwire.EMsgEconTradingStartSession, steampb.NewStartSession, callback.NewTradeSessionStarted),
	)
}
