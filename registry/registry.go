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

// Package registry maps message types to their body schemas and to the
// projections that turn decoded bodies into callback events.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/steamwire/steamwire"
	"github.com/steamwire/steamwire/callback"
	"go.uber.org/zap"
	"google.golang.org/protobuf/proto"
)

var (
	// ErrUnregistered is returned when no schema is registered for a
	// message type.
	ErrUnregistered = errors.New("message type not registered")
	// ErrDuplicate is returned when a message type is registered twice.
	ErrDuplicate = errors.New("message type already registered")
)

type decodeFunc func(data []byte) (callback.Event, error)

// A Registry is safe for concurrent use. Register everything before
// decoding traffic.
type Registry struct {
	logger  *zap.Logger
	options []steamwire.Option

	mu       sync.RWMutex
	decoders map[steamwire.EMsg]decodeFunc
}

// An Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for unhandled messages. By default,
// nothing is logged.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithEnvelopeOptions sets the options used to build inbound envelopes, such
// as the body codec.
func WithEnvelopeOptions(options ...steamwire.Option) Option {
	return func(r *Registry) {
		r.options = append(r.options, options...)
	}
}

// New returns an empty Registry.
func New(options ...Option) *Registry {
	r := &Registry{
		logger:   zap.NewNop(),
		decoders: make(map[steamwire.EMsg]decodeFunc),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Register binds msgType to a body factory and a projection from decoded
// body to event. The factory replaces any runtime lookup of the schema, so a
// missing schema is a compile error rather than a decode-time one.
func Register[B proto.Message, E callback.Event](r *Registry, msgType steamwire.EMsg, newBody func() B, project func(B) E) error {
	if newBody == nil || project == nil {
		return fmt.Errorf("register %v: nil body factory or projection", msgType)
	}
	options := r.options
	decode := func(data []byte) (callback.Event, error) {
		env, err := steamwire.Deserialize(data, newBody, options...)
		if err != nil {
			return nil, err
		}
		if err := env.UnmarshalBody(); err != nil {
			return nil, err
		}
		return project(env.Body()), nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.decoders[msgType]; ok {
		return fmt.Errorf("register %v: %w", msgType, ErrDuplicate)
	}
	r.decoders[msgType] = decode
	return nil
}

// Registered reports whether msgType has a schema.
func (r *Registry) Registered(msgType steamwire.EMsg) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.decoders[msgType]
	return ok
}

// MsgTypes returns the registered message types in ascending order.
func (r *Registry) MsgTypes() []steamwire.EMsg {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]steamwire.EMsg, 0, len(r.decoders))
	for msgType := range r.decoders {
		types = append(types, msgType)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Decode turns an inbound message, header first, into its event. Messages
// whose type isn't registered fail with ErrUnregistered; codec failures keep
// their steamwire codes.
func (r *Registry) Decode(data []byte) (callback.Event, error) {
	msgType, err := steamwire.PeekMsgType(data)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	decode, ok := r.decoders[msgType]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("decode %v: %w", msgType, ErrUnregistered)
	}
	return decode(data)
}

// Dispatch decodes data and posts the event to manager. Unregistered message
// types are logged at debug level and dropped without error.
func (r *Registry) Dispatch(data []byte, manager *callback.Manager) error {
	ev, err := r.Decode(data)
	if errors.Is(err, ErrUnregistered) {
		msgType, _ := steamwire.PeekMsgType(data)
		r.logger.Debug("dropping unhandled message", zap.Stringer("emsg", msgType))
		return nil
	}
	if err != nil {
		return err
	}
	manager.Post(ev)
	return nil
}
