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
	"context"
	"reflect"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// A Manager queues posted events and delivers them, in posting order, to the
// subscribers registered for each event's concrete type. Delivery happens on
// the goroutine calling RunCallbacks or RunWaitCallbacks. A panicking
// subscriber is logged and doesn't stop delivery to the others.
//
// Subscribing with an interface type, such as Event itself, receives every
// event implementing it, after the subscribers for the concrete type.
//
// A Manager is safe for concurrent use.
type Manager struct {
	logger *zap.Logger
	notify chan struct{}

	mu        sync.Mutex
	queue     []Event
	subs      map[reflect.Type][]*Subscription
	wildcards []*Subscription
}

// A ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the logger used to report subscriber panics. By default,
// nothing is logged.
func WithLogger(logger *zap.Logger) ManagerOption {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager returns an empty Manager.
func NewManager(options ...ManagerOption) *Manager {
	m := &Manager{
		logger: zap.NewNop(),
		notify: make(chan struct{}, 1),
		subs:   make(map[reflect.Type][]*Subscription),
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

// A Subscription is one registered handler. Close it to stop receiving
// events.
type Subscription struct {
	id      uuid.UUID
	typ     reflect.Type
	handle  func(Event)
	manager *Manager
}

// ID uniquely identifies the subscription.
func (s *Subscription) ID() uuid.UUID {
	return s.id
}

// Close unregisters the subscription. Closing twice is a no-op.
func (s *Subscription) Close() {
	m := s.manager
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.typ.Kind() == reflect.Interface {
		m.wildcards = without(m.wildcards, s)
		return
	}
	m.subs[s.typ] = without(m.subs[s.typ], s)
	if len(m.subs[s.typ]) == 0 {
		delete(m.subs, s.typ)
	}
}

func without(subs []*Subscription, s *Subscription) []*Subscription {
	for i, sub := range subs {
		if sub == s {
			return append(subs[:i:i], subs[i+1:]...)
		}
	}
	return subs
}

// Subscribe registers fn for every event of type E. When E is an interface,
// fn receives every event implementing it.
func Subscribe[E Event](m *Manager, fn func(E)) *Subscription {
	sub := &Subscription{
		id:      uuid.New(),
		typ:     reflect.TypeOf((*E)(nil)).Elem(),
		handle:  func(ev Event) { fn(ev.(E)) }, //nolint:forcetypeassert
		manager: m,
	}
	m.mu.Lock()
	if sub.typ.Kind() == reflect.Interface {
		m.wildcards = append(m.wildcards, sub)
	} else {
		m.subs[sub.typ] = append(m.subs[sub.typ], sub)
	}
	m.mu.Unlock()
	return sub
}

// Post queues an event for delivery.
func (m *Manager) Post(ev Event) {
	if ev == nil {
		return
	}
	m.mu.Lock()
	m.queue = append(m.queue, ev)
	m.mu.Unlock()
	select {
	case m.notify <- struct{}{}:
	default:
	}
}

// RunCallbacks delivers every queued event and returns how many it
// delivered. It doesn't wait for new events.
func (m *Manager) RunCallbacks() int {
	m.mu.Lock()
	queue := m.queue
	m.queue = nil
	m.mu.Unlock()
	for _, ev := range queue {
		m.deliver(ev)
	}
	return len(queue)
}

// RunWaitCallbacks waits until at least one event is queued, then delivers
// everything queued. It returns the context's error if ctx ends first.
func (m *Manager) RunWaitCallbacks(ctx context.Context) error {
	for {
		if m.RunCallbacks() > 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-m.notify:
		}
	}
}

func (m *Manager) deliver(ev Event) {
	typ := reflect.TypeOf(ev)
	m.mu.Lock()
	subs := append([]*Subscription(nil), m.subs[typ]...)
	for _, sub := range m.wildcards {
		if typ.Implements(sub.typ) {
			subs = append(subs, sub)
		}
	}
	m.mu.Unlock()
	for _, sub := range subs {
		m.call(sub, ev)
	}
}

func (m *Manager) call(sub *Subscription, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("callback subscriber panicked",
				zap.Stringer("subscription", sub.id),
				zap.String("event", sub.typ.String()),
				zap.Any("panic", r),
			)
		}
	}()
	sub.handle(ev)
}
