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

// Package steamwire encodes and decodes Steam CM protobuf messages.
//
// A message is an Envelope: a schema-typed protobuf body, a Header carrying
// the message type and the job ids that correlate requests with replies, and
// an opaque trailing Payload. Outbound envelopes serialize as
//
//	[body][header][payload]
//
// while Deserialize reads the header from the front of inbound bytes and
// keeps the rest as payload for a schema-specific decode step. Decoded bodies
// are projected into typed events by package callback and routed by message
// type by package registry.
//
// The codec is synchronous and does no I/O of its own. Framing on the
// connection, encryption, retries and job timeouts belong to the client
// built on top of it.
package steamwire
