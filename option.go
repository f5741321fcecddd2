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

// An Option configures an Envelope.
type Option interface {
	applyToEnvelope(*envelopeConfig)
}

type envelopeConfig struct {
	PayloadReserve int
	Codec          Codec
}

func newEnvelopeConfig(options []Option) *envelopeConfig {
	config := envelopeConfig{
		PayloadReserve: DefaultPayloadReserve,
		Codec:          &protoBinaryCodec{},
	}
	for _, opt := range options {
		if opt != nil {
			opt.applyToEnvelope(&config)
		}
	}
	return &config
}

// WithPayloadReserve sets the initial capacity of the envelope's payload. It's
// an allocation hint only: payloads grow past it as needed. By default,
// envelopes reserve 64 bytes.
func WithPayloadReserve(n int) Option {
	return &payloadReserveOption{n}
}

type payloadReserveOption struct {
	Reserve int
}

func (o *payloadReserveOption) applyToEnvelope(config *envelopeConfig) {
	config.PayloadReserve = o.Reserve
}

// WithCodec sets the codec used to marshal and unmarshal the envelope's body.
// By default, envelopes use binary protobuf. A nil codec is ignored.
func WithCodec(codec Codec) Option {
	return &codecOption{codec}
}

type codecOption struct {
	Codec Codec
}

func (o *codecOption) applyToEnvelope(config *envelopeConfig) {
	if o.Codec != nil {
		config.Codec = o.Codec
	}
}

// WithOptions composes multiple Options into one.
func WithOptions(options ...Option) Option {
	return &optionsOption{options}
}

type optionsOption struct {
	options []Option
}

func (o *optionsOption) applyToEnvelope(config *envelopeConfig) {
	for _, option := range o.options {
		if option != nil {
			option.applyToEnvelope(config)
		}
	}
}
