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

// steamwire-inspect decodes a single inbound Steam CM message and prints its
// header and the event it projects to, or encodes an outbound trade proposal.
//
// Decode a raw packet from a file, or hex from stdin:
//
//	steamwire-inspect -in packet.bin
//	echo 'de05008012000000...' | steamwire-inspect -hex
//
// Encode a trade proposal to a user, printed as hex:
//
//	steamwire-inspect -trade 76561197960287930
//
// Settings come from STEAMWIRE_* environment variables or a .env file.
package main

import (
	"bytes"
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/steamwire/steamwire"
	"github.com/steamwire/steamwire/internal/config"
	"github.com/steamwire/steamwire/internal/logging"
	"github.com/steamwire/steamwire/registry"
	"github.com/steamwire/steamwire/trading"
	"go.uber.org/zap"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "steamwire-inspect:", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	flagSet := flag.NewFlagSet("steamwire-inspect", flag.ContinueOnError)
	in := flagSet.String("in", "", "read the message from `file` instead of stdin")
	isHex := flagSet.Bool("hex", false, "input is hex encoded")
	trade := flagSet.String("trade", "", "encode a trade proposal to `steamid` instead of decoding")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	codec, err := steamwire.CodecFor(cfg.Codec)
	if err != nil {
		return err
	}
	options := []steamwire.Option{
		steamwire.WithCodec(codec),
		steamwire.WithPayloadReserve(cfg.PayloadReserve),
	}
	if *trade != "" {
		user, err := strconv.ParseUint(*trade, 10, 64)
		if err != nil {
			return fmt.Errorf("parse steamid %q: %w", *trade, err)
		}
		return encodeTrade(steamwire.SteamID(user), options, stdout)
	}

	src := stdin
	if *in != "" {
		file, err := os.Open(*in)
		if err != nil {
			return err
		}
		defer file.Close()
		src = file
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if *isHex {
		data, err = hex.DecodeString(string(bytes.TrimSpace(data)))
		if err != nil {
			return fmt.Errorf("decode hex: %w", err)
		}
	}
	logger.Debug("decoding message", zap.Int("bytes", len(data)))
	return inspect(data, options, logger, stdout)
}

func inspect(data []byte, options []steamwire.Option, logger *zap.Logger, stdout io.Writer) error {
	var header steamwire.Header
	if err := header.Deserialize(bytes.NewReader(data)); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "emsg:        %v (%d)\n", header.MsgType(), uint32(header.MsgType()))
	fmt.Fprintf(stdout, "steamid:     %v\n", header.Proto.SteamID)
	fmt.Fprintf(stdout, "session:     %d\n", header.Proto.ClientSessionID)
	fmt.Fprintf(stdout, "job source:  %v\n", header.Proto.JobIDSource)
	fmt.Fprintf(stdout, "job target:  %v\n", header.Proto.JobIDTarget)
	if header.Proto.TargetJobName != "" {
		fmt.Fprintf(stdout, "job name:    %s\n", header.Proto.TargetJobName)
	}

	reg := registry.New(registry.WithLogger(logger), registry.WithEnvelopeOptions(options...))
	if err := trading.Register(reg); err != nil {
		return err
	}
	if !reg.Registered(header.MsgType()) {
		logger.Info("no event for message type", zap.Stringer("emsg", header.MsgType()))
		return nil
	}
	ev, err := reg.Decode(data)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "event:       %T %+v\n", ev, ev)
	return nil
}

type hexSender struct {
	out io.Writer
}

func (s hexSender) Send(_ context.Context, data []byte) error {
	_, err := fmt.Fprintln(s.out, hex.EncodeToString(data))
	return err
}

func encodeTrade(user steamwire.SteamID, options []steamwire.Option, stdout io.Writer) error {
	handler := trading.NewHandler(hexSender{out: stdout}, options...)
	return handler.Trade(context.Background(), user)
}
