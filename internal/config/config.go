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

// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Prefix is prepended to every environment variable name.
const Prefix = "STEAMWIRE_"

type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	Format string `env:"FORMAT" envDefault:"json" validate:"oneof=json console"`
}

type Config struct {
	Environment string `env:"APP_ENV" envDefault:"development"`

	// PayloadReserve is the initial payload capacity of built envelopes.
	PayloadReserve int `env:"PAYLOAD_RESERVE" envDefault:"64" validate:"gte=0,lte=1048576"`
	// Codec names the body codec: "protobuf" on the wire, "json" for
	// fixtures.
	Codec string `env:"CODEC" envDefault:"protobuf" validate:"oneof=protobuf json"`

	Log LogConfig `envPrefix:"LOG_"`
}

var validate = validator.New()

// Load reads the given dotenv files, if they exist, into the process
// environment and then parses Config from it. Variables already set in the
// environment win over dotenv values. With no files, ".env" is tried.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load dotenv: %w", err)
	}
	cfg, err := env.ParseAsWithOptions[Config](env.Options{Prefix: Prefix})
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
