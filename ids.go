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

import (
	"math"
	"strconv"
	"sync/atomic"
)

// A SteamID is an opaque 64-bit peer identifier. Its internal bit layout is
// not interpreted here.
type SteamID uint64

// IsSet reports whether the identifier is non-zero.
func (s SteamID) IsSet() bool {
	return s != 0
}

func (s SteamID) String() string {
	return strconv.FormatUint(uint64(s), 10)
}

// A JobID links a reply to the request that caused it. Zero means absent.
type JobID uint64

// InvalidJobID is the all-ones value peers write for "no job".
const InvalidJobID JobID = math.MaxUint64

// IsValid reports whether j names a job: it is neither absent nor the
// all-ones sentinel.
func (j JobID) IsValid() bool {
	return j != 0 && j != InvalidJobID
}

func (j JobID) String() string {
	if !j.IsValid() {
		return "none"
	}
	return strconv.FormatUint(uint64(j), 10)
}

// A JobSequence hands out job ids for outbound requests. The zero value is
// ready to use and safe for concurrent use; it never yields an invalid id.
type JobSequence struct {
	last atomic.Uint64
}

// Next returns the next job id.
func (s *JobSequence) Next() JobID {
	for {
		id := JobID(s.last.Add(1))
		if id.IsValid() {
			return id
		}
	}
}
