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
	"fmt"
	"strconv"
)

var strToCode = map[string]Code{
	"UNKNOWN":                CodeUnknown,
	"MALFORMED_HEADER":       CodeMalformedHeader,
	"TRUNCATED_HEADER":       CodeTruncatedHeader,
	"MISSING_CORRELATION_ID": CodeMissingCorrelationID,
	"MALFORMED_BODY":         CodeMalformedBody,
}

// A Code classifies a codec failure. There are no user-defined codes, so only
// the codes enumerated below are valid.
type Code uint32

const (
	CodeUnknown              Code = 1 // unclassified failure
	CodeMalformedHeader      Code = 2 // header missing required fields or unparsable
	CodeTruncatedHeader      Code = 3 // fewer bytes than the header encoding needs
	CodeMissingCorrelationID Code = 4 // reply built from an envelope without a job source
	CodeMalformedBody        Code = 5 // body codec failed to marshal or unmarshal

	minCode Code = CodeUnknown
	maxCode Code = CodeMalformedBody
)

// MarshalText implements encoding.TextMarshaler. Codes are marshaled in their
// numeric representations.
func (c Code) MarshalText() ([]byte, error) {
	if c < minCode || c > maxCode {
		return nil, fmt.Errorf("invalid code %v", c)
	}
	return []byte(strconv.Itoa(int(c))), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts both numeric
// representations (as produced by MarshalText) and the all-caps names, such
// as "TRUNCATED_HEADER".
func (c *Code) UnmarshalText(b []byte) error {
	if n, ok := strToCode[string(b)]; ok {
		*c = n
		return nil
	}
	n, err := strconv.ParseUint(string(b), 10 /* base */, 32 /* bitsize */)
	if err != nil {
		return fmt.Errorf("invalid code %q", string(b))
	}
	code := Code(n)
	if code < minCode || code > maxCode {
		return fmt.Errorf("invalid code %v", n)
	}
	*c = code
	return nil
}

func (c Code) String() string {
	switch c {
	case CodeUnknown:
		return "Unknown"
	case CodeMalformedHeader:
		return "MalformedHeader"
	case CodeTruncatedHeader:
		return "TruncatedHeader"
	case CodeMissingCorrelationID:
		return "MissingCorrelationID"
	case CodeMalformedBody:
		return "MalformedBody"
	}
	return fmt.Sprintf("Code(%d)", c)
}
