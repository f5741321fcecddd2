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

// Package assert holds the generic assertions shared by this module's tests.
//
// Values are compared with go-cmp. Protobuf messages compare by content
// through protocmp, and unexported struct fields take part in equality, so
// envelopes, headers and events can be compared whole. Every failed assertion
// stops the test.
package assert

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/protobuf/testing/protocmp"
)

var cmpOptions = []cmp.Option{
	protocmp.Transform(),
	cmp.Exporter(func(reflect.Type) bool { return true }),
}

// Equal asserts that got and want are equal. On failure it prints a diff.
func Equal[T any](t testing.TB, got, want T, options ...Option) bool {
	t.Helper()
	diff := cmp.Diff(want, got, cmpOptions...)
	if diff == "" {
		return true
	}
	fail(t, "assert.Equal", options, "diff (-want +got):\n%s", diff)
	return false
}

// NotEqual asserts that got and want differ.
func NotEqual[T any](t testing.TB, got, want T, options ...Option) bool {
	t.Helper()
	if !cmp.Equal(got, want, cmpOptions...) {
		return true
	}
	fail(t, "assert.NotEqual", options, "both:\t%+v\n", got)
	return false
}

// WireBytes asserts that two encodings are identical, printing hex dumps of
// both on failure.
func WireBytes(t testing.TB, got, want []byte, options ...Option) bool {
	t.Helper()
	if bytes.Equal(got, want) {
		return true
	}
	fail(t, "assert.WireBytes", options, "got %d bytes:\n%swant %d bytes:\n%s",
		len(got), hex.Dump(got), len(want), hex.Dump(want))
	return false
}

// Nil asserts that got is nil, including a nil pointer, slice, map, channel
// or func stored in an interface.
func Nil(t testing.TB, got any, options ...Option) bool {
	t.Helper()
	if isNil(got) {
		return true
	}
	fail(t, "assert.Nil", options, "got:\t%+v\n", got)
	return false
}

// NotNil is the inverse of Nil.
func NotNil(t testing.TB, got any, options ...Option) bool {
	t.Helper()
	if !isNil(got) {
		return true
	}
	fail(t, "assert.NotNil", options, "got:\t%#v\n", got)
	return false
}

// Zero asserts that got is its type's zero value.
func Zero[T any](t testing.TB, got T, options ...Option) bool {
	t.Helper()
	var zero T
	if cmp.Equal(got, zero, cmpOptions...) {
		return true
	}
	fail(t, "assert.Zero", options, "got:\t%+v (type %T)\n", got, got)
	return false
}

// NotZero is the inverse of Zero.
func NotZero[T any](t testing.TB, got T, options ...Option) bool {
	t.Helper()
	var zero T
	if !cmp.Equal(got, zero, cmpOptions...) {
		return true
	}
	fail(t, "assert.NotZero", options, "got zero %T\n", got)
	return false
}

// Match asserts that got matches the regular expression pattern.
func Match(t testing.TB, got, pattern string, options ...Option) bool {
	t.Helper()
	re, err := regexp.Compile(pattern)
	if err != nil {
		t.Fatalf("invalid regexp %q: %v", pattern, err)
	}
	if re.MatchString(got) {
		return true
	}
	fail(t, "assert.Match", options, "got:\t%q\npattern:\t%s\n", got, pattern)
	return false
}

// ErrorIs asserts that want is in got's error chain.
func ErrorIs(t testing.TB, got, want error, options ...Option) bool {
	t.Helper()
	if errors.Is(got, want) {
		return true
	}
	fail(t, "assert.ErrorIs", options, "got:\t%v\nwant in chain:\t%v\n", got, want)
	return false
}

// True asserts that got is true.
func True(t testing.TB, got bool, options ...Option) bool {
	t.Helper()
	if got {
		return true
	}
	fail(t, "assert.True", options, "got false\n")
	return false
}

// False asserts that got is false.
func False(t testing.TB, got bool, options ...Option) bool {
	t.Helper()
	if !got {
		return true
	}
	fail(t, "assert.False", options, "got true\n")
	return false
}

// An Option adds context to a failed assertion.
type Option interface {
	message() string
}

// Sprintf formats a message printed above the failure. When several are
// passed, the last one wins.
func Sprintf(template string, args ...any) Option {
	return note(fmt.Sprintf(template, args...))
}

type note string

func (n note) message() string { return string(n) }

func fail(t testing.TB, assertion string, options []Option, template string, args ...any) {
	t.Helper()
	var out strings.Builder
	if n := len(options); n > 0 {
		out.WriteString(options[n-1].message())
	}
	out.WriteString("\nassertion:\t" + assertion + "\n")
	fmt.Fprintf(&out, template, args...)
	t.Fatal(out.String())
}

func isNil(got any) bool {
	if got == nil {
		return true
	}
	val := reflect.ValueOf(got)
	switch val.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return val.IsNil()
	}
	return false
}
