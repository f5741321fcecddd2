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

package assert

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/protobuf/types/known/wrapperspb"
)

type pair struct {
	First, second int
}

func TestAssertions(t *testing.T) {
	t.Parallel()
	t.Run("equal", func(t *testing.T) {
		t.Parallel()
		Equal(t, 1, 1, Sprintf("%d and %d aren't equal", 1, 1))
		NotEqual(t, 1, 2)
		Equal(t, pair{1, 2}, pair{1, 2})
		NotEqual(t, pair{1, 2}, pair{1, 3})
	})
	t.Run("protobuf", func(t *testing.T) {
		t.Parallel()
		Equal(t, wrapperspb.String("job"), wrapperspb.String("job"))
		NotEqual(t, wrapperspb.String("job"), wrapperspb.String("other"))
	})
	t.Run("wire_bytes", func(t *testing.T) {
		t.Parallel()
		WireBytes(t, []byte{0xdd, 0x05, 0x00, 0x80}, []byte{0xdd, 0x05, 0x00, 0x80})
		WireBytes(t, nil, []byte{})
	})
	t.Run("nil", func(t *testing.T) {
		t.Parallel()
		Nil(t, nil)
		Nil(t, (*pair)(nil))
		Nil(t, []int(nil))
		Nil(t, (func())(nil))
		NotNil(t, &pair{})
		NotNil(t, make([]int, 0))
		NotNil(t, 0)
	})
	t.Run("zero", func(t *testing.T) {
		t.Parallel()
		Zero(t, pair{})
		Zero(t, []int(nil))
		NotZero(t, pair{second: 1})
	})
	t.Run("errors", func(t *testing.T) {
		t.Parallel()
		base := errors.New("short read")
		ErrorIs(t, fmt.Errorf("read header: %w", base), base)
	})
	t.Run("booleans", func(t *testing.T) {
		t.Parallel()
		True(t, true)
		False(t, false)
	})
	t.Run("regexp", func(t *testing.T) {
		t.Parallel()
		Match(t, "TruncatedHeader: read header prefix", `^Truncated`)
	})
}

func TestFailureReport(t *testing.T) {
	t.Parallel()
	rec := &recorder{TB: t}
	func() {
		defer func() { _ = recover() }()
		WireBytes(rec, []byte{1}, []byte{2}, Sprintf("first"), Sprintf("header"))
	}()
	Match(t, rec.report, `^header\nassertion:\tassert.WireBytes\n`)
	Match(t, rec.report, `got 1 bytes:\n00000000  01`)
}

// recorder captures a failure report instead of failing the test.
type recorder struct {
	testing.TB
	report string
}

func (r *recorder) Helper() {}

func (r *recorder) Fatal(args ...any) {
	r.report = fmt.Sprint(args...)
	panic("fatal")
}
