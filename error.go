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
	"errors"
	"fmt"
)

// An Error pairs a Code with an underlying Go error. Every failure returned by
// the envelope and header codecs can be cast to an *Error (using the standard
// library's errors.As), and CodeOf extracts the code without a type assertion.
//
// Codec errors are local and synchronous: nothing in this package retries,
// and an envelope that produced an error must not be salvaged.
type Error struct {
	code Code
	err  error
}

// NewError annotates any Go error with a code.
func NewError(c Code, underlying error) *Error {
	return &Error{code: c, err: underlying}
}

func (e *Error) Error() string {
	if e.err == nil {
		return e.code.String()
	}
	text := e.err.Error()
	if text == "" {
		return e.code.String()
	}
	return e.code.String() + ": " + text
}

// Unwrap allows errors.Is and errors.As access to the underlying error.
func (e *Error) Unwrap() error {
	return e.err
}

// Code returns the error's code.
func (e *Error) Code() Code {
	return e.code
}

// CodeOf returns the error's code if it is or wraps a *steamwire.Error and
// CodeUnknown otherwise.
func CodeOf(err error) Code {
	if wireErr, ok := asError(err); ok {
		return wireErr.Code()
	}
	return CodeUnknown
}

// errorf calls fmt.Errorf with the supplied template and arguments, then wraps
// the resulting error.
func errorf(c Code, template string, args ...any) *Error {
	return NewError(c, fmt.Errorf(template, args...))
}

// asError uses errors.As to unwrap any error and look for a *Error.
func asError(err error) (*Error, bool) {
	var wireErr *Error
	ok := errors.As(err, &wireErr)
	return wireErr, ok
}

// wrapf prefixes err with a formatted description, keeping it in the chain.
func wrapf(err error, template string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(template, args...), err)
}
