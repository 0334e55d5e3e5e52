// Copyright 2025, the stopclock contributors
// SPDX-License-Identifier: AGPL-3.0-only

package timing

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"codeberg.org/stopclock/stopclock/server/request_context"
)

// HeaderName is the response header timing entries are appended to.
const HeaderName = "Server-Timing"

var (
	// ErrNoActiveResponse is returned when an entry is submitted while no
	// response is bound to the calling context.
	ErrNoActiveResponse = errors.New("timing: no active response to attach timing to")

	// ErrUnsupportedResponse is returned when the bound response supports
	// neither the ResponseHandle capability nor http.Header access.
	ErrUnsupportedResponse = errors.New("timing: bound response does not support appending headers")
)

// ResponseHandle is the capability the emitter needs from a response:
// appending one occurrence of a header without overwriting earlier ones.
// Anything exposing an http.Header (every http.ResponseWriter) is adapted
// automatically and does not need to implement this interface.
type ResponseHandle interface {
	AddHeader(name, value string)
}

// Entry is one server timing entry: a name with optional parameters.
//
// Entries are built fresh per measurement and must not be reused after
// submission.
//
// TODO: validate names against the header token grammar.
type Entry struct {
	name       string
	parameters map[string]string
}

// NewEntry creates a new server timing entry with the given name.
// It panics if name is empty.
func NewEntry(name string) *Entry {
	if name == "" {
		panic("timing: entry name must not be empty")
	}

	return &Entry{name: name}
}

// SetDuration sets the duration of this entry, stored as the "dur"
// parameter in decimal milliseconds. Returns the entry, for chaining.
func (e *Entry) SetDuration(d time.Duration) *Entry {
	millis := float64(d.Nanoseconds()) / 1e6

	return e.SetParameter("dur", strconv.FormatFloat(millis, 'f', -1, 64))
}

// SetParameter adds an arbitrary parameter value for this entry, replacing
// any earlier value for the same key. Returns the entry, for chaining.
// It panics if key is empty.
func (e *Entry) SetParameter(key, value string) *Entry {
	if key == "" {
		panic("timing: parameter key must not be empty")
	}

	if e.parameters == nil {
		e.parameters = make(map[string]string)
	}

	e.parameters[key] = value

	return e
}

// headerValue serializes the entry as "name[;key=value]*". Parameter order
// is unspecified.
func (e *Entry) headerValue() string {
	var value strings.Builder

	value.WriteString(e.name)

	for key, val := range e.parameters {
		value.WriteByte(';')
		value.WriteString(key)
		value.WriteByte('=')
		value.WriteString(val)
	}

	return value.String()
}

// Submit appends this entry to the response bound to ctx. It does nothing
// when timing is disabled for ctx.
func (e *Entry) Submit(ctx context.Context) error {
	if !enabledCheck(ctx) {
		return nil
	}

	return e.ForceSubmit(ctx)
}

// ForceSubmit appends this entry to the response bound to ctx regardless of
// whether timing is enabled. Used on paths that already checked the enabled
// status earlier.
//
// Each submission appends one separate Server-Timing header instance.
// Submissions from concurrent goroutines of one request are serialized
// through the request context, as http.Header is a plain map.
func (e *Entry) ForceSubmit(ctx context.Context) error {
	rc := request_context.FromContext(ctx)

	response, err := resolveResponse(rc.Response)
	if err != nil {
		return err
	}

	rc.WithResponseLock(func() {
		response.AddHeader(HeaderName, e.headerValue())
	})

	return nil
}

// Set submits an entry with a name but no duration. No entry is sent when
// timing is disabled for ctx.
func Set(ctx context.Context, name string) error {
	if !enabledCheck(ctx) {
		return nil
	}

	return NewEntry(name).ForceSubmit(ctx)
}

// SetDuration submits an entry with the given name and a pre-measured
// duration. No entry is sent when timing is disabled for ctx.
func SetDuration(ctx context.Context, name string, d time.Duration) error {
	if !enabledCheck(ctx) {
		return nil
	}

	return NewEntry(name).SetDuration(d).ForceSubmit(ctx)
}

// resolveResponse adapts the bound response to the ResponseHandle
// capability.
func resolveResponse(response any) (ResponseHandle, error) {
	if response == nil {
		return nil, ErrNoActiveResponse
	}

	switch typed := response.(type) {
	case ResponseHandle:
		return typed, nil
	case interface{ Header() http.Header }:
		return headerAdder{header: typed.Header()}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedResponse, response)
	}
}

// headerAdder adapts an http.Header to the ResponseHandle capability.
type headerAdder struct {
	header http.Header
}

func (a headerAdder) AddHeader(name, value string) {
	a.header.Add(name, value)
}
