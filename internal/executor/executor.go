// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package executor runs one unreliable provider call under a hard wall-clock
// deadline and classifies what happened. Every remote call in the session
// goes through Run; no raw provider error escapes it. A call still running
// at the deadline is abandoned, not joined: the goroutine leaks until its
// context-bound HTTP request gives up, which is an accepted cost in a
// short-lived interactive process — blocking the operator is worse.
package executor

import (
	"context"
	"errors"
	"net"
	"net/url"
	"time"

	"github.com/shakeelsaga/sourcefolio/internal/providers"
)

// Tag names the classified result of one bounded call.
type Tag int

const (
	// Success: the call completed with usable content.
	Success Tag = iota

	// Empty: the call completed but produced nothing usable (missing page,
	// empty extract, zero-length result set).
	Empty

	// Timeout: the deadline elapsed before the call returned.
	Timeout

	// Ambiguous: the encyclopedia term matches several pages; Candidates
	// holds the alternatives.
	Ambiguous

	// HardError: a provider or transport fault.
	HardError
)

func (t Tag) String() string {
	switch t {
	case Success:
		return "success"
	case Empty:
		return "empty"
	case Timeout:
		return "timeout"
	case Ambiguous:
		return "ambiguous"
	default:
		return "error"
	}
}

// candidateCap bounds how many disambiguation candidates are kept for display.
const candidateCap = 8

// IndicatorState is the terminal glyph of the progress indicator. It is
// derived from the Outcome tag here so no presentation code re-classifies.
type IndicatorState int

const (
	IndicatorOK IndicatorState = iota
	IndicatorFailed
	IndicatorTimedOut
)

// Indicator is the progress feedback surface driven while a call runs.
type Indicator interface {
	Start(description string)
	Stop(state IndicatorState)
}

// Outcome is the classified result of one bounded call.
type Outcome[T any] struct {
	Tag        Tag
	Value      T
	Candidates []string
	Err        error

	// Connectivity marks a HardError whose signature is network loss
	// (DNS, dial, or connection reset) rather than a provider fault.
	Connectivity bool
}

// Run executes op with the given wall-clock deadline, driving ind for the
// duration. isEmpty decides whether a completed call produced usable
// content; it sees the value only when op returned no error.
func Run[T any](ctx context.Context, deadline time.Duration, ind Indicator, description string, isEmpty func(T) bool, op func(context.Context) (T, error)) Outcome[T] {
	type result struct {
		value T
		err   error
	}

	opCtx, cancel := context.WithTimeout(ctx, deadline)

	// Buffered so the abandoned goroutine can always deliver and exit.
	ch := make(chan result, 1)
	go func() {
		v, err := op(opCtx)
		ch <- result{value: v, err: err}
	}()

	ind.Start(description)

	timer := time.NewTimer(deadline)
	defer timer.Stop()

	select {
	case res := <-ch:
		cancel()
		out := classify(res.value, res.err, isEmpty)
		ind.Stop(indicatorFor(out.Tag))
		return out
	case <-timer.C:
		// Cancel so the in-flight request aborts eventually, then move on
		// without waiting for the goroutine.
		cancel()
		ind.Stop(IndicatorTimedOut)
		return Outcome[T]{Tag: Timeout}
	}
}

func classify[T any](value T, err error, isEmpty func(T) bool) Outcome[T] {
	if err == nil {
		if isEmpty(value) {
			return Outcome[T]{Tag: Empty, Value: value}
		}
		return Outcome[T]{Tag: Success, Value: value}
	}

	var amb *providers.AmbiguousError
	switch {
	case errors.As(err, &amb):
		candidates := amb.Candidates
		if len(candidates) > candidateCap {
			candidates = candidates[:candidateCap]
		}
		return Outcome[T]{Tag: Ambiguous, Candidates: candidates, Err: err}
	case errors.Is(err, providers.ErrNotFound):
		return Outcome[T]{Tag: Empty, Err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return Outcome[T]{Tag: Timeout, Err: err}
	default:
		return Outcome[T]{Tag: HardError, Err: err, Connectivity: isConnectivityError(err)}
	}
}

func indicatorFor(tag Tag) IndicatorState {
	switch tag {
	case Success:
		return IndicatorOK
	case Timeout:
		return IndicatorTimedOut
	default:
		return IndicatorFailed
	}
}

// isConnectivityError reports whether err looks like network loss rather
// than a provider-side fault.
func isConnectivityError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
