package executor

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shakeelsaga/sourcefolio/internal/providers"
)

// recordingIndicator captures the lifecycle of one bounded call.
type recordingIndicator struct {
	started string
	states  []IndicatorState
}

func (r *recordingIndicator) Start(description string)  { r.started = description }
func (r *recordingIndicator) Stop(state IndicatorState) { r.states = append(r.states, state) }

func sliceEmpty(v []string) bool { return len(v) == 0 }

func TestRunSuccess(t *testing.T) {
	ind := &recordingIndicator{}
	out := Run(context.Background(), time.Second, ind, "fetching things", sliceEmpty,
		func(ctx context.Context) ([]string, error) {
			return []string{"a"}, nil
		})

	assert.Equal(t, Success, out.Tag)
	assert.Equal(t, []string{"a"}, out.Value)
	assert.Equal(t, "fetching things", ind.started)
	assert.Equal(t, []IndicatorState{IndicatorOK}, ind.states)
}

func TestRunEmptyResult(t *testing.T) {
	ind := &recordingIndicator{}
	out := Run(context.Background(), time.Second, ind, "d", sliceEmpty,
		func(ctx context.Context) ([]string, error) {
			return []string{}, nil
		})

	// An empty collection is Empty, never Success: the provider worked but
	// had nothing for the input.
	assert.Equal(t, Empty, out.Tag)
	assert.Equal(t, []IndicatorState{IndicatorFailed}, ind.states)
}

func TestRunNotFoundIsEmpty(t *testing.T) {
	ind := &recordingIndicator{}
	out := Run(context.Background(), time.Second, ind, "d", sliceEmpty,
		func(ctx context.Context) ([]string, error) {
			return nil, fmt.Errorf("wikipedia query: %w", providers.ErrNotFound)
		})

	assert.Equal(t, Empty, out.Tag)
}

func TestRunTimeoutAbandonsOperation(t *testing.T) {
	ind := &recordingIndicator{}
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	start := time.Now()
	out := Run(context.Background(), 50*time.Millisecond, ind, "d", sliceEmpty,
		func(ctx context.Context) ([]string, error) {
			<-release // hung operation: never returns on its own
			return nil, nil
		})
	elapsed := time.Since(start)

	assert.Equal(t, Timeout, out.Tag)
	assert.Less(t, elapsed, time.Second, "control must return at the deadline, not wait for the operation")
	assert.Equal(t, []IndicatorState{IndicatorTimedOut}, ind.states)
}

func TestRunDeadlineExceededFromOperation(t *testing.T) {
	ind := &recordingIndicator{}
	out := Run(context.Background(), time.Second, ind, "d", sliceEmpty,
		func(ctx context.Context) ([]string, error) {
			return nil, &url.Error{Op: "Get", URL: "http://x", Err: context.DeadlineExceeded}
		})

	assert.Equal(t, Timeout, out.Tag)
}

func TestRunAmbiguousTruncatesCandidates(t *testing.T) {
	candidates := make([]string, 12)
	for i := range candidates {
		candidates[i] = fmt.Sprintf("Mercury (%d)", i)
	}

	ind := &recordingIndicator{}
	out := Run(context.Background(), time.Second, ind, "d", sliceEmpty,
		func(ctx context.Context) ([]string, error) {
			return nil, &providers.AmbiguousError{Term: "Mercury", Candidates: candidates}
		})

	assert.Equal(t, Ambiguous, out.Tag)
	require.Len(t, out.Candidates, 8)
	assert.Equal(t, "Mercury (0)", out.Candidates[0])
	assert.Equal(t, []IndicatorState{IndicatorFailed}, ind.states)
}

func TestRunHardError(t *testing.T) {
	ind := &recordingIndicator{}
	out := Run(context.Background(), time.Second, ind, "d", sliceEmpty,
		func(ctx context.Context) ([]string, error) {
			return nil, errors.New("apiKeyInvalid")
		})

	assert.Equal(t, HardError, out.Tag)
	assert.False(t, out.Connectivity)
	assert.Contains(t, out.Err.Error(), "apiKeyInvalid")
}

func TestRunConnectivityError(t *testing.T) {
	ind := &recordingIndicator{}
	out := Run(context.Background(), time.Second, ind, "d", sliceEmpty,
		func(ctx context.Context) ([]string, error) {
			return nil, &net.OpError{Op: "dial", Err: errors.New("connection refused")}
		})

	assert.Equal(t, HardError, out.Tag)
	assert.True(t, out.Connectivity)
}

func TestRunDeterministicOutcome(t *testing.T) {
	op := func(ctx context.Context) ([]string, error) {
		return []string{"stable"}, nil
	}
	first := Run(context.Background(), time.Second, &recordingIndicator{}, "d", sliceEmpty, op)
	second := Run(context.Background(), time.Second, &recordingIndicator{}, "d", sliceEmpty, op)
	assert.Equal(t, first.Tag, second.Tag)
	assert.Equal(t, first.Value, second.Value)
}

func TestTagString(t *testing.T) {
	assert.Equal(t, "success", Success.String())
	assert.Equal(t, "empty", Empty.String())
	assert.Equal(t, "timeout", Timeout.String())
	assert.Equal(t, "ambiguous", Ambiguous.String())
	assert.Equal(t, "error", HardError.String())
}
