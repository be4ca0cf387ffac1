// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"context"
	"fmt"

	"github.com/shakeelsaga/sourcefolio/internal/executor"
	"github.com/shakeelsaga/sourcefolio/pkg/types"
)

// phase describes one provider pass for one keyword: how to fetch, how to
// recognize an empty result, and how to record the result in the bucket.
type phase[T any] struct {
	// name appears in operator messages ("Wikipedia", "book", "News article").
	name string

	// describe builds the progress indicator text for a keyword.
	describe func(key string) string

	// emptyMsg is the warning shown when the provider had nothing.
	emptyMsg func(key string) string

	fetch   func(ctx context.Context, key string, b *types.Bucket) (T, error)
	isEmpty func(T) bool

	// store records a successful result.
	store func(b *types.Bucket, v T)

	// markAttempted records a completed-but-empty lookup, so the slot is
	// distinguishable from one that was never attempted.
	markAttempted func(b *types.Bucket)
}

// renameResult classifies what the rename prompt did to the keyword.
type renameResult int

const (
	renameSkipped renameResult = iota
	renameApplied
	renameMerged
)

// runPhase drives one (keyword, provider) pair through the recovery state
// machine: Attempting → Done | AwaitingInput → Attempting | Skipped. The
// loop is unbounded on purpose; only the operator decides when to give up.
// It returns the keyword's final name, which may differ from key after
// rebinds, and whether the caller should keep processing this entry. A
// rename that lands on another live keyword folds this entry into that one;
// processing stops here, because the merged entry runs (or already ran)
// at its own position.
func runPhase[T any](ctx context.Context, s *Session, key string, p phase[T]) (string, bool) {
	for {
		bucket, ok := s.ledger.Get(key)
		if !ok {
			// Contract violation: the controller only runs live keys.
			s.log.Error("phase on dead keyword", "key", key, "phase", p.name)
			return key, false
		}

		out := executor.Run(ctx, s.cfg.FetchDeadline, s.ui.Indicator(), p.describe(key), p.isEmpty,
			func(ctx context.Context) (T, error) {
				return p.fetch(ctx, key, bucket)
			})
		s.log.Debug("phase outcome", "key", key, "phase", p.name, "tag", out.Tag.String())

		switch out.Tag {
		case executor.Success:
			p.store(bucket, out.Value)
			return key, true

		case executor.Empty:
			p.markAttempted(bucket)
			s.ui.Warn(p.emptyMsg(key))
			newKey, res := s.promptRename(key, "Enter a different keyword (or leave blank to skip):", p.name)
			if done, keepGoing := renameOutcome(res); done {
				return newKey, keepGoing
			}
			key = newKey

		case executor.Ambiguous:
			s.ui.Warn("The keyword '%s' is ambiguous. Some possible options:", key)
			s.ui.List(out.Candidates)
			newKey, res := s.promptRename(key, "Please refine the keyword and re-enter (or leave blank to skip):", p.name)
			if done, keepGoing := renameOutcome(res); done {
				return newKey, keepGoing
			}
			key = newKey

		case executor.Timeout:
			s.ui.Errorf("Request timed out (server took too long).")
			if !s.promptRetry() {
				return key, true
			}

		case executor.HardError:
			if out.Connectivity {
				s.ui.Errorf("Connection lost.")
				if !s.promptRetry() {
					return key, true
				}
				continue
			}
			s.ui.Warn("Error fetching %s data for '%s': %v", p.name, key, out.Err)
			newKey, res := s.promptRename(key, "Enter a different keyword (or leave blank to skip):", p.name)
			if done, keepGoing := renameOutcome(res); done {
				return newKey, keepGoing
			}
			key = newKey
		}
	}
}

// renameOutcome maps a rename result to (phase finished, keep processing
// this entry). An applied rename is neither: the phase loops again under
// the new name.
func renameOutcome(res renameResult) (done, keepGoing bool) {
	switch res {
	case renameSkipped:
		return true, true
	case renameMerged:
		return true, false
	default:
		return false, false
	}
}

// promptRename asks for a replacement keyword. A blank answer means skip;
// otherwise the ledger entry is rebound and the phase loops under the new
// name, unless the new name is already live, in which case the two entries
// merge and this one is finished.
func (s *Session) promptRename(key, message, phaseName string) (string, renameResult) {
	answer, err := s.ui.PromptText(message)
	if err != nil || answer == "" {
		s.ui.Print("Skipping fetching %s for this term.", phaseName)
		return key, renameSkipped
	}

	_, collision := s.ledger.Get(answer)
	if err := s.ledger.Rebind(key, answer); err != nil {
		s.log.Error("rebind failed", "old", key, "new", answer, "err", err)
		s.ui.Errorf("Could not rename the keyword: %v", err)
		return key, renameSkipped
	}
	if collision && answer != key {
		s.ui.Info("Keyword '%s' folded into existing keyword '%s'.", key, answer)
		s.log.Info("keyword merged", "old", key, "new", answer)
		return answer, renameMerged
	}
	s.ui.Info("Keyword updated: '%s' → '%s'", key, answer)
	s.log.Info("keyword rebound", "old", key, "new", answer)
	return answer, renameApplied
}

// promptRetry offers the narrow timeout/connectivity choice: retry the same
// keyword or end the whole session. Exit terminates the process immediately;
// abandoned fetch goroutines are left behind by design.
func (s *Session) promptRetry() bool {
	idx, err := s.ui.Select("What would you like to do?", []string{"Retry connection", "Exit application"}, 0)
	if err == nil && idx == 0 {
		s.ui.Info("Retrying...")
		return true
	}

	s.farewell()
	s.exit(0)
	return false // reached only under test exit stubs
}

func (s *Session) farewell() {
	s.ui.Info("\nExiting. Thank you for using SourceFolio!")
}

func describeFetch(what, key string) string {
	return fmt.Sprintf("Gathering %s data for '%s'", what, key)
}
