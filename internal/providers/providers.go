// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package providers implements the three remote lookup adapters: Wikipedia
// (encyclopedia), OpenLibrary (book catalog), and NewsAPI (news search).
// Each adapter is a thin, single-attempt HTTP client; outcome classification
// and retry policy live with the caller. Adapters distinguish three failure
// shapes at their boundary: a missing page (ErrNotFound), an ambiguous term
// (*AmbiguousError with candidates), and everything else as a plain error.
package providers

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a lookup term with no matching page. A provider that
// answers with an empty collection does not use this; only the encyclopedia
// distinguishes "no such page" from "page with no content".
var ErrNotFound = errors.New("no matching page")

// AmbiguousError reports an encyclopedia term that matches several pages.
// Candidates holds the alternative page titles, in provider order.
type AmbiguousError struct {
	Term       string
	Candidates []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("%q is ambiguous (%d candidates)", e.Term, len(e.Candidates))
}
