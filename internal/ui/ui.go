// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ui is the operator-facing surface of the session: styled output,
// free-text and choice prompts, and the fetch progress indicator. The
// session talks to the Port interface only, so tests drive it with a
// scripted implementation and no terminal.
package ui

import "github.com/shakeelsaga/sourcefolio/internal/executor"

// Port is the capability interface the session is constructed with. There
// is deliberately no package-level console: whoever builds the session
// decides where prompts and output go.
type Port interface {
	// Print writes a plain line.
	Print(format string, args ...any)

	// Info, Success, Warn and Errorf write styled lines.
	Info(format string, args ...any)
	Success(format string, args ...any)
	Warn(format string, args ...any)
	Errorf(format string, args ...any)

	// Rule draws a horizontal rule with an optional centered title.
	Rule(title string)

	// Panel draws a bordered block of text.
	Panel(text string)

	// List prints items as an indented bullet list.
	List(items []string)

	// PromptText asks for one line of free text and returns it trimmed.
	// An empty string is a valid answer (the decline path in recovery).
	PromptText(message string) (string, error)

	// Select asks the operator to pick one of options and returns its index.
	Select(message string, options []string, defaultIndex int) (int, error)

	// Confirm asks a yes/no question.
	Confirm(message string, defaultYes bool) (bool, error)

	// Indicator returns the progress indicator driven by the executor
	// while a provider call is in flight.
	Indicator() executor.Indicator
}
