// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ui

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shakeelsaga/sourcefolio/internal/executor"
)

const ruleWidth = 62

// Terminal is the interactive Port implementation: prompts and output on a
// terminal, reading operator answers line by line.
type Terminal struct {
	theme Theme
	in    *bufio.Reader
	out   io.Writer
}

// NewTerminal returns a Terminal reading answers from in and writing to out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{theme: DefaultTheme(), in: bufio.NewReader(in), out: out}
}

func (t *Terminal) Print(format string, args ...any) {
	fmt.Fprintf(t.out, format+"\n", args...)
}

func (t *Terminal) Info(format string, args ...any) {
	fmt.Fprintln(t.out, t.theme.Primary.Render(fmt.Sprintf(format, args...)))
}

func (t *Terminal) Success(format string, args ...any) {
	fmt.Fprintln(t.out, t.theme.Success.Render(fmt.Sprintf(format, args...)))
}

func (t *Terminal) Warn(format string, args ...any) {
	fmt.Fprintln(t.out, t.theme.Warn.Render("⚠ "+fmt.Sprintf(format, args...)))
}

func (t *Terminal) Errorf(format string, args ...any) {
	fmt.Fprintln(t.out, t.theme.Error.Render(fmt.Sprintf(format, args...)))
}

func (t *Terminal) Rule(title string) {
	if title == "" {
		fmt.Fprintln(t.out, t.theme.Rule.Render(strings.Repeat("─", ruleWidth)))
		return
	}
	side := (ruleWidth - len(title) - 2) / 2
	if side < 3 {
		side = 3
	}
	line := fmt.Sprintf("%s %s %s", strings.Repeat("─", side), title, strings.Repeat("─", side))
	fmt.Fprintln(t.out, t.theme.Rule.Render(line))
}

func (t *Terminal) List(items []string) {
	for _, item := range items {
		fmt.Fprintf(t.out, "  - %s\n", item)
	}
}

// Panel draws a bordered block of text, used for the splash screen.
func (t *Terminal) Panel(text string) {
	fmt.Fprintln(t.out, t.theme.Panel.Render(text))
}

func (t *Terminal) PromptText(message string) (string, error) {
	fmt.Fprintf(t.out, "%s\n>> ", t.theme.Secondary.Render(message))
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Select presents a numbered menu and reads the chosen index. A blank
// answer takes the default; an invalid answer re-prompts.
func (t *Terminal) Select(message string, options []string, defaultIndex int) (int, error) {
	fmt.Fprintln(t.out, t.theme.Secondary.Render(message))
	for i, opt := range options {
		marker := " "
		if i == defaultIndex {
			marker = "*"
		}
		fmt.Fprintf(t.out, " %s %d. %s\n", marker, i+1, opt)
	}

	for {
		fmt.Fprint(t.out, ">> ")
		line, err := t.in.ReadString('\n')
		if err != nil && line == "" {
			return 0, err
		}
		answer := strings.TrimSpace(line)
		if answer == "" {
			return defaultIndex, nil
		}
		n, convErr := strconv.Atoi(answer)
		if convErr == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		t.Warn("Invalid input, please enter a number between 1 and %d.", len(options))
	}
}

func (t *Terminal) Confirm(message string, defaultYes bool) (bool, error) {
	hint := "y/N"
	if defaultYes {
		hint = "Y/n"
	}
	for {
		fmt.Fprintf(t.out, "%s (%s)\n>> ", t.theme.Secondary.Render(message), hint)
		line, err := t.in.ReadString('\n')
		if err != nil && line == "" {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		t.Warn("Invalid input! Please type y/n.")
	}
}

func (t *Terminal) Indicator() executor.Indicator {
	return newSpinner(t.out, t.theme)
}
