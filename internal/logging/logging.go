// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging opens the session debug logger. It writes to a dated file
// under ~/.sourcefolio/logs/ so log lines never interleave with the
// interactive terminal surface. A failure to open the file degrades to a
// discard logger rather than blocking the session.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Open returns the session logger and a close function.
func Open() (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return discard(), func() {}
	}
	return OpenAt(filepath.Join(home, ".sourcefolio", "logs"))
}

// OpenAt returns a logger writing to a dated file under dir.
func OpenAt(dir string) (*log.Logger, func()) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return discard(), func() {}
	}

	name := fmt.Sprintf("sourcefolio-%s.log", time.Now().Format("2006-01-02"))
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return discard(), func() {}
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           log.DebugLevel,
	})
	return logger, func() { f.Close() }
}

func discard() *log.Logger {
	return log.New(io.Discard)
}
