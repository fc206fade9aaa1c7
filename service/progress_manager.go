package service

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/atria-go/atria/domain"
)

// ProgressManager implements domain.ProgressReporter with a terminal-aware
// progress bar, using interactive-detection and bar-styling conventions
// suited to both TTY and CI output.
type ProgressManager struct {
	writer      io.Writer
	interactive bool
	bar         *progressbar.ProgressBar
}

// NewProgressManager constructs a ProgressManager writing to os.Stderr.
func NewProgressManager() *ProgressManager {
	return &ProgressManager{
		writer:      os.Stderr,
		interactive: isInteractiveEnvironment(),
	}
}

// Start implements domain.ProgressReporter.
func (pm *ProgressManager) Start(total int) {
	if !pm.interactive {
		return
	}
	writer := pm.writer
	if writer == nil {
		writer = io.Discard
	}
	pm.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription("atria"),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionSetWriter(writer),
	)
}

// Add implements domain.ProgressReporter.
func (pm *ProgressManager) Add(n int) {
	if pm.bar == nil {
		return
	}
	_ = pm.bar.Add(n)
}

// Finish implements domain.ProgressReporter.
func (pm *ProgressManager) Finish() {
	if pm.bar == nil {
		return
	}
	_ = pm.bar.Finish()
	pm.bar = nil
}

var _ domain.ProgressReporter = (*ProgressManager)(nil)

// isInteractiveEnvironment reports whether stderr looks like a terminal
// and we are not running under CI.
func isInteractiveEnvironment() bool {
	if os.Getenv("CI") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}
