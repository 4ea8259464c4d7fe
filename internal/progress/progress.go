// Package progress draws a progress bar on stderr for long directory walks.
package progress

import (
	"os"

	"github.com/caoccao/javet-buildkit/internal/logging"
	"github.com/schollz/progressbar/v3"
)

// Bar is a progress bar. A nil *Bar ignores every call.
type Bar struct {
	bar *progressbar.ProgressBar
}

// New returns a bar for total steps, or nil when stderr is not a terminal,
// verbose logging is on, or there is too little work to show.
func New(total int, description string) *Bar {
	if total < 2 || logging.Verbose() || !logging.StderrIsTerminal() {
		return nil
	}
	return &Bar{bar: progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionEnableColorCodes(logging.Color()),
	)}
}

// Set moves the bar to n completed steps.
func (b *Bar) Set(n int) {
	if b == nil {
		return
	}
	_ = b.bar.Set(n)
}

// Finish completes and clears the bar.
func (b *Bar) Finish() {
	if b == nil {
		return
	}
	_ = b.bar.Finish()
}
