// Package progress reports long row-by-row jobs such as snapshot imports.
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Reporter receives progress of a job over a known number of rows.
type Reporter interface {
	Start(total int)
	Update(done int, message string)
	Finish()
}

// NewReporter returns a CIReporter when CI or GITHUB_ACTIONS is set, and a
// TerminalReporter otherwise. label names the job ("Importing rows").
func NewReporter(label string) Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{Label: label}
	}
	return &TerminalReporter{Label: label}
}

// TerminalReporter draws a progress bar on stderr.
type TerminalReporter struct {
	Label string
	bar   *progressbar.ProgressBar
}

func (r *TerminalReporter) Start(total int) {
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription(r.Label),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("rows"),
		progressbar.OptionThrottle(100_000_000),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Update(done int, message string) {
	if r.bar == nil {
		return
	}
	if message != "" {
		r.bar.Describe(message)
	}
	_ = r.bar.Set(done)
}

func (r *TerminalReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// CIReporter writes plain log lines, one per Every rows (100 when zero) plus
// the last row.
type CIReporter struct {
	Label string
	Out   io.Writer
	Every int

	total int
}

func (r *CIReporter) w() io.Writer {
	if r.Out != nil {
		return r.Out
	}
	return os.Stderr
}

func (r *CIReporter) Start(total int) {
	r.total = total
	if r.Every <= 0 {
		r.Every = 100
	}
	fmt.Fprintf(r.w(), "%s: %d rows\n", r.Label, total)
}

func (r *CIReporter) Update(done int, message string) {
	if done != r.total && done%r.Every != 0 {
		return
	}
	if message == "" {
		message = r.Label
	}
	fmt.Fprintf(r.w(), "%s [%d/%d]\n", message, done, r.total)
}

func (r *CIReporter) Finish() {
	fmt.Fprintf(r.w(), "%s: done\n", r.Label)
}
