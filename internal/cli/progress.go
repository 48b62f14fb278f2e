package cli

import (
	"fmt"
	"log"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/mvp-joe/blueprint/internal/generator"
)

// CLIProgressReporter implements generator.ProgressReporter with progress bars.
type CLIProgressReporter struct {
	quiet       bool
	classifyBar *progressbar.ProgressBar
	startTime   time.Time
}

// NewCLIProgressReporter creates a new CLI progress reporter.
func NewCLIProgressReporter(quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{
		quiet:     quiet,
		startTime: time.Now(),
	}
}

func (c *CLIProgressReporter) OnExtractComplete(sections, fragments int) {
	if c.quiet {
		return
	}
	log.Printf("Extracted %d fragments from %d sections\n", fragments, sections)
}

func (c *CLIProgressReporter) OnClassifyStart(totalFragments int) {
	if c.quiet {
		return
	}
	c.classifyBar = progressbar.NewOptions(totalFragments,
		progressbar.OptionSetDescription("Classifying fragments"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

func (c *CLIProgressReporter) OnFragmentClassified(path string) {
	if c.quiet {
		return
	}
	if c.classifyBar != nil {
		c.classifyBar.Add(1)
	}
}

func (c *CLIProgressReporter) OnResolveComplete(discovered int) {
	if c.quiet {
		return
	}
	if c.classifyBar != nil {
		c.classifyBar.Finish()
		c.classifyBar = nil
	}
	if discovered > 0 {
		log.Printf("Resolved %d referenced file(s) not in the selected features\n", discovered)
	}
}

func (c *CLIProgressReporter) OnRewriteComplete(rewritten int) {
	if c.quiet {
		return
	}
	if rewritten > 0 {
		log.Printf("Rewrote %d relative import(s)\n", rewritten)
	}
}

func (c *CLIProgressReporter) OnComplete(stats generator.Stats) {
	if c.quiet {
		return
	}
	fmt.Printf("✓ Generation complete: %d files in %.2fs\n", stats.FilesEmitted, stats.DurationSeconds)
}
