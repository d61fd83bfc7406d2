/*
 *
 * Module:    BIG Modelling Tools
 * Package:   Generics
 * Component: Progress
 *
 * Progress of long running loops is reported through a TProgressHandler, which is invoked once per
 * completed unit of work. The command line tools render it using "github.com/schollz/progressbar/v3".
 *
 * Author: Henderik A. Proper (e.proper@acm.org), TU Wien, Austria
 *
 * Version of: 18.10.2026
 *
 */

package generics

import (
	"fmt"
	"io"
	"sync"

	"github.com/schollz/progressbar/v3"
)

type (
	TProgressHandler func(completed, total int)

	TProgressBar struct {
		bar *progressbar.ProgressBar // nil when there is nothing to show

		mutex sync.Mutex
	}
)

// A progress handler that ignores all progress
func NoProgress(_, _ int) {}

// Whether a progress bar should be shown for the given setting ("auto", "true" or "false")
func ShowProgressBar(setting string, stream io.Writer) bool {
	switch setting {
	case ProgressAlways:
		return true
	case ProgressNever:
		return false
	default:
		return IsTerminal(stream)
	}
}

func CreateProgressBar(stream io.Writer, total int, description string, visible bool) *TProgressBar {
	progressBar := TProgressBar{}

	// The bar cannot render an empty amount of work
	if total <= 0 || !visible {
		return &progressBar
	}

	progressBar.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(stream),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(stream)
		}))

	return &progressBar
}

// The handler ticking the bar, one tick per completed unit of work
func (p *TProgressBar) Handler() TProgressHandler {
	return func(_, _ int) {
		p.mutex.Lock()
		defer p.mutex.Unlock()

		if p.bar != nil {
			p.bar.Add(1)
		}
	}
}

func (p *TProgressBar) Finish() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.bar != nil && !p.bar.IsFinished() {
		p.bar.Finish()
	}
}
