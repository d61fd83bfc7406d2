/*
 *
 * Module:    BIG Modelling Tools
 * Package:   Generics
 * Component: Reporting
 *
 * This component is concerned with the reporting of errors, progress, etc, to the user.
 * The actual output is left to the error and progress reporters handed to CreateReporter,
 * so tests can collect the messages while the tools write them to stderr.
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
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

const (
	ProgressLevelBasic    = 1
	ProgressLevelDetailed = 2
	ProgressLevelNoisy    = 3
)

type (
	TErrorReporter    func(string)
	TProgressReporter func(string)

	TReporter struct {
		errorReporter    TErrorReporter
		progressReporter TProgressReporter

		progressLevel int // Progress messages above this level are not reported

		mutex sync.Mutex // Reporting may happen from the diff workers
	}
)

func (r *TReporter) Error(message string, context ...any) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.errorReporter(fmt.Sprintf(message, context...))
}

// Report a fatal error, and return the exit status belonging to its error class
func (r *TReporter) Fatal(err error) int {
	r.Error("%s", err)

	return ExitCode(err)
}

func (r *TReporter) Progress(level int, message string, context ...any) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if level > r.progressLevel {
		return
	}

	r.progressReporter(fmt.Sprintf(message, context...))
}

func (r *TReporter) SetProgressLevel(level int) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.progressLevel = level
}

func CreateReporter(errorReporter TErrorReporter, progressReporter TProgressReporter) *TReporter {
	reporter := TReporter{}

	reporter.errorReporter = errorReporter
	reporter.progressReporter = progressReporter
	reporter.progressLevel = ProgressLevelBasic

	return &reporter
}

// Create a reporter that writes "ERROR:" and "PROGRESS:" lines to the given stream.
// The prefixes are coloured when asked for, regardless of where stdout goes.
func CreateStreamReporter(stream io.Writer, colored bool) *TReporter {
	errorPrefix := color.New(color.FgRed, color.Bold)
	progressPrefix := color.New(color.FgCyan)
	if colored {
		errorPrefix.EnableColor()
		progressPrefix.EnableColor()
	} else {
		errorPrefix.DisableColor()
		progressPrefix.DisableColor()
	}

	return CreateReporter(
		func(message string) {
			fmt.Fprintln(stream, errorPrefix.Sprint("ERROR:"), message)
		},
		func(message string) {
			fmt.Fprintln(stream, progressPrefix.Sprint("PROGRESS:"), message)
		})
}

// Whether the given stream is an interactive terminal
func IsTerminal(stream io.Writer) bool {
	file, isFile := stream.(*os.File)
	if !isFile {
		return false
	}

	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
