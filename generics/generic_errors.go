/*
 *
 * Module:    BIG Modelling Tools
 * Package:   Generics
 * Component: Errors
 *
 * Every failure of the tools belongs to one error class. The class decides the exit status of the
 * process, so scripts driving the tools can tell a missing file from a malformed model.
 * Errors are wrapped with their context using "github.com/pkg/errors", so errors.Is still finds the class.
 *
 * Author: Henderik A. Proper (e.proper@acm.org), TU Wien, Austria
 *
 * Version of: 18.10.2026
 *
 */

package generics

import (
	"github.com/pkg/errors"
)

// Exit statuses, one per error class
const (
	ExitOK       = 0
	ExitUsage    = 1
	ExitIO       = 2
	ExitParse    = 3
	ExitShape    = 4
	ExitInternal = 5
)

// Error classes
var (
	ErrUsage    = errors.New("usage error")
	ErrIO       = errors.New("i/o error")
	ErrParse    = errors.New("parse error")
	ErrShape    = errors.New("shape error")
	ErrInternal = errors.New("internal error")
)

// Map an error onto the exit status of its class. Unclassified errors count as internal errors.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage):
		return ExitUsage
	case errors.Is(err, ErrIO):
		return ExitIO
	case errors.Is(err, ErrParse):
		return ExitParse
	case errors.Is(err, ErrShape):
		return ExitShape
	default:
		return ExitInternal
	}
}
