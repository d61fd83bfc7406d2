/*
 *
 * Module:    BIG Modelling Tools
 * Package:   Generics
 * Component: Files
 *
 * Author: Henderik A. Proper (e.proper@acm.org), TU Wien, Austria
 *
 * Version of: 18.10.2026
 *
 */

package generics

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Read the entire contents of an input file
func ReadInputFile(filePath string) ([]byte, error) {
	if filePath == "" {
		return nil, errors.Wrap(ErrUsage, "no input file given")
	}

	content, err := os.ReadFile(filepath.FromSlash(filePath))
	if err != nil {
		return nil, errors.Wrapf(ErrIO, "could not read %s (%s)", filePath, err)
	}

	return content, nil
}
