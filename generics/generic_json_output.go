/*
 *
 * Module:    BIG Modelling Tools
 * Package:   Generics
 * Component: JSON output
 *
 * Author: Henderik A. Proper (e.proper@acm.org), TU Wien, Austria
 *
 * Version of: 18.10.2026
 *
 */

package generics

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// Marshal a value as one compact JSON document followed by a newline.
// Unlike json.Marshal, characters such as < and & are kept as they are.
func MarshalJSONLine(value any) ([]byte, error) {
	buffer := bytes.Buffer{}

	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(value); err != nil {
		return nil, errors.Wrapf(ErrInternal, "could not encode the output (%s)", err)
	}

	return buffer.Bytes(), nil
}

// Write the output in one go, so a failing run leaves the output stream untouched
func WriteOutput(stream io.Writer, output []byte) error {
	if _, err := stream.Write(output); err != nil {
		return errors.Wrapf(ErrIO, "could not write the output (%s)", err)
	}

	return nil
}
