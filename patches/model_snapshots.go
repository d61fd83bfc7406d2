/*
 *
 * Module:    BIG Modelling Tools
 * Package:   Patches
 * Component: Model snapshots
 *
 * A model snapshot list is a JSON array of arbitrary JSON values. The snapshots are kept as raw JSON,
 * so the first one ends up in the bundle exactly as it was read.
 *
 * Author: Henderik A. Proper (e.proper@acm.org), TU Wien, Austria
 *
 * Version of: 18.10.2026
 *
 */

package patches

import (
	"bytes"
	"encoding/json"

	"github.com/erikproper/big-modelling-tools.go.v1/generics"
	"github.com/pkg/errors"
)

type TModelSnapshots []json.RawMessage

// Parse a JSON array of model snapshots
func ParseModels(modelsJSON []byte) (TModelSnapshots, error) {
	if !json.Valid(modelsJSON) {
		return nil, errors.Wrap(generics.ErrParse, "the models are not valid JSON")
	}

	if trimmed := bytes.TrimSpace(modelsJSON); trimmed[0] != '[' {
		return nil, errors.Wrap(generics.ErrParse, "the models should be a JSON array")
	}

	models := TModelSnapshots{}
	if err := json.Unmarshal(modelsJSON, &models); err != nil {
		return nil, errors.Wrapf(generics.ErrParse, "could not read the models (%s)", err)
	}

	if len(models) == 0 {
		return nil, errors.Wrap(generics.ErrShape, "at least one model is needed")
	}

	return models, nil
}

// The number of consecutive pairs, and hence of diffs
func (m TModelSnapshots) PairCount() int {
	if len(m) == 0 {
		return 0
	}

	return len(m) - 1
}

func (m TModelSnapshots) Last() json.RawMessage {
	if len(m) == 0 {
		return nil
	}

	return m[len(m)-1]
}

// The length of the rows field of the last model, which must be a JSON array
func (m TModelSnapshots) RowCount(rowsField string) (int, error) {
	if len(m) == 0 {
		return 0, errors.Wrap(generics.ErrShape, "at least one model is needed")
	}

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(m.Last(), &fields); err != nil || fields == nil {
		return 0, errors.Wrap(generics.ErrShape, "the last model should be a JSON object")
	}

	rowsJSON, defined := fields[rowsField]
	if !defined {
		return 0, errors.Wrapf(generics.ErrShape, "the last model has no %q field", rowsField)
	}

	rows := []json.RawMessage{}
	if err := json.Unmarshal(rowsJSON, &rows); err != nil || rows == nil {
		return 0, errors.Wrapf(generics.ErrShape, "the %q field of the last model should be an array", rowsField)
	}

	return len(rows), nil
}
