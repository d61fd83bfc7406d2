/*
 *
 * Module:    BIG Modelling Tools
 * Package:   Patches
 * Component: Patch bundle
 *
 * A patch bundle holds a base model and the diffs leading from it to each of the later models.
 * Replaying the bundle reconstructs all models; verifying compares that reconstruction with the
 * models the bundle was built from.
 *
 * Author: Henderik A. Proper (e.proper@acm.org), TU Wien, Austria
 *
 * Version of: 18.10.2026
 *
 */

package patches

import (
	"encoding/json"

	"github.com/erikproper/big-modelling-tools.go.v1/generics"
	"github.com/pkg/errors"
)

type (
	TPatchBundle struct {
		Model   json.RawMessage   `json:"model"`   // The first model, as read
		Diffs   []json.RawMessage `json:"diffs"`   // Diff i leads from model i to model i+1
		MaxRows int               `json:"maxRows"` // Length of the rows field of the last model
	}
)

// Create a bundle. A bundle without diffs still has an (empty) diff list.
func CreatePatchBundle(model json.RawMessage, diffs []json.RawMessage, maxRows int) TPatchBundle {
	bundle := TPatchBundle{}
	bundle.Model = model
	bundle.Diffs = diffs
	bundle.MaxRows = maxRows

	if bundle.Diffs == nil {
		bundle.Diffs = []json.RawMessage{}
	}

	return bundle
}

// Decode a bundle as written by Marshal
func DecodeBundle(bundleJSON []byte) (TPatchBundle, error) {
	bundle := TPatchBundle{}
	if err := json.Unmarshal(bundleJSON, &bundle); err != nil {
		return TPatchBundle{}, errors.Wrapf(generics.ErrParse, "could not read the patch bundle (%s)", err)
	}

	if len(bundle.Model) == 0 {
		return TPatchBundle{}, errors.Wrap(generics.ErrShape, "the patch bundle has no model")
	}

	return CreatePatchBundle(bundle.Model, bundle.Diffs, bundle.MaxRows), nil
}

// The bundle as one line of JSON
func (p TPatchBundle) Marshal() ([]byte, error) {
	return generics.MarshalJSONLine(p)
}

// Reconstruct all models by applying the diffs one after the other, starting from the base model
func (p TPatchBundle) Replay() (TModelSnapshots, error) {
	models := TModelSnapshots{p.Model}

	currentModel := p.Model
	for diffIndex, diff := range p.Diffs {
		nextModel, err := generics.JSONApplyPatch(currentModel, diff)
		if err != nil {
			return nil, errors.Wrapf(generics.ErrShape, "diff %d does not apply (%s)", diffIndex, err)
		}

		models = append(models, nextModel)
		currentModel = nextModel
	}

	return models, nil
}

// Check that replaying the bundle gives back the given models
func (p TPatchBundle) Verify(models TModelSnapshots) error {
	replayedModels, err := p.Replay()
	if err != nil {
		return errors.Wrapf(generics.ErrInternal, "replaying the diffs failed (%s)", err)
	}

	if len(replayedModels) != len(models) {
		return errors.Wrapf(generics.ErrInternal, "replaying gives %d models instead of %d", len(replayedModels), len(models))
	}

	for modelIndex := range models {
		if !generics.JSONEqual(replayedModels[modelIndex], models[modelIndex]) {
			return errors.Wrapf(generics.ErrInternal, "model %d is not reproduced by the diffs", modelIndex)
		}
	}

	return nil
}
