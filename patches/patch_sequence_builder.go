/*
 *
 * Module:    BIG Modelling Tools
 * Package:   Patches
 * Component: Patch sequence builder
 *
 * This component turns a list of model snapshots into a patch bundle: the first snapshot, followed by
 * the JSON patch (RFC 6902) between each consecutive pair of snapshots.
 * The diffing itself is left to a TDiffer, by default the jsondiff based TJSONDiffer.
 *
 * Author: Henderik A. Proper (e.proper@acm.org), TU Wien, Austria
 *
 * Version of: 18.10.2026
 *
 */

package patches

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/erikproper/big-modelling-tools.go.v1/generics"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

type (
	// Computes the JSON patch turning the source document into the target document
	TDiffer interface {
		Diff(sourceJSON, targetJSON []byte) (json.RawMessage, error)
	}

	TJSONDiffer struct {
		Options generics.TDiffOptions
	}

	TPatchSequenceBuilder struct {
		Differ    TDiffer // The differ used for each pair of models
		RowsField string  // The field of the last model providing maxRows
		Workers   int     // The number of pairs diffed concurrently

		OnProgress generics.TProgressHandler // Invoked once per diffed pair

		reporter *generics.TReporter
	}
)

func (d TJSONDiffer) Diff(sourceJSON, targetJSON []byte) (json.RawMessage, error) {
	return generics.JSONDiff(sourceJSON, targetJSON, d.Options)
}

/*
 *
 * Internal functionality
 *
 */

func (b *TPatchSequenceBuilder) workers() int {
	if b.Workers < 1 {
		return 1
	}

	return b.Workers
}

// Diff all consecutive pairs of models. Each diff is stored at the index of its pair, so the order
// of the diffs does not depend on the order in which the workers finish.
func (b *TPatchSequenceBuilder) diffPairs(ctx context.Context, models TModelSnapshots) ([]json.RawMessage, error) {
	total := models.PairCount()
	diffs := make([]json.RawMessage, total)

	var progressMutex sync.Mutex
	completed := 0
	pairDiffed := func() {
		progressMutex.Lock()
		defer progressMutex.Unlock()

		completed++
		b.OnProgress(completed, total)
	}

	group, groupContext := errgroup.WithContext(ctx)
	group.SetLimit(b.workers())

	for pair := 0; pair < total; pair++ {
		pair := pair
		group.Go(func() error {
			if err := groupContext.Err(); err != nil {
				return err
			}

			diff, err := b.Differ.Diff(models[pair], models[pair+1])
			if err != nil {
				return errors.Wrapf(generics.ErrInternal, "could not diff models %d and %d (%s)", pair, pair+1, err)
			}

			diffs[pair] = diff
			b.reporter.Progress(generics.ProgressLevelNoisy, "Diffed models %d and %d.", pair, pair+1)
			pairDiffed()

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return diffs, nil
}

/*
 *
 * Externally visible functionality
 *
 */

// Build the patch bundle for the given models
func (b *TPatchSequenceBuilder) Build(ctx context.Context, models TModelSnapshots) (TPatchBundle, error) {
	if len(models) == 0 {
		return TPatchBundle{}, errors.Wrap(generics.ErrShape, "at least one model is needed")
	}

	// Check the last model first, so a malformed one does not cost any diffing
	maxRows, err := models.RowCount(b.RowsField)
	if err != nil {
		return TPatchBundle{}, err
	}

	b.reporter.Progress(generics.ProgressLevelDetailed, "Diffing %d model pairs using %d worker(s).", models.PairCount(), b.workers())

	diffs, err := b.diffPairs(ctx, models)
	if err != nil {
		return TPatchBundle{}, err
	}

	return CreatePatchBundle(models[0], diffs, maxRows), nil
}

func CreatePatchSequenceBuilder(differ TDiffer, reporter *generics.TReporter) *TPatchSequenceBuilder {
	builder := TPatchSequenceBuilder{}

	builder.Differ = differ
	builder.RowsField = generics.DefaultRowsField
	builder.Workers = generics.DefaultWorkers
	builder.OnProgress = generics.NoProgress
	builder.reporter = reporter

	return &builder
}
