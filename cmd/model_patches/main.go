/*
 *
 * Module:    BIG Modelling Tools
 * Command:   model_patches
 *
 * Reads a JSON array of model snapshots, and writes a bundle with the first model, the JSON patches
 * between each consecutive pair of models, and the number of rows of the last model.
 * With -replay, the input is such a bundle, and all models are reconstructed from it instead.
 *
 * Author: Henderik A. Proper (e.proper@acm.org), TU Wien, Austria
 *
 * Version of: 18.10.2026
 *
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/erikproper/big-modelling-tools.go.v1/generics"
	"github.com/erikproper/big-modelling-tools.go.v1/patches"
)

const (
	usage = "Usage: model_patches [-config <ini_file>] [-workers <n>] [-verify] [-replay] [-quiet] <input_file>"
)

type tSettings struct {
	configFile string
	workers    int
	verify     bool
	replay     bool
	quiet      bool
	inputFile  string
}

func parseArguments(args []string, stderr io.Writer) (tSettings, bool) {
	settings := tSettings{}

	flags := flag.NewFlagSet("model_patches", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintln(stderr, usage)
		flags.PrintDefaults()
	}

	flags.StringVar(&settings.configFile, "config", "", "ini file with settings")
	flags.IntVar(&settings.workers, "workers", 0, "number of model pairs diffed concurrently (overrides the config)")
	flags.BoolVar(&settings.verify, "verify", false, "check that replaying the diffs reproduces every model")
	flags.BoolVar(&settings.replay, "replay", false, "read a patch bundle and write the models it describes")
	flags.BoolVar(&settings.quiet, "quiet", false, "report errors only")

	if err := flags.Parse(args); err != nil {
		return settings, false
	}

	if flags.NArg() < 1 {
		fmt.Fprintln(stderr, usage)
		return settings, false
	}
	settings.inputFile = flags.Arg(0)

	return settings, true
}

func buildBundle(settings tSettings, configData *generics.TConfigData, modelsJSON []byte, stderr io.Writer, reporter *generics.TReporter) ([]byte, error) {
	progressSetting, err := configData.GetValue("reporting", "progress").OneOf(generics.ProgressAuto,
		generics.ProgressAuto, generics.ProgressAlways, generics.ProgressNever)
	if err != nil {
		return nil, err
	}

	models, err := patches.ParseModels(modelsJSON)
	if err != nil {
		return nil, err
	}
	reporter.Progress(generics.ProgressLevelBasic, "Read %d models from %s.", len(models), settings.inputFile)

	differ := patches.TJSONDiffer{Options: generics.DiffOptionsFromConfig(configData)}
	builder := patches.CreatePatchSequenceBuilder(differ, reporter)
	builder.RowsField = configData.GetValue("patches", "rows_field").StringWithDefault(generics.DefaultRowsField)
	builder.Workers = configData.GetValue("patches", "workers").IntWithDefault(generics.DefaultWorkers)
	if settings.workers > 0 {
		builder.Workers = settings.workers
	}

	showProgressBar := !settings.quiet && generics.ShowProgressBar(progressSetting, stderr)

	progressBar := generics.CreateProgressBar(stderr, models.PairCount(), "diffing models", showProgressBar)
	builder.OnProgress = progressBar.Handler()

	bundle, err := builder.Build(context.Background(), models)
	if err != nil {
		return nil, err
	}
	progressBar.Finish()

	if settings.verify || configData.GetValue("patches", "verify").Bool() {
		if err := bundle.Verify(models); err != nil {
			return nil, err
		}
		reporter.Progress(generics.ProgressLevelBasic, "Verified that the diffs reproduce all %d models.", len(models))
	}

	return bundle.Marshal()
}

func replayBundle(bundleJSON []byte, reporter *generics.TReporter) ([]byte, error) {
	bundle, err := patches.DecodeBundle(bundleJSON)
	if err != nil {
		return nil, err
	}

	models, err := bundle.Replay()
	if err != nil {
		return nil, err
	}
	reporter.Progress(generics.ProgressLevelBasic, "Replayed %d diffs.", len(bundle.Diffs))

	return generics.MarshalJSONLine(models)
}

func run(args []string, stdout, stderr io.Writer) int {
	settings, ok := parseArguments(args, stderr)
	if !ok {
		return generics.ExitUsage
	}

	reporter := generics.CreateStreamReporter(stderr, generics.IsTerminal(stderr))

	// Note: without a config file, all settings take their defaults
	configData, err := generics.LoadConfig(settings.configFile, reporter)
	if err != nil {
		return reporter.Fatal(err)
	}

	reporter.SetProgressLevel(configData.GetValue("reporting", "level").IntWithDefault(generics.ProgressLevelBasic))
	if settings.quiet {
		reporter.SetProgressLevel(0)
	}
	reporter.Progress(generics.ProgressLevelDetailed, "model_patches, %s", generics.ToolsVersion)

	inputJSON, err := generics.ReadInputFile(settings.inputFile)
	if err != nil {
		return reporter.Fatal(err)
	}

	var output []byte
	if settings.replay {
		output, err = replayBundle(inputJSON, reporter)
	} else {
		output, err = buildBundle(settings, configData, inputJSON, stderr, reporter)
	}
	if err != nil {
		return reporter.Fatal(err)
	}

	if err := generics.WriteOutput(stdout, output); err != nil {
		return reporter.Fatal(err)
	}

	return generics.ExitOK
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
