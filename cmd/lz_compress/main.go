/*
 *
 * Module:    BIG Modelling Tools
 * Command:   lz_compress
 *
 * Reads a JSON file with a single string, compresses the string using lz-string, and writes the
 * compressed string, as JSON, to stdout. With -d, the input is decompressed instead.
 *
 * Author: Henderik A. Proper (e.proper@acm.org), TU Wien, Austria
 *
 * Version of: 18.10.2026
 *
 */

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/erikproper/big-modelling-tools.go.v1/compression"
	"github.com/erikproper/big-modelling-tools.go.v1/generics"
)

const (
	usage = "Usage: lz_compress [-config <ini_file>] [-encoding raw|base64|uri|utf16] [-d] <input_file>"
)

type tSettings struct {
	configFile string
	encoding   string
	decompress bool
	inputFile  string
}

func parseArguments(args []string, stderr io.Writer) (tSettings, bool) {
	settings := tSettings{}

	flags := flag.NewFlagSet("lz_compress", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintln(stderr, usage)
		flags.PrintDefaults()
	}

	flags.StringVar(&settings.configFile, "config", "", "ini file with settings")
	flags.StringVar(&settings.encoding, "encoding", "", "lz-string flavour: raw, base64, uri or utf16 (overrides the config)")
	flags.BoolVar(&settings.decompress, "d", false, "decompress instead of compress")

	if err := flags.Parse(args); err != nil {
		return settings, false
	}

	if flags.NArg() < 1 {
		fmt.Fprintln(stderr, usage)
		return settings, false
	}
	settings.inputFile = flags.Arg(0)

	if settings.encoding != "" && !compression.IsEncoding(settings.encoding) {
		fmt.Fprintf(stderr, "Unknown encoding %q.\n", settings.encoding)
		fmt.Fprintln(stderr, usage)
		return settings, false
	}

	return settings, true
}

func run(args []string, stdout, stderr io.Writer) int {
	settings, ok := parseArguments(args, stderr)
	if !ok {
		return generics.ExitUsage
	}

	reporter := generics.CreateStreamReporter(stderr, generics.IsTerminal(stderr))

	configData, err := generics.LoadConfig(settings.configFile, reporter)
	if err != nil {
		return reporter.Fatal(err)
	}
	reporter.SetProgressLevel(configData.GetValue("reporting", "level").IntWithDefault(generics.ProgressLevelBasic))
	reporter.Progress(generics.ProgressLevelDetailed, "lz_compress, %s", generics.ToolsVersion)

	encoding := settings.encoding
	if encoding == "" {
		encoding, err = configData.GetValue("compression", "encoding").OneOf(compression.EncodingRaw, compression.Encodings...)
		if err != nil {
			return reporter.Fatal(err)
		}
	}

	inputJSON, err := generics.ReadInputFile(settings.inputFile)
	if err != nil {
		return reporter.Fatal(err)
	}

	compressor := compression.CreateStringCompressor(compression.TLZStringCodec{Encoding: encoding}, reporter)

	var output []byte
	if settings.decompress {
		output, err = compressor.DecompressJSON(inputJSON)
	} else {
		output, err = compressor.CompressJSON(inputJSON)
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
