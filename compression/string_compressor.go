/*
 *
 * Module:    BIG Modelling Tools
 * Package:   Compression
 * Component: String compressor
 *
 * Reads a JSON string, compresses it with a TCodec and writes the result as a JSON string.
 * Decompressing goes the other way around, so the output of one can be fed to the other.
 *
 * Author: Henderik A. Proper (e.proper@acm.org), TU Wien, Austria
 *
 * Version of: 18.10.2026
 *
 */

package compression

import (
	"github.com/erikproper/big-modelling-tools.go.v1/generics"
	"github.com/pkg/errors"
)

const (
	EncodingRaw    = "raw"    // lz-string compress / decompress
	EncodingBase64 = "base64" // lz-string compressToBase64 / decompressFromBase64
	EncodingURI    = "uri"    // lz-string compressToEncodedURIComponent / decompressFromEncodedURIComponent
	EncodingUTF16  = "utf16"  // lz-string compressToUTF16 / decompressFromUTF16
)

var Encodings = []string{EncodingRaw, EncodingBase64, EncodingURI, EncodingUTF16}

type (
	// A reversible compression of code unit sequences
	TCodec interface {
		Compress(units []uint16) []uint16
		Decompress(compressed []uint16) ([]uint16, error)
	}

	TLZStringCodec struct {
		Encoding string
	}

	TStringCompressor struct {
		Codec TCodec

		reporter *generics.TReporter
	}
)

func (c TLZStringCodec) Compress(units []uint16) []uint16 {
	switch c.Encoding {
	case EncodingBase64:
		return CompressToBase64(units)
	case EncodingURI:
		return CompressToEncodedURIComponent(units)
	case EncodingUTF16:
		return CompressToUTF16(units)
	default:
		return Compress(units)
	}
}

func (c TLZStringCodec) Decompress(compressed []uint16) ([]uint16, error) {
	switch c.Encoding {
	case EncodingBase64:
		return DecompressFromBase64(compressed)
	case EncodingURI:
		return DecompressFromEncodedURIComponent(compressed)
	case EncodingUTF16:
		return DecompressFromUTF16(compressed)
	default:
		return Decompress(compressed)
	}
}

// Whether the encoding is one of the supported lz-string flavours
func IsEncoding(encoding string) bool {
	for _, candidate := range Encodings {
		if candidate == encoding {
			return true
		}
	}

	return false
}

/*
 *
 * Externally visible functionality
 *
 */

// Compress the JSON string in the input document, giving a JSON string followed by a newline
func (s *TStringCompressor) CompressJSON(inputJSON []byte) ([]byte, error) {
	units, err := DecodeJSONString(inputJSON)
	if err != nil {
		return nil, err
	}

	compressed := s.Codec.Compress(units)
	s.reporter.Progress(generics.ProgressLevelDetailed, "Compressed %d code units into %d.", len(units), len(compressed))

	return append(EncodeJSONString(compressed), '\n'), nil
}

// Decompress the JSON string in the input document, giving a JSON string followed by a newline
func (s *TStringCompressor) DecompressJSON(inputJSON []byte) ([]byte, error) {
	compressed, err := DecodeJSONString(inputJSON)
	if err != nil {
		return nil, err
	}

	units, err := s.Codec.Decompress(compressed)
	if err != nil {
		return nil, errors.Wrapf(generics.ErrShape, "could not decompress the input (%s)", err)
	}
	s.reporter.Progress(generics.ProgressLevelDetailed, "Decompressed %d code units into %d.", len(compressed), len(units))

	return append(EncodeJSONString(units), '\n'), nil
}

func CreateStringCompressor(codec TCodec, reporter *generics.TReporter) *TStringCompressor {
	compressor := TStringCompressor{}

	compressor.Codec = codec
	compressor.reporter = reporter

	return &compressor
}
