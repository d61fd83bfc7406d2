/*
 *
 * Module:    BIG Modelling Tools
 * Package:   Compression
 * Component: UTF-16 JSON strings
 *
 * Raw lz-string output is a sequence of UTF-16 code units that need not be valid Unicode.
 * Go strings (and thus encoding/json) replace lone surrogates by U+FFFD, which would corrupt the
 * compressed data. Hence JSON strings are read into, and written from, code units directly,
 * following JSON.parse and JSON.stringify.
 *
 * Author: Henderik A. Proper (e.proper@acm.org), TU Wien, Austria
 *
 * Version of: 18.10.2026
 *
 */

package compression

import (
	"bytes"
	"encoding/json"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/erikproper/big-modelling-tools.go.v1/generics"
	"github.com/pkg/errors"
)

const hexDigits = "0123456789abcdef"

func isHighSurrogate(unit uint16) bool {
	return unit >= 0xd800 && unit <= 0xdbff
}

func isLowSurrogate(unit uint16) bool {
	return unit >= 0xdc00 && unit <= 0xdfff
}

func writeUnitEscape(buffer *bytes.Buffer, unit uint16) {
	buffer.WriteString(`\u`)
	buffer.WriteByte(hexDigits[unit>>12&0xf])
	buffer.WriteByte(hexDigits[unit>>8&0xf])
	buffer.WriteByte(hexDigits[unit>>4&0xf])
	buffer.WriteByte(hexDigits[unit&0xf])
}

// Encode code units as a JSON string, the way JSON.stringify does: surrogate pairs become the
// character they encode, lone surrogates and control characters are escaped.
func EncodeJSONString(units []uint16) []byte {
	buffer := bytes.Buffer{}
	buffer.WriteByte('"')

	for position := 0; position < len(units); position++ {
		unit := units[position]

		switch {
		case unit == '"':
			buffer.WriteString(`\"`)
		case unit == '\\':
			buffer.WriteString(`\\`)
		case unit == '\b':
			buffer.WriteString(`\b`)
		case unit == '\f':
			buffer.WriteString(`\f`)
		case unit == '\n':
			buffer.WriteString(`\n`)
		case unit == '\r':
			buffer.WriteString(`\r`)
		case unit == '\t':
			buffer.WriteString(`\t`)
		case unit < 0x20:
			writeUnitEscape(&buffer, unit)
		case isHighSurrogate(unit) && position+1 < len(units) && isLowSurrogate(units[position+1]):
			buffer.WriteRune(utf16.DecodeRune(rune(unit), rune(units[position+1])))
			position++
		case isHighSurrogate(unit) || isLowSurrogate(unit):
			writeUnitEscape(&buffer, unit)
		default:
			buffer.WriteRune(rune(unit))
		}
	}

	buffer.WriteByte('"')

	return buffer.Bytes()
}

// Decode a JSON document consisting of a single string into its code units.
// Escaped lone surrogates are kept as they are.
func DecodeJSONString(document []byte) ([]uint16, error) {
	if !json.Valid(document) {
		return nil, errors.Wrap(generics.ErrParse, "the input is not valid JSON")
	}

	literal := bytes.TrimSpace(document)
	if literal[0] != '"' {
		return nil, errors.Wrap(generics.ErrParse, "the input should be a JSON string")
	}

	// Being valid JSON, the literal is a well formed string between its quotes
	literal = literal[1 : len(literal)-1]

	units := []uint16{}
	for position := 0; position < len(literal); {
		if literal[position] != '\\' {
			character, size := utf8.DecodeRune(literal[position:])
			units = utf16.AppendRune(units, character)
			position += size
			continue
		}

		switch escaped := literal[position+1]; escaped {
		case 'u':
			unit, err := strconv.ParseUint(string(literal[position+2:position+6]), 16, 16)
			if err != nil {
				return nil, errors.Wrapf(generics.ErrParse, "bad escape in the input string (%s)", err)
			}
			units = append(units, uint16(unit))
			position += 6
		case 'b':
			units = append(units, '\b')
			position += 2
		case 'f':
			units = append(units, '\f')
			position += 2
		case 'n':
			units = append(units, '\n')
			position += 2
		case 'r':
			units = append(units, '\r')
			position += 2
		case 't':
			units = append(units, '\t')
			position += 2
		default: // The escaped character stands for itself: ", \ or /
			units = append(units, uint16(escaped))
			position += 2
		}
	}

	return units, nil
}

// The code units of a Go string
func UnitsOf(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// The Go string for the given code units. Lone surrogates become U+FFFD.
func StringOf(units []uint16) string {
	return string(utf16.Decode(units))
}
