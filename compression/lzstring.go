/*
 *
 * Module:    BIG Modelling Tools
 * Package:   Compression
 * Component: lz-string
 *
 * The lz-string compression scheme, working on UTF-16 code units so that the compressed output is
 * identical to that of the lz-string JavaScript library the viewers use for decompression.
 * Raw compression packs 16 bits in each output unit, which may give lone surrogates. The base64,
 * URI and UTF-16 flavours trade some compactness for output that survives any transport.
 *
 * Author: Henderik A. Proper (e.proper@acm.org), TU Wien, Austria
 *
 * Version of: 18.10.2026
 *
 */

package compression

import (
	"github.com/pkg/errors"
)

const (
	keyStrBase64  = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/="
	keyStrURISafe = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+-$"

	utf16Offset = 32 // Keeps the UTF-16 flavour clear of control characters

	codeCharacter8  = 0 // Next up: a new 8 bit character
	codeCharacter16 = 1 // Next up: a new 16 bit character
	codeEndOfStream = 2
)

var ErrCorruptInput = errors.New("corrupt lz-string input")

type (
	tBitWriter struct {
		bitsPerUnit int
		unitFor     func(int) uint16

		units    []uint16
		value    int
		position int
	}

	tBitReader struct {
		length     int
		resetValue int
		valueAt    func(int) int

		value    int
		position int
		index    int
	}

	tCompressor struct {
		writer tBitWriter

		dictionary         map[string]int
		dictionaryToCreate map[string]bool

		dictionarySize int
		enlargeIn      int
		numBits        int
	}
)

/*
 * Bit level reading and writing
 */

func (w *tBitWriter) writeBit(bit int) {
	w.value = (w.value << 1) | bit
	if w.position == w.bitsPerUnit-1 {
		w.position = 0
		w.units = append(w.units, w.unitFor(w.value))
		w.value = 0
	} else {
		w.position++
	}
}

// Write the lowest numBits bits of value, least significant bit first
func (w *tBitWriter) writeBits(numBits, value int) {
	for i := 0; i < numBits; i++ {
		w.writeBit(value & 1)
		value >>= 1
	}
}

// Pad the last unit with zero bits
func (w *tBitWriter) flush() []uint16 {
	for {
		w.value <<= 1
		if w.position == w.bitsPerUnit-1 {
			w.units = append(w.units, w.unitFor(w.value))
			return w.units
		}
		w.position++
	}
}

func (r *tBitReader) readBits(numBits int) int {
	bits := 0
	for power := 1; power != 1<<numBits; power <<= 1 {
		bit := r.value & r.position
		r.position >>= 1
		if r.position == 0 {
			r.position = r.resetValue
			r.value = r.valueAt(r.index)
			r.index++
		}
		if bit > 0 {
			bits |= power
		}
	}

	return bits
}

/*
 * Compression
 */

// Dictionary keys are the code units of a phrase, two bytes per unit
func unitKey(unit uint16) string {
	return string([]byte{byte(unit >> 8), byte(unit)})
}

func firstUnit(phrase string) uint16 {
	return uint16(phrase[0])<<8 | uint16(phrase[1])
}

func (c *tCompressor) countCode() {
	c.enlargeIn--
	if c.enlargeIn == 0 {
		c.enlargeIn = 1 << c.numBits
		c.numBits++
	}
}

// Write the code for a phrase. A single unit that is new to the dictionary is written out in full.
func (c *tCompressor) writePhrase(phrase string) {
	if c.dictionaryToCreate[phrase] {
		unit := firstUnit(phrase)
		if unit < 256 {
			c.writer.writeBits(c.numBits, codeCharacter8)
			c.writer.writeBits(8, int(unit))
		} else {
			c.writer.writeBits(c.numBits, codeCharacter16)
			c.writer.writeBits(16, int(unit))
		}
		c.countCode()
		delete(c.dictionaryToCreate, phrase)
	} else {
		c.writer.writeBits(c.numBits, c.dictionary[phrase])
	}
	c.countCode()
}

func compress(uncompressed []uint16, bitsPerUnit int, unitFor func(int) uint16) []uint16 {
	c := tCompressor{}
	c.writer = tBitWriter{bitsPerUnit: bitsPerUnit, unitFor: unitFor, units: []uint16{}}
	c.dictionary = map[string]int{}
	c.dictionaryToCreate = map[string]bool{}
	c.dictionarySize = 3
	c.enlargeIn = 2
	c.numBits = 2

	phrase := ""
	for _, unit := range uncompressed {
		character := unitKey(unit)
		if _, known := c.dictionary[character]; !known {
			c.dictionary[character] = c.dictionarySize
			c.dictionarySize++
			c.dictionaryToCreate[character] = true
		}

		extendedPhrase := phrase + character
		if _, known := c.dictionary[extendedPhrase]; known {
			phrase = extendedPhrase
			continue
		}

		c.writePhrase(phrase)

		c.dictionary[extendedPhrase] = c.dictionarySize
		c.dictionarySize++
		phrase = character
	}

	if phrase != "" {
		c.writePhrase(phrase)
	}

	c.writer.writeBits(c.numBits, codeEndOfStream)

	return c.writer.flush()
}

/*
 * Decompression
 */

func appendUnit(phrase []uint16, unit uint16) []uint16 {
	extended := make([]uint16, len(phrase), len(phrase)+1)
	copy(extended, phrase)

	return append(extended, unit)
}

func decompress(length, resetValue int, valueAt func(int) int) ([]uint16, error) {
	reader := tBitReader{length: length, resetValue: resetValue, valueAt: valueAt}
	reader.value = valueAt(0)
	reader.position = resetValue
	reader.index = 1

	// Codes 0 to 2 are reserved for new characters and the end of the stream
	dictionary := [][]uint16{nil, nil, nil}
	enlargeIn := 4
	numBits := 3

	var character []uint16
	switch reader.readBits(2) {
	case codeCharacter8:
		character = []uint16{uint16(reader.readBits(8))}
	case codeCharacter16:
		character = []uint16{uint16(reader.readBits(16))}
	case codeEndOfStream:
		return []uint16{}, nil
	default:
		return nil, errors.Wrap(ErrCorruptInput, "unknown first code")
	}

	dictionary = append(dictionary, character)
	phrase := character
	result := append([]uint16{}, character...)

	for {
		if reader.index > length {
			return nil, errors.Wrap(ErrCorruptInput, "missing end of stream")
		}

		code := reader.readBits(numBits)
		switch code {
		case codeCharacter8:
			dictionary = append(dictionary, []uint16{uint16(reader.readBits(8))})
			code = len(dictionary) - 1
			enlargeIn--
		case codeCharacter16:
			dictionary = append(dictionary, []uint16{uint16(reader.readBits(16))})
			code = len(dictionary) - 1
			enlargeIn--
		case codeEndOfStream:
			return result, nil
		}

		if enlargeIn == 0 {
			enlargeIn = 1 << numBits
			numBits++
		}

		var entry []uint16
		switch {
		case code < len(dictionary):
			entry = dictionary[code]
		case code == len(dictionary):
			entry = appendUnit(phrase, phrase[0])
		default:
			return nil, errors.Wrapf(ErrCorruptInput, "unknown code %d", code)
		}
		result = append(result, entry...)

		dictionary = append(dictionary, appendUnit(phrase, entry[0]))
		enlargeIn--

		phrase = entry

		if enlargeIn == 0 {
			enlargeIn = 1 << numBits
			numBits++
		}
	}
}

func unitsAt(units []uint16, offset int) func(int) int {
	return func(index int) int {
		if index >= len(units) {
			return 0
		}

		return int(units[index]) - offset
	}
}

func alphabetAt(input []uint16, alphabet string) func(int) int {
	values := map[uint16]int{}
	for position := 0; position < len(alphabet); position++ {
		values[uint16(alphabet[position])] = position
	}

	return func(index int) int {
		if index >= len(input) {
			return 0
		}

		return values[input[index]]
	}
}

func alphabetUnit(alphabet string) func(int) uint16 {
	return func(value int) uint16 {
		return uint16(alphabet[value])
	}
}

/*
 *
 * Externally visible functionality
 *
 */

func Compress(uncompressed []uint16) []uint16 {
	return compress(uncompressed, 16, func(value int) uint16 {
		return uint16(value)
	})
}

func Decompress(compressed []uint16) ([]uint16, error) {
	if len(compressed) == 0 {
		return nil, errors.Wrap(ErrCorruptInput, "empty input")
	}

	return decompress(len(compressed), 32768, unitsAt(compressed, 0))
}

func CompressToBase64(uncompressed []uint16) []uint16 {
	compressed := compress(uncompressed, 6, alphabetUnit(keyStrBase64))
	for len(compressed)%4 != 0 {
		compressed = append(compressed, '=')
	}

	return compressed
}

func DecompressFromBase64(compressed []uint16) ([]uint16, error) {
	if len(compressed) == 0 {
		return nil, errors.Wrap(ErrCorruptInput, "empty input")
	}

	return decompress(len(compressed), 32, alphabetAt(compressed, keyStrBase64))
}

func CompressToEncodedURIComponent(uncompressed []uint16) []uint16 {
	return compress(uncompressed, 6, alphabetUnit(keyStrURISafe))
}

func DecompressFromEncodedURIComponent(compressed []uint16) ([]uint16, error) {
	if len(compressed) == 0 {
		return nil, errors.Wrap(ErrCorruptInput, "empty input")
	}

	// Form encoding may have turned the pluses into spaces
	restored := make([]uint16, len(compressed))
	for position, unit := range compressed {
		if unit == ' ' {
			unit = '+'
		}
		restored[position] = unit
	}

	return decompress(len(restored), 32, alphabetAt(restored, keyStrURISafe))
}

func CompressToUTF16(uncompressed []uint16) []uint16 {
	compressed := compress(uncompressed, 15, func(value int) uint16 {
		return uint16(value + utf16Offset)
	})

	return append(compressed, ' ')
}

func DecompressFromUTF16(compressed []uint16) ([]uint16, error) {
	if len(compressed) == 0 {
		return nil, errors.Wrap(ErrCorruptInput, "empty input")
	}

	return decompress(len(compressed), 16384, unitsAt(compressed, utf16Offset))
}
