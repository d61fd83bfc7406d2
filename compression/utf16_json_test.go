package compression

import (
	"testing"

	"github.com/erikproper/big-modelling-tools.go.v1/generics"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeJSONString(t *testing.T) {
	cases := []struct {
		units []uint16
		want  string
	}{
		{[]uint16{}, `""`},
		{UnitsOf(`say "hi" \ bye`), `"say \"hi\" \\ bye"`},
		{UnitsOf("\b\f\n\r\t"), `"\b\f\n\r\t"`},
		{[]uint16{0x01, 0x1f, 0x7f}, "\"\\u0001\\u001f\x7f\""},
		{UnitsOf("<a & b>"), `"<a & b>"`},
		{UnitsOf("😀"), `"😀"`},
		{[]uint16{0xd800}, `"\ud800"`},
		{[]uint16{0xdfff, 0xd83d}, `"\udfff\ud83d"`},
		{[]uint16{'a', 0xdbff, 'b'}, `"a\udbffb"`},
		{[]uint16{1413, 12342, 24822, 16384}, "\"օ〶惶䀀\""},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, string(EncodeJSONString(c.units)), "%v", c.units)
	}
}

func TestDecodeJSONString(t *testing.T) {
	cases := []struct {
		document string
		want     []uint16
	}{
		{`""`, []uint16{}},
		{" \"hello\"\n", UnitsOf("hello")},
		{`"a\"b\\c\/d"`, UnitsOf(`a"b\c/d`)},
		{`"\b\f\n\r\t"`, UnitsOf("\b\f\n\r\t")},
		{`"é€"`, UnitsOf("é€")},
		{`"😀"`, []uint16{0xd83d, 0xde00}},
		{`"\ud83d\ude00"`, []uint16{0xd83d, 0xde00}},
		{`"\ud800x"`, []uint16{0xd800, 'x'}},
	}

	for _, c := range cases {
		units, err := DecodeJSONString([]byte(c.document))
		require.NoError(t, err, c.document)
		assert.Equal(t, c.want, units, c.document)
	}
}

func TestDecodeJSONStringErrors(t *testing.T) {
	for _, document := range []string{``, `"unterminated`, `42`, `["x"]`, `{"s":"x"}`, `null`, `"a" "b"`} {
		_, err := DecodeJSONString([]byte(document))
		assert.True(t, errors.Is(err, generics.ErrParse), "document %q gave %v", document, err)
	}
}

func TestJSONStringsKeepLoneSurrogates(t *testing.T) {
	units := []uint16{'x', 0xdc00, 0xd800, 0xd800, 0xdc00, 0}

	decoded, err := DecodeJSONString(EncodeJSONString(units))
	require.NoError(t, err)
	assert.Equal(t, units, decoded)
}
