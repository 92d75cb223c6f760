package encoding_test

import (
	"bytes"
	"testing"

	errs "github.com/chaisql/nbt/errors"
	"github.com/chaisql/nbt/internal/encoding"
	"github.com/stretchr/testify/require"
)

func TestModifiedUTF8(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		encoded []byte
	}{
		{"ascii", "abc", []byte("abc")},
		{"nul", "a\x00b", []byte{'a', 0xC0, 0x80, 'b'}},
		{"two bytes", "ÅÄÖ", []byte("ÅÄÖ")},
		{"three bytes", "€", []byte("€")},
		{"supplementary", "😀", []byte{0xED, 0xA0, 0xBD, 0xED, 0xB8, 0x80}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := encoding.EncodeModifiedUTF8(nil, test.input)
			require.Equal(t, test.encoded, got)

			s, ok := encoding.DecodeModifiedUTF8(got)
			require.True(t, ok)
			require.Equal(t, test.input, s)
		})
	}
}

func TestModifiedUTF8Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"raw nul", []byte{0x00}},
		{"four bytes", []byte("😀")},
		{"truncated", []byte{0xE2, 0x82}},
		{"overlong", []byte{0xC1, 0x81}},
		{"lone high surrogate", []byte{0xED, 0xA0, 0xBD}},
		{"lone low surrogate", []byte{0xED, 0xB8, 0x80}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, ok := encoding.DecodeModifiedUTF8(test.input)
			require.False(t, ok)
		})
	}
}

func TestReaderWriterModifiedUTF8(t *testing.T) {
	var buf bytes.Buffer
	w := encoding.NewWriter(&buf)
	w.ModifiedUTF8 = true
	require.NoError(t, w.WriteString("x\x00😀"))
	require.NoError(t, w.Flush())

	// the default reader rejects modified UTF-8
	_, err := encoding.NewReader(bytes.NewReader(buf.Bytes())).ReadString()
	require.True(t, errs.IsInvalidString(err))

	r := encoding.NewReader(bytes.NewReader(buf.Bytes()))
	r.ModifiedUTF8 = true
	s, err := r.ReadString()
	require.NoError(t, err)
	require.Equal(t, "x\x00😀", s)
}
