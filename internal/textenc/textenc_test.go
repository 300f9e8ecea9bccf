package textenc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utf16le(s string) []byte {
	buf := []byte{0xFF, 0xFE}
	for _, r := range s {
		buf = append(buf, byte(r), byte(r>>8))
	}
	return buf
}

func utf16be(s string) []byte {
	buf := []byte{0xFE, 0xFF}
	for _, r := range s {
		buf = append(buf, byte(r>>8), byte(r))
	}
	return buf
}

func TestDetect(t *testing.T) {
	cases := []struct {
		data []byte
		want Encoding
	}{
		{[]byte{0xEF, 0xBB, 0xBF, 'a'}, UTF8Sig},
		{[]byte{0xFF, 0xFE, 'a', 0}, UTF16LE},
		{[]byte{0xFE, 0xFF, 0, 'a'}, UTF16BE},
		{[]byte("plain text"), UTF8},
		{nil, UTF8},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Detect(tc.data))
	}
}

func TestDecodeUTF8Sig(t *testing.T) {
	text, err := Decode([]byte{0xEF, 0xBB, 0xBF, 'h', 'i'})
	require.NoError(t, err)
	assert.Equal(t, "hi", text)
}

func TestDecodeUTF16(t *testing.T) {
	text, err := Decode(utf16le(";idspace=42\nkey|text"))
	require.NoError(t, err)
	assert.Equal(t, ";idspace=42\nkey|text", text)

	text, err = Decode(utf16be("key|zażółć"))
	require.NoError(t, err)
	assert.Equal(t, "key|zażółć", text)
}

func TestDecodePlainUTF8Fallback(t *testing.T) {
	text, err := Decode([]byte("key|text"))
	require.NoError(t, err)
	assert.Equal(t, "key|text", text)
}
