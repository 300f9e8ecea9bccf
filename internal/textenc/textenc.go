// Package textenc decodes string-table files that may carry a byte-order
// mark. The external tooling historically produced UTF-16 output, so every
// read goes through BOM sniffing with a plain UTF-8 fallback.
package textenc

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding identifies a detected text encoding.
type Encoding int

const (
	UTF8 Encoding = iota
	UTF8Sig
	UTF16LE
	UTF16BE
)

func (e Encoding) String() string {
	switch e {
	case UTF8Sig:
		return "utf-8-sig"
	case UTF16LE:
		return "utf-16-le"
	case UTF16BE:
		return "utf-16-be"
	default:
		return "utf-8"
	}
}

// Detect inspects the first bytes of data for a known byte-order mark and
// falls back to plain UTF-8 when none matches.
func Detect(data []byte) Encoding {
	switch {
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return UTF8Sig
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		return UTF16LE
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		return UTF16BE
	default:
		return UTF8
	}
}

// Decode converts raw file bytes to a UTF-8 string according to the
// detected byte-order mark.
func Decode(data []byte) (string, error) {
	switch Detect(data) {
	case UTF8Sig:
		return string(data[3:]), nil
	case UTF16LE:
		return decodeUTF16(data, unicode.LittleEndian)
	case UTF16BE:
		return decodeUTF16(data, unicode.BigEndian)
	default:
		return string(data), nil
	}
}

func decodeUTF16(data []byte, endianness unicode.Endianness) (string, error) {
	dec := unicode.UTF16(endianness, unicode.ExpectBOM).NewDecoder()
	out, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), dec))
	if err != nil {
		return "", fmt.Errorf("decode utf-16: %w", err)
	}
	return string(out), nil
}
