package padron

import (
	"bytes"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodePermissive returns data as valid UTF-8: a leading BOM (commonly added
// by Windows exports) is stripped and invalid byte sequences are replaced
// with U+FFFD. Decoding never fails; malformed uploads degrade instead of
// aborting the ingest.
func decodePermissive(data []byte) []byte {
	data = bytes.TrimPrefix(data, utf8BOM)

	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune('�')
			data = data[1:]
		} else {
			buf.WriteRune(r)
			data = data[size:]
		}
	}

	return buf.Bytes()
}
