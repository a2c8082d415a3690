package latex

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// DecodeText decodes uploaded resume bytes. UTF-8 input is returned as-is;
// anything else falls back to Latin-1, which always succeeds byte-for-byte,
// with a warning that the result may be corrupted.
func DecodeText(data []byte) (string, []string) {
	if utf8.Valid(data) {
		return string(data), nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		// Latin-1 maps every byte; an error here means truncated state only.
		decoded = data
	}
	return string(decoded), []string{
		"Resume was decoded using latin-1 encoding. Consider saving as UTF-8 for best results.",
	}
}
