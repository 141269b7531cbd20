package extractor

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// TextExtractor handles markdown and plain text uploads. Content is taken
// as UTF-8 when valid; otherwise common single-byte encodings are tried.
type TextExtractor struct{}

// fallbackEncodings, in order of likelihood for resume uploads.
var fallbackEncodings = []*charmap.Charmap{
	charmap.ISO8859_1,
	charmap.Windows1252,
}

func (e *TextExtractor) Extract(content []byte) (string, error) {
	if utf8.Valid(content) {
		return strings.TrimSpace(string(content)), nil
	}

	for _, enc := range fallbackEncodings {
		if text, err := decode(enc.NewDecoder(), content); err == nil {
			return strings.TrimSpace(text), nil
		}
	}
	return "", fmt.Errorf("text is not valid UTF-8 and no fallback encoding applies")
}

func decode(dec *encoding.Decoder, content []byte) (string, error) {
	out, err := dec.Bytes(content)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
