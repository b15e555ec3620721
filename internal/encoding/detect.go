// Package encoding normalizes the byte encoding of uploaded CSV exports.
// POS registers and bank portals still hand out legacy single-byte
// encodings and BOM-prefixed files; everything downstream assumes UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// peekSize is how much of the stream is inspected. Enough for a BOM plus
// a meaningful chardet sample without buffering the whole file.
const peekSize = 4096

// bomRule pairs a byte-order mark with the decoder it implies. A nil
// decoder means the payload after the mark is already UTF-8.
type bomRule struct {
	mark    []byte
	strip   bool
	decoder func() transform.Transformer
}

var bomRules = []bomRule{
	{mark: []byte{0xEF, 0xBB, 0xBF}, strip: true},
	{mark: []byte{0xFF, 0xFE}, decoder: func() transform.Transformer {
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	}},
	{mark: []byte{0xFE, 0xFF}, decoder: func() transform.Transformer {
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
	}},
}

// NewUTF8Reader wraps r in a reader that yields UTF-8.
//
// The input is classified in order: a recognized BOM decides outright;
// bytes that already validate as UTF-8 pass through; otherwise chardet
// picks the charset, defaulting to Windows-1252, which is what the legacy
// POS exports in the wild actually are.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(peekSize)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peeking input: %w", err)
	}

	for _, rule := range bomRules {
		if !bytes.HasPrefix(head, rule.mark) {
			continue
		}

		if rule.strip {
			_, _ = br.Discard(len(rule.mark))
			return br, nil
		}

		return transform.NewReader(br, rule.decoder()), nil
	}

	if utf8.Valid(head) {
		return br, nil
	}

	return transform.NewReader(br, sniffDecoder(head)), nil
}

// sniffDecoder picks a single-byte decoder for content that failed UTF-8
// validation.
func sniffDecoder(head []byte) transform.Transformer {
	result, err := chardet.NewTextDetector().DetectBest(head)
	if err != nil {
		return charmap.Windows1252.NewDecoder()
	}

	switch result.Charset {
	case "ISO-8859-1", "windows-1252":
		return charmap.Windows1252.NewDecoder()
	case "ISO-8859-15":
		return charmap.ISO8859_15.NewDecoder()
	default:
		return charmap.Windows1252.NewDecoder()
	}
}
