package core

// streaming.go cleans delimited-text input before it reaches encoding/csv:
//
//   - the UTF-8 byte-order mark written by Excel on Windows is dropped
//   - invalid UTF-8 sequences are replaced with U+FFFD
//
// Both run on the fly so the file is never buffered twice.

import (
	"bufio"
	"bytes"
	"io"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// sanitizeChunkSize is the read size used by the UTF-8 sanitizer.
const sanitizeChunkSize = 32 * 1024

// WrapForCSV strips a leading BOM and sanitizes invalid UTF-8.
func WrapForCSV(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return NewUTF8Sanitizer(br)
}

// UTF8Sanitizer replaces invalid UTF-8 with the replacement character while
// carrying incomplete multi-byte sequences across reads.
type UTF8Sanitizer struct {
	r       io.Reader
	chunk   []byte
	pending []byte
	out     []byte
	err     error
}

// NewUTF8Sanitizer wraps r.
func NewUTF8Sanitizer(r io.Reader) *UTF8Sanitizer {
	return &UTF8Sanitizer{r: r}
}

// Read implements io.Reader.
func (s *UTF8Sanitizer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for len(s.out) == 0 {
		if s.err != nil {
			return 0, s.err
		}
		if s.chunk == nil {
			s.chunk = make([]byte, sanitizeChunkSize)
		}
		n, err := s.r.Read(s.chunk)
		s.pending = append(s.pending, s.chunk[:n]...)
		if err != nil {
			s.err = err
		}

		cut := len(s.pending)
		if s.err == nil {
			cut -= incompleteTail(s.pending)
		}
		s.out = bytes.ToValidUTF8(s.pending[:cut], []byte("\uFFFD"))
		s.pending = append(s.pending[:0], s.pending[cut:]...)
	}

	n := copy(p, s.out)
	s.out = s.out[n:]
	return n, nil
}

// incompleteTail reports how many trailing bytes start a multi-byte sequence
// that has not been fully read yet.
func incompleteTail(b []byte) int {
	for i := 1; i <= 3 && i <= len(b); i++ {
		c := b[len(b)-i]
		if c&0xC0 == 0x80 {
			continue // continuation byte, keep looking for the lead
		}
		if c >= 0xC0 && runeLen(c) > i {
			return i
		}
		return 0
	}
	return 0
}

// runeLen returns the expected length of a UTF-8 sequence with lead byte b.
func runeLen(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b < 0xC0:
		return 0
	case b < 0xE0:
		return 2
	case b < 0xF0:
		return 3
	default:
		return 4
	}
}
