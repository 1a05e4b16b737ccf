package core

import (
	"bytes"
	"io"
	"testing"
	"testing/iotest"
)

func TestWrapForCSV(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "file with BOM",
			input:    append([]byte{0xEF, 0xBB, 0xBF}, []byte("hello,world")...),
			expected: "hello,world",
		},
		{
			name:     "file without BOM",
			input:    []byte("hello,world"),
			expected: "hello,world",
		},
		{
			name:     "empty file",
			input:    []byte{},
			expected: "",
		},
		{
			name:     "only BOM",
			input:    []byte{0xEF, 0xBB, 0xBF},
			expected: "",
		},
		{
			name:     "partial BOM at start",
			input:    []byte{0xEF, 0xBB, 'a'},
			expected: "\uFFFDa",
		},
		{
			name:     "BOM and invalid byte",
			input:    []byte{0xEF, 0xBB, 0xBF, 'h', 'e', 0x80, 'l', 'o'},
			expected: "he\uFFFDlo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := io.ReadAll(WrapForCSV(bytes.NewReader(tt.input)))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(result) != tt.expected {
				t.Errorf("got %q, want %q", string(result), tt.expected)
			}
		})
	}
}

func TestUTF8Sanitizer(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{"valid ASCII", []byte("hello,world"), "hello,world"},
		{"valid multibyte", []byte("José,Müller"), "José,Müller"},
		{"invalid single byte", []byte{'h', 'e', 0x80, 'l', 'o'}, "he\uFFFDlo"},
		{"truncated sequence at end", []byte{'a', 0xC3}, "a\uFFFD"},
		{"empty input", []byte{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := io.ReadAll(NewUTF8Sanitizer(bytes.NewReader(tt.input)))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(result) != tt.expected {
				t.Errorf("got %q, want %q", string(result), tt.expected)
			}
		})
	}
}

func TestUTF8Sanitizer_SplitAcrossReads(t *testing.T) {
	// One byte per Read splits every multi-byte sequence.
	input := []byte("café 日本 \U0001F600")
	r := NewUTF8Sanitizer(iotest.OneByteReader(bytes.NewReader(input)))

	result, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(result, input) {
		t.Errorf("got %q, want %q", result, input)
	}
}

func TestUTF8Sanitizer_PropagatesError(t *testing.T) {
	r := NewUTF8Sanitizer(iotest.ErrReader(io.ErrUnexpectedEOF))
	if _, err := io.ReadAll(r); err != io.ErrUnexpectedEOF {
		t.Errorf("err = %v, want %v", err, io.ErrUnexpectedEOF)
	}
}
