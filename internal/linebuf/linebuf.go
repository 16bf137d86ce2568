package linebuf

import (
	"bytes"
	"io"
	"strings"
)

// LineBuffer holds a file's lines without their terminators.
// It always contains at least one line.
type LineBuffer struct {
	Lines []string

	// TrailingNewline reports whether the loaded content ended with '\n'.
	TrailingNewline bool

	// placeholder is set when Lines is the synthetic [""] standing in for empty content.
	placeholder bool
}

// Load splits raw content into a LineBuffer. A nil or empty slice (missing or empty
// file) yields a single empty placeholder line.
//
// Only '\n' terminates a line; a preceding '\r' stays part of the line text so that
// CRLF content is written back unchanged.
func Load(raw []byte) *LineBuffer {
	if len(raw) == 0 {
		return &LineBuffer{Lines: []string{""}, placeholder: true}
	}
	content := string(raw)
	trailing := strings.HasSuffix(content, "\n")
	if trailing {
		content = content[:len(content)-1]
	}
	return &LineBuffer{
		Lines:           strings.Split(content, "\n"),
		TrailingNewline: trailing,
	}
}

// Read loads a LineBuffer from r, reading until EOF.
func Read(r io.Reader) (*LineBuffer, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Load(raw), nil
}

// Len returns the number of lines.
func (b *LineBuffer) Len() int {
	return len(b.Lines)
}

// IsPlaceholder reports whether the buffer is the synthetic line of an empty file.
func (b *LineBuffer) IsPlaceholder() bool {
	return b.placeholder
}

// SetLines replaces the buffer content. An empty slice re-normalizes to [""].
func (b *LineBuffer) SetLines(lines []string) {
	b.placeholder = false
	if len(lines) == 0 {
		lines = []string{""}
	}
	b.Lines = lines
}

// Clone returns a deep copy of b.
func (b *LineBuffer) Clone() *LineBuffer {
	lines := make([]string, len(b.Lines))
	copy(lines, b.Lines)
	return &LineBuffer{Lines: lines, TrailingNewline: b.TrailingNewline, placeholder: b.placeholder}
}

// Bytes serializes the buffer: lines joined by '\n', followed by one more '\n' when the
// original content had one or the buffer holds any line.
func (b *LineBuffer) Bytes() []byte {
	var out bytes.Buffer
	out.WriteString(strings.Join(b.Lines, "\n"))
	if b.TrailingNewline || len(b.Lines) > 0 {
		out.WriteByte('\n')
	}
	return out.Bytes()
}

// WriteTo writes the serialized buffer to w.
func (b *LineBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.Bytes())
	return int64(n), err
}
