package rewrite

import (
	"io"

	"it/internal/linebuf"
)

// Emitter receives the result of an edit instead of the target file.
type Emitter interface {
	// Emit writes the outcome of editing path. before is the buffer as loaded,
	// after the buffer the target file would be replaced with.
	Emit(path string, before, after *linebuf.LineBuffer) error
}

// ContentEmitter prints the full resulting content, byte-for-byte what a commit
// would write to the file.
type ContentEmitter struct {
	W io.Writer
}

func (e ContentEmitter) Emit(path string, before, after *linebuf.LineBuffer) error {
	_, err := after.WriteTo(e.W)
	return err
}

// AppendedLine returns the bytes the in-place append writes at the end of a file.
func AppendedLine(text string) []byte {
	return []byte(text + "\n")
}

// CanAppendInPlace reports whether writing AppendedLine at the end of a file whose
// final byte is last gives the same bytes as loading, appending and saving it.
// ok is false for a missing or empty file.
func CanAppendInPlace(last byte, ok bool) bool {
	return !ok || last == '\n'
}
