package engine

import (
	"errors"
	"fmt"

	"it/internal/linebuf"
	"it/pkg/lineop"
)

// ErrAddressOutOfRange matches every AddressError.
var ErrAddressOutOfRange = errors.New("line address out of range")

// AddressErrorKind tells which end of a clear range fell outside the file.
type AddressErrorKind int

const (
	StartBeyondEnd AddressErrorKind = iota
	EndBeyondEnd
)

// AddressError is returned by Apply when a clear range does not fit the buffer.
type AddressError struct {
	Kind    AddressErrorKind
	Address int // the offending 1-based address (END for EndBeyondEnd)
	Len     int // buffer length at the time of the check
}

func (e *AddressError) Error() string {
	switch e.Kind {
	case StartBeyondEnd:
		return fmt.Sprintf("start line %d is beyond file length (%d lines)", e.Address, e.Len)
	default:
		return fmt.Sprintf("end line %d is beyond file length (%d lines)", e.Address, e.Len)
	}
}

func (e *AddressError) Is(target error) bool {
	return target == ErrAddressOutOfRange
}

// Apply performs op on buf in place. On error buf is left untouched.
func Apply(buf *linebuf.LineBuffer, op lineop.Operation) error {
	switch op.Kind {
	case lineop.KindInsert:
		insert(buf, op.Target().Index(), op.Text, op.Overwrite)
		return nil
	case lineop.KindAppend:
		appendLine(buf, op.Text)
		return nil
	case lineop.KindClear:
		return clearRange(buf, op.Range)
	default:
		appendLine(buf, "")
		return nil
	}
}

// appendLine adds text as the last line. The placeholder line of an empty file is
// replaced so that appending to nothing yields exactly one line.
func appendLine(buf *linebuf.LineBuffer, text string) {
	if buf.IsPlaceholder() {
		buf.SetLines([]string{text})
		return
	}
	buf.SetLines(append(buf.Lines, text))
}

// insert grows the buffer with empty lines when index is past the end, then either
// replaces or inserts at index.
func insert(buf *linebuf.LineBuffer, index int, text string, overwrite bool) {
	lines := buf.Lines
	for len(lines) <= index {
		lines = append(lines, "")
	}
	if overwrite {
		lines[index] = text
	} else {
		lines = append(lines, "")
		copy(lines[index+1:], lines[index:])
		lines[index] = text
	}
	buf.SetLines(lines)
}

func clearRange(buf *linebuf.LineBuffer, r lineop.ClearRange) error {
	n := buf.Len()
	start := r.Start.Index()
	if start >= n {
		return &AddressError{Kind: StartBeyondEnd, Address: int(r.Start), Len: n}
	}
	end := n
	if r.End != nil {
		end = int(*r.End)
	}
	if end > n {
		return &AddressError{Kind: EndBeyondEnd, Address: end, Len: n}
	}
	if end < start {
		end = start
	}
	kept := make([]string, 0, n-(end-start))
	kept = append(kept, buf.Lines[:start]...)
	kept = append(kept, buf.Lines[end:]...)
	buf.SetLines(kept)
	return nil
}
