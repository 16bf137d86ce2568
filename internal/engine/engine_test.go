package engine

import (
	"errors"
	"reflect"
	"testing"

	"it/internal/linebuf"
	"it/pkg/lineop"
)

func addr(n int) *lineop.Address {
	a := lineop.Address(n)
	return &a
}

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		content string
		op      lineop.Operation
		want    string
	}{
		{"insert at line 2", "Line 1\nLine 2\n", lineop.Insert("New Line", addr(2), false), "Line 1\nNew Line\nLine 2\n"},
		{"overwrite line 2", "Line 1\nLine 2\n", lineop.Insert("X", addr(2), true), "Line 1\nX\n"},
		{"insert defaults to line 1", "A\n", lineop.Insert("top", nil, false), "top\nA\n"},
		{"insert past end grows", "A\n", lineop.Insert("E", addr(4), false), "A\n\n\nE\n\n"},
		{"overwrite past end grows", "A\n", lineop.Insert("E", addr(4), true), "A\n\n\nE\n"},
		{"overwrite without text blanks line", "A\nB\n", lineop.Insert("", addr(1), true), "\nB\n"},
		{"insert into empty file", "", lineop.Insert("X", nil, false), "X\n\n"},
		{"append", "A\n", lineop.Append("B"), "A\nB\n"},
		{"append to empty file", "", lineop.Append("Hi"), "Hi\n"},
		{"append to blank line file", "\n", lineop.Append("Hi"), "\nHi\n"},
		{"append without trailing newline", "A", lineop.Append("B"), "A\nB\n"},
		{"default appends empty line", "A\n", lineop.AppendEmpty(), "A\n\n"},
		{"default on empty file", "", lineop.AppendEmpty(), "\n"},
		{"clear to end", "A\nB\nC\n", lineop.Clear(lineop.ClearRange{Start: 2}), "A\n"},
		{"clear range", "A\nB\nC\n", lineop.Clear(lineop.ClearRange{Start: 2, End: addr(3)}), "A\n"},
		{"clear middle", "A\nB\nC\nD\n", lineop.Clear(lineop.ClearRange{Start: 2, End: addr(3)}), "A\nD\n"},
		{"clear everything", "A\nB\n", lineop.Clear(lineop.ClearRange{Start: 1}), "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := linebuf.Load([]byte(tt.content))
			if err := Apply(buf, tt.op); err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if got := string(buf.Bytes()); got != tt.want {
				t.Errorf("Apply() = %q, want %q", got, tt.want)
			}
			if buf.Len() < 1 {
				t.Errorf("buffer emptied: %q", buf.Lines)
			}
		})
	}
}

func TestApplyClearErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		r        lineop.ClearRange
		wantKind AddressErrorKind
	}{
		{"start beyond end", "A\n", lineop.ClearRange{Start: 5}, StartBeyondEnd},
		{"start just past end", "A\nB\n", lineop.ClearRange{Start: 3}, StartBeyondEnd},
		{"end beyond end", "A\nB\n", lineop.ClearRange{Start: 1, End: addr(3)}, EndBeyondEnd},
		{"huge start", "A\n", lineop.ClearRange{Start: 3000000000}, StartBeyondEnd},
		{"huge end", "A\n", lineop.ClearRange{Start: 1, End: addr(3000000000)}, EndBeyondEnd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := linebuf.Load([]byte(tt.content))
			before := append([]string(nil), buf.Lines...)

			err := Apply(buf, lineop.Clear(tt.r))
			if !errors.Is(err, ErrAddressOutOfRange) {
				t.Fatalf("Apply() error = %v, want ErrAddressOutOfRange", err)
			}
			var addrErr *AddressError
			if !errors.As(err, &addrErr) || addrErr.Kind != tt.wantKind {
				t.Errorf("Apply() error = %#v, want kind %v", err, tt.wantKind)
			}
			if !reflect.DeepEqual(buf.Lines, before) {
				t.Errorf("buffer modified on error: %q", buf.Lines)
			}
		})
	}
}

func TestInsertProperties(t *testing.T) {
	base := []string{"a", "b", "c"}
	for i := 0; i <= len(base); i++ {
		buf := linebuf.Load([]byte("a\nb\nc\n"))
		insert(buf, i, "new", false)
		if buf.Len() != len(base)+1 {
			t.Fatalf("insert at %d: len = %d", i, buf.Len())
		}
		if buf.Lines[i] != "new" {
			t.Errorf("insert at %d: line = %q", i, buf.Lines[i])
		}
		rest := append(append([]string(nil), buf.Lines[:i]...), buf.Lines[i+1:]...)
		if !reflect.DeepEqual(rest, base) {
			t.Errorf("insert at %d reordered lines: %q", i, buf.Lines)
		}
	}
}

func TestOverwriteProperties(t *testing.T) {
	for i := 0; i < 6; i++ {
		buf := linebuf.Load([]byte("a\nb\nc\n"))
		insert(buf, i, "new", true)
		wantLen := 3
		if i >= 3 {
			wantLen = i + 1
		}
		if buf.Len() != wantLen {
			t.Errorf("overwrite at %d: len = %d, want %d", i, buf.Len(), wantLen)
		}
		if buf.Lines[i] != "new" {
			t.Errorf("overwrite at %d: line = %q", i, buf.Lines[i])
		}
		for j := 3; j < i; j++ {
			if buf.Lines[j] != "" {
				t.Errorf("overwrite at %d: padding line %d = %q", i, j, buf.Lines[j])
			}
		}
	}
}

func TestClearRemovesExactCount(t *testing.T) {
	for start := 1; start <= 5; start++ {
		for end := start; end <= 5; end++ {
			buf := linebuf.Load([]byte("1\n2\n3\n4\n5\n"))
			if err := Apply(buf, lineop.Clear(lineop.ClearRange{Start: lineop.Address(start), End: addr(end)})); err != nil {
				t.Fatalf("clear %d,%d: %v", start, end, err)
			}
			want := 5 - (end - start + 1)
			if want == 0 {
				want = 1
			}
			if buf.Len() != want {
				t.Errorf("clear %d,%d: len = %d", start, end, buf.Len())
			}
		}
	}
}

func TestRoundTripAfterOperation(t *testing.T) {
	ops := []lineop.Operation{
		lineop.Insert("new", addr(2), false),
		lineop.Insert("new", addr(6), false),
		lineop.Insert("new", addr(1), true),
		lineop.Insert("", addr(4), true),
		lineop.Append("tail"),
		lineop.Append(""),
		lineop.AppendEmpty(),
		lineop.Clear(lineop.ClearRange{Start: 2}),
		lineop.Clear(lineop.ClearRange{Start: 1, End: addr(1)}),
		lineop.Clear(lineop.ClearRange{Start: 1}),
	}
	for _, content := range []string{"", "\n", "A\n", "A\nB\nC\n", "A\n\nB", "x\r\ny\r\n"} {
		for _, op := range ops {
			buf := linebuf.Load([]byte(content))
			if err := Apply(buf, op); err != nil {
				continue
			}
			written := buf.Bytes()
			reloaded := linebuf.Load(written)
			if !reflect.DeepEqual(reloaded.Lines, buf.Lines) {
				t.Errorf("%v on %q: reloaded %q, want %q", op, content, reloaded.Lines, buf.Lines)
			}
			if got := string(reloaded.Bytes()); got != string(written) {
				t.Errorf("%v on %q: second write %q, first %q", op, content, got, written)
			}
		}
	}
}
