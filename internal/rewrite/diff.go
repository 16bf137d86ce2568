package rewrite

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"it/internal/linebuf"
)

// DiffEmitter prints a line diff between the loaded and the edited content.
// A missing or empty target diffs as empty content.
type DiffEmitter struct {
	W io.Writer
}

func (e DiffEmitter) Emit(path string, before, after *linebuf.LineBuffer) error {
	if _, err := fmt.Fprintf(e.W, "--- %s\n+++ %s\n", path, path); err != nil {
		return err
	}
	oldText := string(before.Bytes())
	if before.IsPlaceholder() {
		oldText = ""
	}
	for _, line := range DiffLines(oldText, string(after.Bytes())) {
		if _, err := io.WriteString(e.W, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// DiffLines returns every line of oldText and newText prefixed with ' ' (unchanged),
// '-' (removed) or '+' (added).
func DiffLines(oldText, newText string) []string {
	dmp := diffmatchpatch.New()
	chars1, chars2, lineArray := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffMain(chars1, chars2, false)
	lineDiffs := dmp.DiffCharsToLines(diffs, lineArray)

	var out []string
	for _, diff := range lineDiffs {
		prefix := " "
		switch diff.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		if diff.Text == "" {
			continue
		}
		for _, line := range strings.Split(strings.TrimSuffix(diff.Text, "\n"), "\n") {
			out = append(out, prefix+line)
		}
	}
	return out
}
