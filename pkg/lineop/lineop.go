package lineop

import (
	"fmt"
	"strconv"
)

// Address is a 1-based line number as typed by the user.
type Address int

// Index converts the address to a 0-based index, saturating at 0.
func (a Address) Index() int {
	if a <= 0 {
		return 0
	}
	return int(a) - 1
}

// ClearRange represents the lines removed by a clear operation.
// End is nil when the range runs to the end of the file.
type ClearRange struct {
	Start Address
	End   *Address
}

// String returns the range in the START[,END] form accepted on the command line.
func (r ClearRange) String() string {
	if r.End == nil {
		return strconv.Itoa(int(r.Start))
	}
	return fmt.Sprintf("%d,%d", r.Start, *r.End)
}

// Kind identifies which operation variant is active.
type Kind int

const (
	KindAppendEmpty Kind = iota
	KindInsert
	KindAppend
	KindClear
)

// Operation is the single mutation applied to every target file of a run.
// Only the fields belonging to Kind are meaningful.
type Operation struct {
	Kind      Kind
	Text      string
	At        *Address // insert/overwrite target, line 1 when nil
	Overwrite bool
	Range     ClearRange
}

func Insert(text string, at *Address, overwrite bool) Operation {
	return Operation{Kind: KindInsert, Text: text, At: at, Overwrite: overwrite}
}

func Append(text string) Operation {
	return Operation{Kind: KindAppend, Text: text}
}

func Clear(r ClearRange) Operation {
	return Operation{Kind: KindClear, Range: r}
}

// AppendEmpty is the operation used when no insert, append or clear flag is given.
func AppendEmpty() Operation {
	return Operation{Kind: KindAppendEmpty}
}

// Target returns the insert/overwrite address, defaulting to line 1.
func (o Operation) Target() Address {
	if o.At == nil {
		return 1
	}
	return *o.At
}

// String returns a short human-readable description, used in log fields.
func (o Operation) String() string {
	switch o.Kind {
	case KindInsert:
		verb := "insert"
		if o.Overwrite {
			verb = "overwrite"
		}
		return fmt.Sprintf("%s %q at line %d", verb, o.Text, o.Target())
	case KindAppend:
		return fmt.Sprintf("append %q", o.Text)
	case KindClear:
		return fmt.Sprintf("clear %s", o.Range)
	default:
		return "append empty line"
	}
}

// WithText returns o carrying text read interactively. Clear ignores it, Append takes
// it as the appended line and every other operation becomes an insert of text.
func (o Operation) WithText(text string) Operation {
	switch o.Kind {
	case KindClear:
		return o
	case KindAppend, KindInsert:
		o.Text = text
		return o
	default:
		return Insert(text, nil, false)
	}
}
