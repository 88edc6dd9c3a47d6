// Package lines implements the ordered line table holding a BASIC program's
// text.
package lines

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/btree"
)

// Number is a program line number.
type Number = uint64

// End is the sentinel line number meaning "past the end of the program"; it
// is always a valid jump target and never holds text.
const End Number = math.MaxUint64

// Errors returned when adding lines out of order.
var (
	ErrOrder   = errors.New("line numbers must increase")
	ErrNoPrior = errors.New("no prior line to continue")
	ErrEnd     = errors.New("line number reserved")
)

// Line is one stored program line.
type Line struct {
	Num  Number
	Text string
}

// Less orders lines by number.
func (l Line) Less(than btree.Item) bool {
	return l.Num < than.(Line).Num
}

// Table holds lines in ascending order. Lines may only be appended with
// strictly increasing numbers; the last line may be extended in place.
type Table struct {
	tree *btree.BTree
	last Number
}

func (t *Table) init() {
	if t.tree == nil {
		t.tree = btree.New(4)
	}
}

// Len returns the number of stored lines.
func (t *Table) Len() int {
	if t.tree == nil {
		return 0
	}
	return t.tree.Len()
}

// Reset removes all lines.
func (t *Table) Reset() {
	if t.tree != nil {
		t.tree.Clear(false)
	}
	t.last = 0
}

// Add stores text under num, which must be greater than every line already
// stored.
func (t *Table) Add(num Number, text string) error {
	t.init()
	if num == End {
		return fmt.Errorf("%w: %v", ErrEnd, num)
	}
	if t.tree.Len() > 0 && num <= t.last {
		return fmt.Errorf("%w: %v after %v", ErrOrder, num, t.last)
	}
	t.tree.ReplaceOrInsert(Line{num, text})
	t.last = num
	return nil
}

// Append extends the most recently added line with more text.
func (t *Table) Append(text string) error {
	if t.Len() == 0 {
		return ErrNoPrior
	}
	prior := t.tree.Get(Line{Num: t.last}).(Line)
	prior.Text += text
	t.tree.ReplaceOrInsert(prior)
	return nil
}

// Last returns the number of the most recently added line.
func (t *Table) Last() (Number, bool) {
	return t.last, t.Len() > 0
}

// Has reports whether num is a stored line.
func (t *Table) Has(num Number) bool {
	return t.Len() > 0 && t.tree.Has(Line{Num: num})
}

// Get returns the text of line num.
func (t *Table) Get(num Number) (string, bool) {
	if t.Len() == 0 {
		return "", false
	}
	if item := t.tree.Get(Line{Num: num}); item != nil {
		return item.(Line).Text, true
	}
	return "", false
}

// Seek returns the first line numbered at or after num.
func (t *Table) Seek(num Number) (line Line, ok bool) {
	if t.Len() == 0 {
		return line, false
	}
	t.tree.AscendGreaterOrEqual(Line{Num: num}, func(item btree.Item) bool {
		line, ok = item.(Line), true
		return false
	})
	return line, ok
}

// Each calls fn for every line in order until it returns false.
func (t *Table) Each(fn func(Line) bool) {
	if t.Len() == 0 {
		return
	}
	t.tree.Ascend(func(item btree.Item) bool {
		return fn(item.(Line))
	})
}
