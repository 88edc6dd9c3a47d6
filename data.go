package main

import (
	"sort"

	"github.com/jcorbin/gobasic/internal/lines"
	"github.com/jcorbin/gobasic/internal/value"
)

// dataTape holds every DATA value in program order, a read cursor, and where
// each contributing line's values begin.
type dataTape struct {
	values []value.Value
	cursor int
	owners []lines.Number
	starts map[lines.Number]int
}

func (tape *dataTape) add(line lines.Number, v value.Value) {
	if _, ok := tape.starts[line]; !ok {
		if tape.starts == nil {
			tape.starts = make(map[lines.Number]int)
		}
		tape.starts[line] = len(tape.values)
		tape.owners = append(tape.owners, line)
	}
	tape.values = append(tape.values, v)
}

func (tape *dataTape) read() (value.Value, error) {
	if tape.cursor >= len(tape.values) {
		return value.Value{}, errorf(ErrState, "out of DATA")
	}
	v := tape.values[tape.cursor]
	tape.cursor++
	return v, nil
}

func (tape *dataTape) restore() { tape.cursor = 0 }

// restoreTo moves the cursor to the first value of line, or of the first line
// after it that has any.
func (tape *dataTape) restoreTo(line lines.Number) {
	if i, ok := tape.starts[line]; ok {
		tape.cursor = i
		return
	}
	i := sort.Search(len(tape.owners), func(i int) bool { return tape.owners[i] > line })
	if i < len(tape.owners) {
		tape.cursor = tape.starts[tape.owners[i]]
	} else {
		tape.cursor = len(tape.values)
	}
}

func (in *Interp) restore(line lines.Number, hasLine bool) {
	if !hasLine {
		in.data.restore()
		return
	}
	in.checkLine(line)
	in.data.restoreTo(line)
}

func (in *Interp) read() value.Value {
	return in.must(in.data.read())
}
