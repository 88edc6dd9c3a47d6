package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jcorbin/gobasic/internal/lines"
)

type interpDumper struct {
	in  *Interp
	out io.Writer

	numWidth int
}

func (dump interpDumper) dump() {
	fmt.Fprintf(dump.out, "# Interp Dump\n")
	fmt.Fprintf(dump.out, "  pc: %v cur: %v\n", dump.in.pc, dump.in.cur)
	dump.dumpProg()
	dump.dumpVars()
	dump.dumpStacks()
	dump.dumpData()
	dump.dumpFns()
}

func (dump *interpDumper) dumpProg() {
	if dump.in.prog.Len() == 0 {
		return
	}
	if dump.numWidth == 0 {
		last, _ := dump.in.prog.Last()
		dump.numWidth = len(fmt.Sprint(last))
	}
	fmt.Fprintf(dump.out, "# Program\n")
	dump.in.prog.Each(func(l lines.Line) bool {
		mark := " "
		if l.Num == dump.in.cur.line {
			mark = ">"
		}
		fmt.Fprintf(dump.out, "%v %*v %v\n", mark, dump.numWidth, l.Num, l.Text)
		return true
	})
}

func (dump *interpDumper) dumpVars() {
	names := dump.in.vars.names()
	if len(names) == 0 {
		return
	}
	fmt.Fprintf(dump.out, "# Variables\n")
	for _, name := range names {
		v, _ := dump.in.vars.get(name)
		fmt.Fprintf(dump.out, "  %v = %v\n", name, v)
	}
}

func (dump *interpDumper) dumpStacks() {
	if len(dump.in.fors) > 0 {
		fmt.Fprintf(dump.out, "# FOR Stack\n")
		for i, f := range dump.in.fors {
			fmt.Fprintf(dump.out, "  [%v] %v TO %v STEP %v @%v\n", i, f.name, f.target, f.step, f.body)
		}
	}
	if len(dump.in.gosubs) > 0 {
		fmt.Fprintf(dump.out, "# GOSUB Stack\n")
		for i, ret := range dump.in.gosubs {
			fmt.Fprintf(dump.out, "  [%v] @%v\n", i, ret)
		}
	}
}

func (dump *interpDumper) dumpData() {
	tape := &dump.in.data
	if len(tape.values) == 0 {
		return
	}
	fmt.Fprintf(dump.out, "# Data @%v/%v\n", tape.cursor, len(tape.values))
	for i, line := range tape.owners {
		end := len(tape.values)
		if i+1 < len(tape.owners) {
			end = tape.starts[tape.owners[i+1]]
		}
		vals := tape.values[tape.starts[line]:end]
		parts := make([]string, len(vals))
		for j, v := range vals {
			parts[j] = v.String()
		}
		fmt.Fprintf(dump.out, "  %v: %v\n", line, strings.Join(parts, ", "))
	}
}

func (dump *interpDumper) dumpFns() {
	if len(dump.in.fns) == 0 {
		return
	}
	names := make([]string, 0, len(dump.in.fns))
	for name := range dump.in.fns {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintf(dump.out, "# Functions\n")
	for _, name := range names {
		fn := dump.in.fns[name]
		fmt.Fprintf(dump.out, "  FN %v(%v) = %v\n", name, fn.param, fn.body)
	}
}

// Snapshot is a plain copy of interpreter state, for structured dumping.
type Snapshot struct {
	PC        string
	Vars      map[string]string
	Fors      []string
	Gosubs    []string
	Functions map[string]string
	Data      []string
	DataIndex int
}

// Snapshot copies out the current interpreter state.
func (in *Interp) Snapshot() Snapshot {
	snap := Snapshot{
		PC:        in.pc.String(),
		Vars:      make(map[string]string, len(in.vars.vars)),
		Functions: make(map[string]string, len(in.fns)),
		DataIndex: in.data.cursor,
	}
	for name, v := range in.vars.vars {
		snap.Vars[name] = v.String()
	}
	for _, f := range in.fors {
		snap.Fors = append(snap.Fors, fmt.Sprintf("%v TO %v STEP %v @%v", f.name, f.target, f.step, f.body))
	}
	for _, ret := range in.gosubs {
		snap.Gosubs = append(snap.Gosubs, ret.String())
	}
	for name, fn := range in.fns {
		snap.Functions[name] = fmt.Sprintf("(%v) = %v", fn.param, fn.body)
	}
	for _, v := range in.data.values {
		snap.Data = append(snap.Data, v.String())
	}
	return snap
}
