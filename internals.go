package main

import (
	"github.com/jcorbin/gobasic/internal/lines"
	"github.com/jcorbin/gobasic/internal/value"
)

func (in *Interp) must(v value.Value, err error) value.Value {
	if err != nil {
		in.halt(err)
	}
	return v
}

func (in *Interp) checkLine(line lines.Number) {
	if line != lines.End && !in.prog.Has(line) {
		in.halt(errorf(ErrName, "undefined line %v", line))
	}
}

// jump continues execution at the start of line, which must exist.
func (in *Interp) jump(line lines.Number) {
	in.checkLine(line)
	in.setPC(pc{line: line})
}

func (in *Interp) setPC(to pc) {
	in.logf("^", "jump %v", to)
	in.pc = to
	in.jumped = true
}

func (in *Interp) gosub(line lines.Number, ret pc) {
	in.checkLine(line)
	in.gosubs = append(in.gosubs, ret)
	in.setPC(pc{line: line})
}

func (in *Interp) ret() {
	i := len(in.gosubs) - 1
	if i < 0 {
		in.halt(errorf(ErrState, "RETURN without GOSUB"))
	}
	to := in.gosubs[i]
	in.gosubs = in.gosubs[:i]
	in.setPC(to)
}

func (in *Interp) end() {
	in.setPC(pc{line: lines.End})
}

func (in *Interp) stop() {
	in.halt(ErrStopped)
}

// pushFor starts a loop, discarding any active loop over the same variable
// together with the loops nested inside it.
func (in *Interp) pushFor(f forFrame) {
	for i := len(in.fors) - 1; i >= 0; i-- {
		if in.fors[i].name == f.name {
			in.fors = in.fors[:i]
			break
		}
	}
	in.fors = append(in.fors, f)
}

// next advances the named loops in turn, innermost when none are named, and
// stops at the first one that jumps back into its body.
func (in *Interp) next(names []string) {
	if len(names) == 0 {
		names = []string{""}
	}
	for _, name := range names {
		if in.nextLoop(name) {
			return
		}
	}
}

func (in *Interp) nextLoop(name string) bool {
	for {
		i := len(in.fors) - 1
		if i < 0 {
			if name != "" {
				in.halt(errorf(ErrState, "NEXT %v without FOR", name))
			}
			in.halt(errorf(ErrState, "NEXT without FOR"))
		}
		if name == "" || in.fors[i].name == name {
			break
		}
		in.fors = in.fors[:i]
	}

	i := len(in.fors) - 1
	f := in.fors[i]
	in.store(f.name, in.must(value.Add(in.load(f.name), f.step)))

	cur := in.mustFloat(in.load(f.name))
	target := in.mustFloat(f.target)
	if step := in.mustFloat(f.step); (step >= 0 && cur <= target) || (step < 0 && cur >= target) {
		in.setPC(f.body)
		return true
	}
	in.fors = in.fors[:i]
	return false
}

func (in *Interp) mustFloat(v value.Value) float32 {
	f, err := v.AsFloat()
	if err != nil {
		in.halt(err)
	}
	return f
}

func (in *Interp) mustInt(v value.Value) int16 {
	i, err := v.AsInt()
	if err != nil {
		in.halt(err)
	}
	return i
}

func (in *Interp) mustString(v value.Value) string {
	s, err := v.AsString()
	if err != nil {
		in.halt(err)
	}
	return s
}

const scriptedSeed = 1

func (in *Interp) randomize(seed int16) {
	if in.scripted {
		in.logf("~", "randomize %v ignored under scripted input", seed)
		in.rng.Seed(scriptedSeed)
		return
	}
	in.rng.Seed(int64(seed))
}
