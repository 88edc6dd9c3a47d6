package main

// parseMode is how an IF statement asks the rest of its line to be treated.
type parseMode int

const (
	modeNormal parseMode = iota

	// run the next statement, then skip any ELSE clause
	modeParseThenSkipElse

	// skip the next statement, then run any ELSE clause
	modeSkipThenParseElse

	// after a THEN line number: only an ELSE clause may follow
	modeParseElse
	modeSkipElse
)

// phase is one step of sequencing the statements of a line.
type phase int

const (
	phaseParseStatement phase = iota
	phaseSkipStatement
	phaseParseElse
	phaseSkipElse
	phaseSkipLeadingSep
	phaseSkipTrailingSep
)

var phaseNames = [...]string{
	phaseParseStatement:  "parse",
	phaseSkipStatement:   "skip",
	phaseParseElse:       "parse-else",
	phaseSkipElse:        "skip-else",
	phaseSkipLeadingSep:  "skip-leading-sep",
	phaseSkipTrailingSep: "skip-trailing-sep",
}

func (ph phase) String() string { return phaseNames[ph] }

// afterParse returns the phases that follow a statement that ran, ahead of
// those already queued.
func (mode parseMode) afterParse(queue []phase) []phase {
	switch mode {
	case modeParseThenSkipElse:
		return prepend(queue, phaseParseStatement, phaseSkipElse)
	case modeSkipThenParseElse:
		return prepend(queue, phaseSkipStatement, phaseParseElse)
	case modeParseElse:
		return prepend(queue, phaseParseElse)
	case modeSkipElse:
		return prepend(queue, phaseSkipElse)
	}
	return queue
}

// afterSkip returns the phases that follow a skipped statement: a skipped IF
// takes its own THEN and ELSE parts down with it. Phases already queued for
// an enclosing IF still run after those.
func (mode parseMode) afterSkip(queue []phase) []phase {
	switch mode {
	case modeParseThenSkipElse, modeSkipThenParseElse:
		return prepend(queue, phaseSkipStatement, phaseSkipElse)
	case modeParseElse, modeSkipElse:
		return prepend(queue, phaseSkipElse)
	}
	return queue
}

func prepend(queue []phase, phases ...phase) []phase {
	return append(phases, queue...)
}

// sequence runs the statements of a line from the parser's position, taking
// any IF and ELSE parts into account. When resuming right after a statement,
// as RETURN and NEXT do, an ELSE clause that follows is skipped.
//
// When an IF is false and has no ELSE clause, the rest of the line is
// abandoned.
func (p *parser) sequence(resume bool) error {
	queue := []phase{phaseSkipLeadingSep, phaseParseStatement, phaseSkipTrailingSep}
	if resume {
		queue = []phase{phaseSkipElse, phaseSkipTrailingSep}
	}
	for len(queue) > 0 {
		ph := queue[0]
		queue = queue[1:]
		p.mode = modeNormal

		switch ph {
		case phaseSkipLeadingSep:
			p.separators()
			if p.atEnd() {
				return nil
			}

		case phaseParseStatement:
			if err := p.statement(); err != nil {
				return err
			}
			if p.in.jumped {
				return nil
			}
			queue = p.mode.afterParse(queue)

		case phaseSkipStatement:
			if !p.skipStatement() {
				return p.unexpected("statement")
			}
			queue = p.mode.afterSkip(queue)

		case phaseParseElse:
			if !p.keyword("else") {
				p.in.logf("-", "no ELSE, rest of line abandoned")
				return nil
			}
			if line, ok := p.lineNum(); ok {
				p.in.jump(line)
				return nil
			}
			queue = prepend(queue, phaseParseStatement)

		case phaseSkipElse:
			if p.keyword("else") {
				if _, ok := p.lineNum(); !ok {
					queue = prepend(queue, phaseSkipStatement)
				}
			}

		case phaseSkipTrailingSep:
			if p.separators() && !p.atEnd() {
				queue = []phase{phaseParseStatement, phaseSkipTrailingSep}
			}
		}
	}
	if !p.atEnd() {
		return p.unexpected("end of statement")
	}
	return nil
}
