package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/gobasic/internal/fileinput"
	"github.com/jcorbin/gobasic/internal/logio"
	"github.com/jcorbin/gobasic/internal/value"
)

type interpTestCases []interpTestCase

func (its interpTestCases) run(t *testing.T) {
	{
		var exclusive []interpTestCase
		for _, it := range its {
			if it.exclusive {
				exclusive = append(exclusive, it)
			}
		}
		if len(exclusive) > 0 {
			its = exclusive
		}
	}
	for _, it := range its {
		if !t.Run(it.name, it.run) {
			return
		}
	}
}

func interpTest(name string) (it interpTestCase) {
	it.name = name
	return it
}

type interpTestCase struct {
	name    string
	opts    []interface{}
	prog    []string
	direct  []string
	expect  []func(t *testing.T, in *Interp)
	timeout time.Duration
	wantErr error

	exclusive   bool
	nextInputID int
}

func (it interpTestCase) apply(wraps ...func(interpTestCase) interpTestCase) interpTestCase {
	for _, wrap := range wraps {
		it = wrap(it)
	}
	return it
}

func (it interpTestCase) exclusiveTest() interpTestCase {
	it.exclusive = true
	return it
}

func (it interpTestCase) withOptions(opts ...Option) interpTestCase {
	for _, opt := range opts {
		it.opts = append(it.opts, opt)
	}
	return it
}

func (it interpTestCase) withProg(text ...string) interpTestCase {
	it.prog = append(it.prog, text...)
	return it
}

func (it interpTestCase) withScript(text ...string) interpTestCase {
	it.opts = append(it.opts, WithScript(text...))
	return it
}

func (it interpTestCase) withInput(input string) interpTestCase {
	it.opts = append(it.opts, func(it *interpTestCase, t *testing.T) Option {
		name := t.Name() + "/input"
		if id := it.nextInputID; id > 0 {
			name += "_" + strconv.Itoa(id+1)
		}
		it.nextInputID++
		return WithInput(fileinput.NamedReader(name, strings.NewReader(input)))
	})
	return it
}

func (it interpTestCase) withSeed(seed int64) interpTestCase {
	it.opts = append(it.opts, WithSeed(seed))
	return it
}

func (it interpTestCase) withVarLimit(limit int) interpTestCase {
	it.opts = append(it.opts, WithVarLimit(limit))
	return it
}

// exec runs text in direct mode, after any program is loaded; without any,
// the program is Run instead.
func (it interpTestCase) exec(text ...string) interpTestCase {
	it.direct = append(it.direct, text...)
	return it
}

func (it interpTestCase) withTimeout(timeout time.Duration) interpTestCase {
	it.timeout = timeout
	return it
}

func (it interpTestCase) expectError(err error) interpTestCase {
	it.wantErr = err
	return it
}

func (it interpTestCase) expectOutput(output string) interpTestCase {
	out := &strings.Builder{}
	it.opts = append(it.opts, func(*interpTestCase, *testing.T) Option {
		out.Reset()
		return WithOutput(out)
	})
	it.expect = append(it.expect, func(t *testing.T, _ *Interp) {
		assert.Equal(t, output, out.String(), "expected output")
	})
	return it
}

func (it interpTestCase) expectVar(name string, want value.Value) interpTestCase {
	it.expect = append(it.expect, func(t *testing.T, in *Interp) {
		v, ok := in.vars.get(name)
		if assert.True(t, ok, "expected variable %v to be set", name) {
			assert.Equal(t, want, v, "expected %v value", name)
		}
	})
	return it
}

func (it interpTestCase) expectWarning(mess string) interpTestCase {
	var warnings []string
	it.opts = append(it.opts, func(*interpTestCase, *testing.T) Option {
		warnings = warnings[:0]
		return WithWarnf(func(mess string, args ...interface{}) {
			warnings = append(warnings, fmt.Sprintf(mess, args...))
		})
	})
	it.expect = append(it.expect, func(t *testing.T, _ *Interp) {
		assert.Contains(t, warnings, mess, "expected warning")
	})
	return it
}

func (it interpTestCase) expectStacks(fors, gosubs int) interpTestCase {
	it.expect = append(it.expect, func(t *testing.T, in *Interp) {
		assert.Len(t, in.fors, fors, "expected FOR stack depth")
		assert.Len(t, in.gosubs, gosubs, "expected GOSUB stack depth")
	})
	return it
}

func (it interpTestCase) expectDump(dump string) interpTestCase {
	it.expect = append(it.expect, func(t *testing.T, in *Interp) {
		var out strings.Builder
		interpDumper{
			in:  in,
			out: &out,
		}.dump()
		assert.Equal(t, dump, out.String(), "expected dump")
	})
	return it
}

func (it interpTestCase) withTestDump() interpTestCase {
	it.expect = append(it.expect, it.dumpToTest)
	return it
}

func (it interpTestCase) withTestOutput() interpTestCase {
	it.opts = append(it.opts, func(it *interpTestCase, t *testing.T) Option {
		return WithTee(&logio.Writer{Logf: func(mess string, args ...interface{}) {
			t.Logf("out: "+mess, args...)
		}})
	})
	return it
}

func (it interpTestCase) run(t *testing.T) {
	defer func(then time.Time) {
		label := "PASS"
		if t.Failed() {
			label = "FAIL"
		}
		t.Logf("%v\t%v\t%v", label, t.Name(), time.Since(then))
	}(time.Now())

	if testFails(func(t *testing.T) {
		it.runInterpTest(context.Background(), t, it.buildInterp(t))
	}) {
		in := it.buildInterp(t)
		WithLogf(t.Logf).apply(in)
		it.runInterpTest(context.Background(), t, in)
	}
}

func (it interpTestCase) runInterpTest(ctx context.Context, t *testing.T, in *Interp) {
	const defaultTimeout = time.Second
	timeout := it.timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	defer func() {
		if t.Failed() {
			it.dumpToTest(t, in)
		}
	}()

	if err := it.runInterp(ctx, in); it.wantErr != nil {
		assert.True(t, errors.Is(err, it.wantErr), "expected error: %v\ngot: %+v", it.wantErr, err)
	} else {
		assert.NoError(t, err, "unexpected run error")
	}

	if !t.Failed() {
		for _, expect := range it.expect {
			expect(t, in)
		}
	}
}

func (it interpTestCase) runInterp(ctx context.Context, in *Interp) (rerr error) {
	defer func() {
		if err := in.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("Interp.Close failed: %w", err)
		}
	}()

	if len(it.prog) > 0 {
		if err := in.LoadLines(it.prog...); err != nil {
			return err
		}
	}
	if len(it.direct) == 0 {
		return in.Run(ctx)
	}
	for _, text := range it.direct {
		if err := in.Exec(ctx, text); err != nil {
			return err
		}
	}
	return nil
}

func (it interpTestCase) buildInterp(t *testing.T) *Interp {
	var opt Option
	for _, o := range it.opts {
		switch impl := o.(type) {
		case func(it *interpTestCase, t *testing.T) Option:
			opt = Options(opt, impl(&it, t))
		case Option:
			opt = Options(opt, impl)
		default:
			t.Logf("unsupported interpTestCase opt type %T", o)
			t.FailNow()
		}
	}
	return New(opt)
}

func (it interpTestCase) dumpToTest(t *testing.T, in *Interp) {
	lw := logio.Writer{Logf: t.Logf}
	defer lw.Close()
	interpDumper{in: in, out: &lw}.dump()
}

//// utilities

func testFails(fn func(t *testing.T)) bool {
	var fakeT testing.T
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn(&fakeT)
	}()
	<-done
	return fakeT.Failed()
}

func outLines(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}

//// tests

func TestInterp_Eval(t *testing.T) {
	for _, tc := range []struct {
		expr string
		want value.Value
	}{
		{"3+4", value.Float(7)},
		{"3+4*2", value.Float(11)},
		{"3+(4*2)", value.Float(11)},
		{"(3+4)*2", value.Float(14)},
		{"-4^3", value.Float(-64)},
		{"4.5^3", value.Float(91.125)},
		{"1 + ( 2 - 3 )", value.Float(0)},
		{"2 * 4 ^ 2 - 34", value.Float(-2)},
		{"-1 + 2 - 3 ^ 4 * 5 - 6", value.Float(-410)},
		{"( ( 1 + ( 2 - 3 ) + 5 ) / 2 ) ^ 2", value.Float(6.25)},
		{"5 + ( ( 1 + 2 ) * 4 ) - 3", value.Float(14)},
		{"5 +  1 + 2  * 4 ^ 2 - 34", value.Float(4)},
		{"-(123-2+5*5)-23 *32*(22-4-6)", value.Float(-8978)},
		{"2^3^2", value.Float(64)},

		{"1 + not 2^3 + 4", value.Float(5)},
		{"2 + 3 = 3 - 1 * -2", value.Int(1)},
		{"2 + (1+1+1) == 3 - 1 * -2", value.Int(1)},
		{"1 < 2 and 2 < 10", value.Int(1)},
		{"3+(4*2) + 3 = (3+4)*2", value.Int(1)},
		{"1 <= 1", value.Int(1)},
		{"1 <= 2", value.Int(1)},
		{"1 < = 1", value.Int(1)},
		{"1 < = 2", value.Int(1)},
		{"1 <> 1", value.Int(0)},
		{"1 >= 2", value.Int(0)},
		{"1 > = 1", value.Int(1)},
		{"1 > = 2", value.Int(0)},
		{"0 or 0.5", value.Int(0)},
		{`"apple" < "banana"`, value.Int(1)},

		{`("a " + "b")+" c"`, value.Str("a b c")},

		{"SQR(156.25)", value.Float(12.5)},
		{"ABS(12.34)", value.Float(12.34)},
		{"-12.34", value.Float(-12.34)},
		{"ABS(-12.34)", value.Float(12.34)},
		{`left$("applesoft", 5)`, value.Str("apple")},
		{`mid$("applesoft", 2, 3)`, value.Str("ppl")},
		{`right$("applesoft", 4)`, value.Str("soft")},
		{`left$("apple", 10)`, value.Str("apple")},
		{`mid$("apple", 9, 2)`, value.Str("")},
		{`len("apple")`, value.Int(5)},
		{`asc("A")`, value.Int(65)},
		{`chr$(66)`, value.Str("B")},
		{`val(" 12.5xyz")`, value.Float(12.5)},
		{`val("xyz")`, value.Float(0)},
		{`str$(3.5)`, value.Str("3.5")},
		{"INT(2.7)", value.Int(2)},
		{"INT(-2.2)", value.Int(-2)},
		{"INT(-2.5)", value.Int(-3)},
		{"SGN(-3)", value.Int(-1)},
		{"SGN(0)", value.Int(0)},
		{"rnd(5) >= 0 and rnd(5) < 5", value.Int(1)},
	} {
		t.Run(tc.expr, func(t *testing.T) {
			in := New(WithSeed(1))
			v, err := in.Eval(tc.expr)
			if assert.NoError(t, err) {
				assert.Equal(t, tc.want, v)
			}
		})
	}
}

func TestInterp_Eval_errors(t *testing.T) {
	for _, tc := range []struct {
		expr string
		want error
	}{
		{"1 +", ErrParse},
		{"(1", ErrParse},
		{`"a" + 1`, ErrType},
		{`-"a"`, ErrType},
		{"SQR(-1)", ErrRange},
		{"LOG(0)", ErrRange},
		{"RND(0)", ErrRange},
		{`ASC("")`, ErrRange},
		{"CHR$(300)", ErrRange},
		{`LEN(5)`, ErrType},
		{"FN Z(1)", ErrName},
	} {
		t.Run(tc.expr, func(t *testing.T) {
			_, err := New().Eval(tc.expr)
			assert.True(t, errors.Is(err, tc.want), "expected %v, got %v", tc.want, err)
		})
	}
}

func TestInterp_direct(t *testing.T) {
	interpTestCases{
		interpTest("bare print").exec(`print`).expectOutput("\n"),
		interpTest("hello").exec(`Print "Hello World!"`).expectOutput("Hello World!\n"),
		interpTest("hello no newline").exec(`Print "Hello World!" ; `).expectOutput("Hello World!"),
		interpTest("sum").exec(`print 1+1;`).expectOutput("2"),
		interpTest("two prints").exec(`print "Test": print 42 ;`).expectOutput("Test\n42"),
		interpTest("var sum").exec(`xvar3 = 37 : print "X: "; 2 + xvar3 + 3`).expectOutput("X: 42\n"),
		interpTest("var sum split").exec(`xvar3 = 37 : print "X: "; : print 2 + xvar3 + 3`).expectOutput("X: 42\n"),
		interpTest("comma tab").exec(`print "t", 2+45 ;:print "!!!";`).expectOutput("t\t47!!!"),
		interpTest("leading commas").exec(`print ,"t",,;`).expectOutput("\tt\t\t"),
		interpTest("many commas").exec(`print ,,,"t",, 2+45,""; "ab" + "cd";`).expectOutput("\t\t\tt\t\t47\tabcd"),
		interpTest("tab").exec(`print tab(3);"a";`).expectOutput("   a"),
		interpTest("question print").exec(`? "q"`).expectOutput("q\n"),
		interpTest("print items before failure").
			exec(`PRINT "a"; 2, 1/"x"; "b"`).
			expectOutput("a2\t").
			expectError(ErrType),

		interpTest("string var").exec(`x$ = "test":print x$`).expectOutput("test\n"),
		interpTest("int var").exec(`x% = 12:print x%`).expectOutput("12\n"),
		interpTest("int var truncates").exec(`x% = 2.5:print x%`).
			expectOutput("2\n").
			expectVar("x%", value.Int(2)),
		interpTest("int var wraps").exec(`a% = 40000`).expectVar("a%", value.Int(-25536)),
		interpTest("float format").exec(`print 1/3`).expectOutput("0.333333\n"),

		interpTest("array").exec(`a(2+1)=42 : print a(3);`).
			expectOutput("42").
			expectWarning("array element a(3) not dimensioned"),
		interpTest("array 2d").exec(`n = 3: a(3, 8)=42*2 : print a(n, n*2+2);`).expectOutput("84"),
		interpTest("array nested").
			exec(`n = 3: a(2, n*2)=43 : b( a(2,6), 1,2,3) = 400/4 : print b(43, 1,   2, 3);`).
			expectOutput("100"),

		interpTest("if true").exec(`if 1=1 then print "OK"`).expectOutput("OK\n"),
		interpTest("if false").exec(`if 0=1 then print "OK"`).expectOutput(""),
		interpTest("if empty string").exec(`if "" + "" then print "OK"`).expectOutput(""),
		interpTest("if string").exec(`if "" + "" + "a" then print "OK"`).expectOutput("OK\n"),
		interpTest("if var").exec(`x=23 : if x==23 then print "OK"`).expectOutput("OK\n"),
		interpTest("if nested").exec(`if 2 then if 3 then x$ = "OK": print x$;`).expectOutput("OK"),
		interpTest("if nested false").exec(`if 2 then if 2 - 1 * 2 then x$ = "OK": print x$;`).expectOutput(""),
		interpTest("if nested true").exec(`if 2 then if 2 - 1 * 3 then x$ = "OK": print x$;`).expectOutput("OK"),
		interpTest("if false skips line").exec(`if 0 then print "false":print "next"`).expectOutput(""),
		interpTest("if array").
			exec(`DIM A(10, 10): ro = 3: A(3, 10) = 50: IF A(RO,10)<>0 then print "test"`).
			expectOutput("test\n"),
		interpTest("if no then").exec(`if 1 print "OK"`).expectOutput("OK\n"),
		interpTest("if strings").exec(`IF "a" < "b" THEN PRINT "lt"`).expectOutput("lt\n"),
		interpTest("if else true").exec(`IF 1 THEN PRINT "a" ELSE PRINT "b"`).expectOutput("a\n"),
		interpTest("if else false").exec(`IF 0 THEN PRINT "a" ELSE PRINT "b"`).expectOutput("b\n"),
		interpTest("if else continues").exec(`IF 0 THEN PRINT "a" ELSE PRINT "b": PRINT "c"`).expectOutput("b\nc\n"),
		interpTest("if true skips else").exec(`IF 1 THEN PRINT "a" ELSE PRINT "b": PRINT "c"`).expectOutput("a\nc\n"),
		interpTest("if else nested").
			exec(`IF 1 THEN IF 0 THEN PRINT "a" ELSE PRINT "b"`).
			expectOutput("b\n"),
		interpTest("if false outer abandons nested").exec(`IF 0 THEN IF 1 THEN PRINT "a": PRINT "c"`).expectOutput(""),
		interpTest("if false outer abandons nested let").exec(`IF 0 THEN IF 1 THEN X=1: PRINT "c"`).expectOutput(""),
		interpTest("if false outer abandons nested then line").exec(`IF 0 THEN IF 1 THEN 100: PRINT "c"`).expectOutput(""),
		interpTest("if false outer runs its else").
			exec(`IF 0 THEN IF 1 THEN PRINT "a" ELSE PRINT "b" ELSE PRINT "c"`).
			expectOutput("c\n"),
		interpTest("if true outer skips its else").
			exec(`IF 1 THEN IF 1 THEN PRINT "a" ELSE PRINT "b" ELSE PRINT "c"`).
			expectOutput("a\n"),
		interpTest("if else if chain").
			exec(`IF 0 THEN PRINT "a" ELSE IF 0 THEN PRINT "b" ELSE PRINT "c"`).
			expectOutput("c\n"),

		interpTest("fn").exec(`DEF FN A(w) = 2 * W + W: PRINT FN A(23);`).expectOutput("69"),
		interpTest("fn constant").exec(`DEF FNB(X) = 4 + 3: G = FNB(23): PRINT G;`).expectOutput("7"),
		interpTest("fn calls fn").exec(`DEF FNB(X) = 4 + 3: DEF FNA(Y) = FNB(1000) + Y: PRINT FNA(100);`).expectOutput("107"),
		interpTest("fn passes param").exec(`DEF FNB(X) = X * X: DEF FNA(Y) = FNB(Y) * 3: PRINT FNA(10);`).expectOutput("300"),
		interpTest("fn string").exec(`DEF FN S$(X$) = X$ + "!": PRINT FN S$("hi")`).expectOutput("hi!\n"),
		interpTest("fn only sees param").exec(`Y = 1: DEF FN F(X) = X + Y: PRINT FN F(1)`).expectError(ErrName),
		interpTest("fn recursion").
			withOptions(WithCallDepth(8)).
			exec(`DEF FN R(X) = FN R(X): PRINT FN R(1)`).
			expectError(ErrState),

		interpTest("for next").
			exec(`print "before": for i=1 to 3: print "body": next:print "after"`).
			expectOutput("before\nbody\nbody\nbody\nafter\n").
			expectStacks(0, 0),
		interpTest("for runs once").exec(`FOR I = 5 TO 1: PRINT I: NEXT`).expectOutput("5\n"),
		interpTest("for step").exec(`FOR I = 10 TO 1 STEP -3: PRINT I;: NEXT I: PRINT`).expectOutput("10741\n"),
		interpTest("for nested").
			exec(`FOR I=1 TO 2: FOR J=1 TO 2: PRINT I;J;" ";: NEXT J,I: PRINT`).
			expectOutput("11 12 21 22 \n").
			expectStacks(0, 0),
		interpTest("next without for").exec(`NEXT`).expectError(ErrState),
		interpTest("next wrong var").exec(`FOR I = 1 TO 2: NEXT J`).expectError(ErrState),

		interpTest("let").exec(`LET A = 1: letter = 2: PRINT A + letter`).expectOutput("3\n"),
		interpTest("noops").exec(`HOME: TEXT: CLS: PRINT "ok"`).expectOutput("ok\n"),
		interpTest("rem").exec(`PRINT "a": REM PRINT "b"`).expectOutput("a\n"),
		interpTest("trailing colon").exec(`PRINT "a":`).expectOutput("a\n"),
		interpTest("unset var").exec(`PRINT X`).
			expectOutput("0\n").
			expectWarning("access var before init: x"),
		interpTest("keeps vars").exec(`A = 5`, `PRINT A*2`).expectOutput("10\n"),
		interpTest("padding").
			withOptions(WithNumberPadding(true)).
			exec(`PRINT 1;-2;"x"`).
			expectOutput(" 1 -2 x\n"),

		interpTest("assign type").exec(`A = "x"`).expectError(ErrType),
		interpTest("assign string type").exec(`A$ = 1`).expectError(ErrType),
		interpTest("bad statement").exec(`PRINT (`).expectError(ErrParse),
		interpTest("leftover").exec(`A = 1 2`).expectError(ErrParse),
		interpTest("dim negative").exec(`DIM A(-1)`).expectError(ErrRange),
		interpTest("dim expr").exec(`N = 2: DIM A$(N)`).
			expectVar("a$(0)", value.Str("")).
			expectVar("a$(2)", value.Str("")),
		interpTest("var limit").
			withVarLimit(2).
			exec(`A = 1: B = 2: C = 3`).
			expectError(ErrRange),
		interpTest("stop").exec(`PRINT "a": STOP: PRINT "b"`).
			expectOutput("a\n").
			expectError(ErrStopped),
		interpTest("end").exec(`PRINT "a": END: PRINT "b"`).expectOutput("a\n"),
		interpTest("return without gosub").exec(`RETURN`).expectError(ErrState),
	}.run(t)
}

// endsClean expects a run to leave no loop or subroutine active.
var endsClean = []func(interpTestCase) interpTestCase{
	expectInterpStacks(0, 0),
}

func TestInterp_program(t *testing.T) {
	interpTestCases{
		interpTest("gosub resumes mid line").withProg(
			`10 GOSUB 100: PRINT "back"`,
			`20 END`,
			`100 PRINT "sub"`,
			`110 RETURN`,
		).expectOutput(outLines("sub", "back")).apply(endsClean...),

		interpTest("for across lines").withProg(
			`10 FOR I = 1 TO 3`,
			`20 PRINT I;`,
			`30 NEXT I`,
			`40 PRINT`,
		).expectOutput("123\n").expectVar("i", value.Float(4)),

		interpTest("for discards same var loop").withProg(
			`10 FOR I = 1 TO 2`,
			`20 FOR I = 1 TO 2`,
			`30 NEXT I`,
			`40 PRINT "done"`,
		).expectOutput("done\n").apply(endsClean...),

		interpTest("if else across lines").withProg(
			`10 X = 5`,
			`20 IF X > 3 THEN PRINT "big" ELSE PRINT "small"`,
			`30 IF X < 3 THEN PRINT "big" ELSE PRINT "small"`,
		).expectOutput(outLines("big", "small")),

		interpTest("if false outer abandons rest of line").withProg(
			`10 IF 0 THEN IF 1 THEN PRINT "a": PRINT "c"`,
			`20 PRINT "d"`,
		).expectOutput("d\n"),

		interpTest("if then line").withProg(
			`10 IF 1 THEN 30`,
			`20 PRINT "no"`,
			`30 PRINT "yes"`,
		).expectOutput("yes\n"),

		interpTest("if then line else line").withProg(
			`10 IF 0 THEN 30 ELSE 40`,
			`20 END`,
			`30 PRINT "then": END`,
			`40 PRINT "else"`,
		).expectOutput("else\n"),

		interpTest("if then line else statement").withProg(
			`10 IF 0 THEN 30 ELSE PRINT "else"`,
			`20 END`,
			`30 PRINT "then"`,
		).expectOutput("else\n"),

		interpTest("on goto").withProg(
			`10 X = 2: ON X GOTO 100, 200, 300`,
			`100 PRINT "one": END`,
			`200 PRINT "two": END`,
			`300 PRINT "three": END`,
		).expectOutput("two\n"),

		interpTest("on gosub").withProg(
			`10 ON 1 GOSUB 100: PRINT "after"`,
			`20 END`,
			`100 PRINT "one": RETURN`,
		).expectOutput(outLines("one", "after")),

		interpTest("on out of range").withProg(
			`10 ON 5 GOTO 100`,
			`100 END`,
		).expectError(ErrRange),

		interpTest("goto undefined").apply(
			withInterpProg(`10 GOTO 20`),
			expectInterpError(ErrName),
		),

		interpTest("data read restore").withProg(
			`10 DATA 1, "two", 3.5`,
			`20 READ A, B$, C`,
			`30 PRINT A; B$; C`,
			`40 RESTORE`,
			`50 READ D: PRINT D`,
			`60 DATA 4`,
			`70 RESTORE 60: READ E: PRINT E`,
		).expectOutput(outLines("1two3.5", "1", "4")),

		interpTest("read indexed by earlier target").withProg(
			`10 DATA 2, 7`,
			`20 READ N, A(N)`,
		).expectVar("a(2)", value.Float(7)),

		interpTest("out of data").withProg(
			`10 DATA 1`,
			`20 READ A, B`,
		).expectError(ErrState),

		interpTest("read type").withProg(
			`10 DATA "x"`,
			`20 READ A`,
		).expectError(ErrType),

		interpTest("data after rem").withProg(
			`10 REM DATA 1`,
			`20 READ A`,
		).expectError(ErrState),

		interpTest("continued line").withProg(
			`10 PRINT "A";`,
			`:PRINT "B"`,
		).expectOutput("AB\n"),

		interpTest("stop").withProg(
			`10 PRINT "a"`,
			`20 STOP`,
			`30 PRINT "b"`,
		).expectOutput("a\n").expectError(ErrStopped),

		interpTest("timeout").withProg(
			`10 GOTO 10`,
		).withTimeout(50 * time.Millisecond).expectError(context.DeadlineExceeded),

		interpTest("dump").withProg(
			`10 A = 1`,
			`20 DATA 5, "x"`,
		).expectDump(outLines(
			`# Interp Dump`,
			`  pc: 21 cur: 20`,
			`# Program`,
			`  10 A = 1`,
			`> 20 DATA 5, "x"`,
			`# Variables`,
			`  a = 1.0`,
			`# Data @0/2`,
			`  20: 5%, "x"`,
		)),
	}.run(t)
}

func TestInterp_exec_program(t *testing.T) {
	interpTestCases{
		interpTest("goto").withProg(
			`10 PRINT "ten"`,
			`20 PRINT "twenty"`,
		).exec(`GOTO 20`).expectOutput("twenty\n"),

		interpTest("gosub returns to direct text").withProg(
			`100 PRINT "sub": RETURN`,
		).exec(`GOSUB 100: PRINT "back"`).expectOutput(outLines("sub", "back")),

		interpTest("run after exec").withProg(
			`10 PRINT A`,
		).exec(`A = 3: GOTO 10`).expectOutput("3\n"),
	}.run(t)
}

func TestInterp_input(t *testing.T) {
	interpTestCases{
		interpTest("scripted").withProg(
			`10 INPUT "NAME";N$: INPUT A, B%: PRINT N$;A;B%`,
		).withScript("bob", "x", "2.5", "7").expectOutput(
			"NAMEbob\n" +
				"?x\n" +
				"?REENTER\n" +
				"?2.5\n" +
				"??7\n" +
				"bob2.57\n",
		),

		interpTest("read input").withProg(
			`10 INPUT X: PRINT X*2`,
		).withInput("42\n").expectOutput("?84\n"),

		interpTest("empty number").withProg(
			`10 INPUT X%`,
		).withInput("\n").expectVar("x%", value.Int(0)),

		interpTest("string keeps spaces").withProg(
			`10 INPUT X$`,
		).withInput("  hi there\n").expectVar("x$", value.Str("  hi there")),

		interpTest("script then input").withProg(
			`10 INPUT A: INPUT B`,
		).withScript("1").withInput("2\n").
			expectVar("a", value.Float(1)).
			expectVar("b", value.Float(2)),

		interpTest("eof").withProg(`10 INPUT A`).expectError(ErrState),

		interpTest("inkey script").withProg(
			`10 K$ = INKEY$: PRINT ASC(K$)`,
		).withScript("<ESC>").expectOutput("27\n"),

		interpTest("inkey caret").withProg(
			`10 K$ = INKEY$: PRINT ASC(K$)`,
		).withScript("^C").expectOutput("3\n"),

		interpTest("inkey nothing").withProg(
			`10 PRINT LEN(INKEY$)`,
		).expectOutput("0\n"),

		interpTest("inkey keys").withProg(
			`10 PRINT INKEY$; INKEY$; LEN(INKEY$)`,
		).withOptions(WithKeys(&fakeKeys{keys: "ab"})).expectOutput("ab0\n"),
	}.run(t)
}

type fakeKeys struct{ keys string }

func (fk *fakeKeys) PollKey() (string, bool) {
	if fk.keys == "" {
		return "", false
	}
	key := fk.keys[:1]
	fk.keys = fk.keys[1:]
	return key, true
}

func TestInterp_randomize_scripted(t *testing.T) {
	sample := func(seed int64) string {
		var out strings.Builder
		in := New(WithSeed(seed), WithScript("unused"), WithOutput(&out))
		assert.NoError(t, in.Exec(context.Background(), `RANDOMIZE 5: PRINT RND(1000)`))
		return out.String()
	}
	assert.Equal(t, sample(3), sample(4), "scripted runs ignore the RANDOMIZE seed")
}

func TestInterp_dim(t *testing.T) {
	for _, tc := range []struct {
		bounds []int16
		count  int
	}{
		{[]int16{2}, 3},
		{[]int16{2, 3}, 12},
		{[]int16{2, 3, 4}, 60},
		{[]int16{2, 3, 4, 5}, 360},
		{[]int16{0, 0, 0}, 1},
		{[]int16{2, 0, 4}, 15},
	} {
		t.Run(fmt.Sprint(tc.bounds), func(t *testing.T) {
			in := New()
			in.dim("a", tc.bounds)
			names := in.vars.names()
			assert.Len(t, names, tc.count)
			assert.Contains(t, names, elementKey("a", tc.bounds), "last element")
		})
	}
}

func TestInterp_errors(t *testing.T) {
	in := New()
	if !assert.NoError(t, in.LoadLines(`10 GOTO 20 30`)) {
		return
	}
	err := in.Run(context.Background())
	var le *LineError
	if assert.True(t, errors.As(err, &le), "expected a LineError, got %v", err) {
		assert.Equal(t, uint64(10), uint64(le.Line))
		assert.EqualError(t, err, `line 10: UNEXPECTED[syntax error: expected statement] "><GOTO 20 30"`)
	}

	err = in.Exec(context.Background(), `A = SQR(-4)`)
	assert.True(t, errors.Is(err, ErrRange))
	assert.Contains(t, err.Error(), "ERROR[range error: SQR of negative -4]")
}

func TestInterp_load(t *testing.T) {
	for _, tc := range []struct {
		name string
		text []string
		want error
		mess string
	}{
		{
			name: "out of order",
			text: []string{`10 PRINT`, `5 PRINT`},
			want: ErrParse,
			mess: `<lines>:2: syntax error: line numbers must increase: 5 after 10 in "5 PRINT"`,
		},
		{
			name: "no number",
			text: []string{`PRINT`},
			want: ErrParse,
		},
		{
			name: "nothing to continue",
			text: []string{`:PRINT`},
			want: ErrParse,
		},
		{
			name: "bad data",
			text: []string{`10 DATA 1,`},
			want: ErrParse,
		},
		{
			name: "blank lines",
			text: []string{``, `10 PRINT`, `   `},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := New().LoadLines(tc.text...)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tc.want), "expected %v, got %v", tc.want, err)
			var le *LoadError
			assert.True(t, errors.As(err, &le), "expected a LoadError, got %T", err)
			if tc.mess != "" {
				assert.EqualError(t, err, tc.mess)
			}
		})
	}
}

func TestInterp_Snapshot(t *testing.T) {
	in := New()
	assert.NoError(t, in.LoadLines(`10 DATA 1, 2`))
	assert.NoError(t, in.Exec(context.Background(), `DEF FN D(X) = X * 2: A$ = "hi": READ B: FOR I = 1 TO 3`))
	snap := in.Snapshot()
	assert.Equal(t, `"hi"`, snap.Vars["a$"])
	assert.Equal(t, "1.0", snap.Vars["b"])
	assert.Equal(t, "(x) = X * 2", snap.Functions["d"])
	assert.Equal(t, []string{"1%", "2%"}, snap.Data)
	assert.Equal(t, 1, snap.DataIndex)
	assert.Len(t, snap.Fors, 1)
	assert.Empty(t, snap.Gosubs)
}

func TestReadScript(t *testing.T) {
	script, err := ReadScript(strings.NewReader("7\r\n\nBOB"))
	assert.NoError(t, err)
	assert.Equal(t, []string{"7", "", "BOB"}, script)

	script, err = ReadScript(strings.NewReader(""))
	assert.NoError(t, err)
	assert.Empty(t, script)
}
