// Package main: gobasic -- a line numbered BASIC in the Applesoft manner
//
// Programs are lines of statements, each line led by its number and its
// statements separated by colons:
//
//	10 INPUT "HOW MANY";N
//	20 FOR I = 1 TO N : PRINT I; : NEXT : PRINT
//	30 IF N > 10 THEN PRINT "THAT WAS A LOT" ELSE GOTO 10
//
// Variables need no declaration. A name's sigil fixes its type: A$ holds a
// string, A% a 16-bit integer, and plain A a 32-bit float. Arrays are just
// variables with indices, like A(1,2); DIM gives every element of an array its
// default value up front, each index running from 0 to its bound.
//
// # Statements
//
//	[LET] v = expr          assignment, converting to the type of v
//	PRINT items             expressions, TAB(n) and commas (a tab each),
//	                        separated by semicolons; a final semicolon
//	                        suppresses the newline
//	INPUT ["prompt";] v,... read a line per variable, asking again with
//	                        ?REENTER for numbers that do not parse
//	IF c [THEN] stmt [ELSE stmt]
//	IF c THEN line [ELSE line|stmt]
//	FOR v = a TO b [STEP s] ... NEXT [v,...]
//	GOTO line, GOSUB line, RETURN
//	ON expr GOTO|GOSUB line,...
//	DIM a(n,...),...
//	DATA lit,... READ v,... RESTORE [line]
//	DEF FN f(x) = expr
//	RANDOMIZE expr, REM, END, STOP
//	TEXT, HOME, CLS         accepted and ignored
//
// When an IF condition is false, the rest of its line is skipped unless there
// is an ELSE; when true, any ELSE is skipped. Skipped statements are parsed
// without being run, so that nested IFs, strings and parentheses are still
// respected.
//
// # Evaluation
//
// Expressions are evaluated while they are parsed, there being no syntax tree.
// Since a statement can only be told apart from the next alternative by
// parsing it, each statement is first matched without any effect, and only
// then parsed again for real and run exactly once.
//
// Arithmetic is done in floating point; AND, OR and NOT work on integers, and
// comparisons give 1 or 0. Strings compare lexically. The builtin functions are
// SQR INT ABS SGN SIN COS TAN ATN LOG EXP RND LEN ASC CHR$ VAL STR$ LEFT$ MID$
// RIGHT$ and INKEY$.
//
// # Command
//
// Running gobasic with program files runs each in turn, printing [SUCCESS] or
// [FAIL] after it. Files named *.input, or given with -input, supply scripted
// lines to INPUT and INKEY$ before any real input is read. Without programs,
// or with -i, an interactive session reads numbered lines into a program, and
// runs anything else directly.
package main
