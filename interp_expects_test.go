package main

// @generated from interp_test.go

//go:generate go run scripts/gen_expects.go -- interp_test.go interp_expects_test.go

import (
	"time"

	"github.com/jcorbin/gobasic/internal/value"
)

func withInterpOptions(opts ...Option) func(interpTestCase) interpTestCase {
	return func(it interpTestCase) interpTestCase {
		return it.withOptions(opts...)
	}
}

func withInterpProg(text ...string) func(interpTestCase) interpTestCase {
	return func(it interpTestCase) interpTestCase {
		return it.withProg(text...)
	}
}

func withInterpScript(text ...string) func(interpTestCase) interpTestCase {
	return func(it interpTestCase) interpTestCase {
		return it.withScript(text...)
	}
}

func withInterpInput(input string) func(interpTestCase) interpTestCase {
	return func(it interpTestCase) interpTestCase {
		return it.withInput(input)
	}
}

func withInterpSeed(seed int64) func(interpTestCase) interpTestCase {
	return func(it interpTestCase) interpTestCase {
		return it.withSeed(seed)
	}
}

func withInterpVarLimit(limit int) func(interpTestCase) interpTestCase {
	return func(it interpTestCase) interpTestCase {
		return it.withVarLimit(limit)
	}
}

func withInterpTimeout(timeout time.Duration) func(interpTestCase) interpTestCase {
	return func(it interpTestCase) interpTestCase {
		return it.withTimeout(timeout)
	}
}

func expectInterpError(err error) func(interpTestCase) interpTestCase {
	return func(it interpTestCase) interpTestCase {
		return it.expectError(err)
	}
}

func expectInterpOutput(output string) func(interpTestCase) interpTestCase {
	return func(it interpTestCase) interpTestCase {
		return it.expectOutput(output)
	}
}

func expectInterpVar(name string, want value.Value) func(interpTestCase) interpTestCase {
	return func(it interpTestCase) interpTestCase {
		return it.expectVar(name, want)
	}
}

func expectInterpWarning(mess string) func(interpTestCase) interpTestCase {
	return func(it interpTestCase) interpTestCase {
		return it.expectWarning(mess)
	}
}

func expectInterpStacks(fors, gosubs int) func(interpTestCase) interpTestCase {
	return func(it interpTestCase) interpTestCase {
		return it.expectStacks(fors, gosubs)
	}
}

func expectInterpDump(dump string) func(interpTestCase) interpTestCase {
	return func(it interpTestCase) interpTestCase {
		return it.expectDump(dump)
	}
}
