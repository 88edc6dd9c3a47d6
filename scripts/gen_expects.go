// Command gen_expects writes standalone constructor funcs for the chainable
// test case builder methods of interp_test.go, so that cases can be passed
// around as values like expectInterpOutput("1") and applied later.
//
// Usage: go run scripts/gen_expects.go -- [source.go [output.go]]
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"text/template"
	"time"

	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"
)

// builderMethod matches the chainable methods of the interpreter test case
// builder that take arguments.
var builderMethod = regexp.MustCompile(`func \(it interpTestCase\) (expect|with)(.+?)\((.+?)\) interpTestCase`)

type wrapper struct {
	Base, What string
	Params     string
	Args       string
}

var fileTemplate = template.Must(template.New("expects").Parse(`package main

// @generated from {{ .Source }}
{{ if .Generate }}
//go:generate go run scripts/gen_expects.go -- {{ .Generate }}
{{ end }}
{{ range .Wrappers }}
func {{ .Base }}Interp{{ .What }}({{ .Params }}) func(interpTestCase) interpTestCase {
	return func(it interpTestCase) interpTestCase {
		return it.{{ .Base }}{{ .What }}({{ .Args }})
	}
}
{{ end }}`))

func main() {
	log.SetFlags(0)
	flag.Parse()

	src, dst := "<stdin>", ""
	var in io.Reader = os.Stdin
	switch args := flag.Args(); len(args) {
	default:
		dst = args[1]
		fallthrough
	case 1:
		src = args[0]
		f, err := os.Open(src)
		if err != nil {
			log.Fatalln(err)
		}
		defer f.Close()
		in = f
	case 0:
	}

	wrappers, err := scanWrappers(in)
	if err != nil {
		log.Fatalf("scanning %v: %v", src, err)
	}

	// only a named output can be regenerated
	var generate string
	if dst != "" {
		generate = strings.Join(flag.Args(), " ")
	}

	var code bytes.Buffer
	if err := fileTemplate.Execute(&code, struct {
		Source   string
		Generate string
		Wrappers []wrapper
	}{src, generate, wrappers}); err != nil {
		log.Fatalln(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	formatted, err := goimports(ctx, code.Bytes())
	if err != nil {
		log.Fatalln(err)
	}

	if dst == "" {
		_, err = os.Stdout.Write(formatted)
	} else {
		err = os.WriteFile(dst, formatted, 0644)
	}
	if err != nil {
		log.Fatalln(err)
	}
}

func scanWrappers(r io.Reader) (wrappers []wrapper, _ error) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		match := builderMethod.FindStringSubmatch(sc.Text())
		if match == nil {
			continue
		}
		wrappers = append(wrappers, wrapper{
			Base:   match[1],
			What:   match[2],
			Params: match[3],
			Args:   callArgs(match[3]),
		})
	}
	return wrappers, sc.Err()
}

// callArgs turns a parameter list into call arguments. Grouped parameters
// like "a, b int" leave only a name in all but the last part.
func callArgs(params string) string {
	var args []string
	for _, part := range strings.Split(params, ",") {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		arg := fields[0]
		if len(fields) > 1 && strings.HasPrefix(fields[1], "...") {
			arg += "..."
		}
		args = append(args, arg)
	}
	return strings.Join(args, ", ")
}

// goimports pipes code through the goimports command, feeding it from one
// goroutine while collecting its output in another.
func goimports(ctx context.Context, code []byte) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "goimports")
	cmd.Stderr = os.Stderr
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("goimports start failed: %w", err)
	}

	var out bytes.Buffer
	var eg errgroup.Group
	eg.Go(func() error {
		defer stdin.Close()
		_, err := stdin.Write(code)
		return err
	})
	eg.Go(func() error {
		_, err := out.ReadFrom(stdout)
		return err
	})
	err = eg.Wait()
	if werr := cmd.Wait(); err == nil && werr != nil {
		err = fmt.Errorf("goimports run failed: %w", werr)
	}
	return out.Bytes(), err
}
