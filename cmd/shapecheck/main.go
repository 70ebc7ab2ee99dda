package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/mattn/go-isatty"

	"github.com/funvibe/sizes"
	"github.com/funvibe/sizes/internal/config"
	"github.com/funvibe/sizes/internal/declfile"
	"github.com/funvibe/sizes/internal/dims"
	"github.com/funvibe/sizes/internal/matcher"
)

// Exit codes: 0 all recorded calls accepted, 1 at least one rejection,
// 2 file or declaration error.

func main() {
	noColor := flag.Bool("no-color", false, "disable ANSI styling in diagnostics")
	debug := flag.Bool("debug", false, "dump parsed declaration files to stderr")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: shapecheck [flags] <declaration-file>...")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	color := useColor(*noColor)
	exit := 0
	for _, path := range flag.Args() {
		if code := checkFile(path, color, *debug); code > exit {
			exit = code
		}
	}
	os.Exit(exit)
}

func useColor(noColor bool) bool {
	if noColor {
		return false
	}
	if _, ok := os.LookupEnv(config.EnvNoColor); ok {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func checkFile(path string, color, debug bool) int {
	f, err := declfile.LoadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "shapecheck: %v\n", err)
		return 2
	}
	if debug {
		spew.Fdump(os.Stderr, f)
	}
	if err := declfile.Validate(f); err != nil {
		fmt.Fprintf(os.Stderr, "shapecheck: %s: %v\n", path, err)
		return 2
	}

	code := 0
	for _, fn := range f.Functions {
		m, err := sizes.Compile(fn.Params, sizes.Spec(fn.Sizes))
		if err != nil {
			fmt.Fprintf(os.Stderr, "shapecheck: %s: %v\n", fn.Name, err)
			return 2
		}
		for i, call := range fn.Calls {
			if c := checkCall(m, fn.Name, i+1, call, color); c > code {
				code = c
			}
		}
	}
	return code
}

func checkCall(m *sizes.Matcher, fnName string, num int, call declfile.Call, color bool) int {
	shapes := make(map[string][]int, len(call.Shapes))
	for name, raw := range call.Shapes {
		shape, err := dims.ParseShape(raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "shapecheck: %s call #%d: %v\n", fnName, num, err)
			return 2
		}
		shapes[name] = shape
	}

	err := m.ValidateShapes(shapes)
	if err == nil {
		fmt.Printf("ok   %s call #%d\n", fnName, num)
		return 0
	}
	var me *sizes.MismatchError
	if errors.As(err, &me) {
		msg := matcher.Renderer{Color: color}.Render(me.Report)
		fmt.Printf("FAIL %s call #%d\n  %s\n", fnName, num, msg)
		return 1
	}
	fmt.Fprintf(os.Stderr, "shapecheck: %s call #%d: %v\n", fnName, num, err)
	return 2
}
