package main

import (
	"context"
	"flag"
	"io"
	"os"
	"time"

	"github.com/jcorbin/stackforth/internal/logio"
)

const defaultSourcePath = "./test.forth"

func main() {
	var log logio.Logger
	log.SetOutput(os.Stderr)
	run(context.Background(), &log, os.Args[1:], os.Stdin, os.Stdout)
	os.Exit(log.ExitCode())
}

func run(ctx context.Context, log *logio.Logger, args []string, stdin io.Reader, stdout io.Writer) {
	flags := flag.NewFlagSet("stackforth", flag.ContinueOnError)
	flags.SetOutput(&logio.Writer{Logf: log.Leveledf("")})

	var (
		timeout     time.Duration
		trace       bool
		memLimit    uint
		callDepth   int
		usePrelude  bool
		dump        bool
		interactive bool
	)
	flags.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flags.BoolVar(&trace, "trace", false, "enable trace logging")
	flags.UintVar(&memLimit, "mem-limit", 0, "limit how many memory cells variables may allocate")
	flags.IntVar(&callDepth, "call-depth", defaultCallDepth, "limit how deeply defined words may nest")
	flags.BoolVar(&usePrelude, "prelude", false, "define prelude words before running the program")
	flags.BoolVar(&dump, "dump", false, "dump VM state to stderr after running")
	flags.BoolVar(&interactive, "i", false, "read and evaluate lines interactively after running any program")
	flags.Usage = func() {
		log.Printf("", "usage: %v [flags] [path]", flags.Name())
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		if err != flag.ErrHelp {
			log.Errorf("%v", err)
		}
		return
	}

	opts := []VMOption{
		WithInput(stdin),
		WithOutput(stdout),
		WithMemLimit(memLimit),
		WithCallDepth(callDepth),
	}
	if trace {
		opts = append(opts, WithLogf(log.Leveledf("TRACE")))
	}
	if usePrelude {
		opts = append(opts, WithSourceWriter(prelude))
	}
	if !interactive || flags.NArg() > 0 {
		path := defaultSourcePath
		if flags.NArg() > 0 {
			path = flags.Arg(0)
		}
		f, err := os.Open(path)
		if err != nil {
			log.Errorf("%v", err)
			return
		}
		defer f.Close()
		opts = append(opts, WithSource(f))
	}
	vm := New(opts...)
	defer vm.Close()

	if dump {
		defer func() {
			lw := logio.Writer{Logf: log.Leveledf("DUMP")}
			defer lw.Close()
			vmDumper{vm: vm, out: &lw}.dump()
		}()
	}

	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := vm.Run(ctx); err != nil {
		if trace {
			log.Errorf("%+v", err)
		} else {
			log.Errorf("%v", err)
		}
		return
	}

	if interactive {
		if err := repl(ctx, vm, log, stdout); err != nil {
			log.Errorf("%v", err)
		}
		return
	}

	io.WriteString(stdout, "\n")
	if err := vm.WriteStack(stdout); err != nil {
		log.Errorf("%v", err)
	}
}
