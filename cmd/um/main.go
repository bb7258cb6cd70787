// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"errors"
	"flag"
	"io"
	"log"
	"os"

	"github.com/ezrec/um/emulator"
	"github.com/ezrec/um/translate"
)

var f = translate.From

// Process exit status.
const (
	EXIT_OK    = 0 // Machine halted.
	EXIT_FAULT = 1 // Program image unreadable, or machine faulted.
	EXIT_USAGE = 2 // Malformed invocation.
)

func main() {
	os.Exit(run(os.Args[0], os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the program image named in args, and returns the exit status.
func run(name string, args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	var verbose bool

	logger := log.New(stderr, "", 0)

	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.BoolVar(&verbose, "v", false, "Verbose mode")
	flags.Usage = func() {
		_ = translate.Fprint(stderr, "usage: %v [-v] <program.um>\n", name)
		flags.PrintDefaults()
	}

	err := flags.Parse(args)
	if errors.Is(err, flag.ErrHelp) {
		return EXIT_OK
	}
	if err != nil {
		return EXIT_USAGE
	}

	if flags.NArg() != 1 {
		logger.Print(f("%v: expected one program image, got %v", name, flags.Args()))
		flags.Usage()
		return EXIT_USAGE
	}

	path := flags.Arg(0)

	if verbose {
		log.SetOutput(stderr)
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	err = emu.Rom.LoadFile(path)
	if err != nil {
		logger.Print(f("%v: %v", name, err))
		return EXIT_FAULT
	}

	emu.Tape.Input = bufio.NewReader(stdin)
	emu.Tape.Output = bufio.NewWriter(stdout)

	emu.Reset()
	err = emu.Run()
	if err != nil {
		logger.Print(f("%v: %v: %v", name, path, err))
		return EXIT_FAULT
	}

	return EXIT_OK
}
