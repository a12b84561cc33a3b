// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ezrec/duet/config"
	"github.com/ezrec/duet/cpu"
	"github.com/ezrec/duet/duet"
	"github.com/ezrec/duet/translate"
)

var f = translate.From

// ErrTickLimit is reported when a run exceeds the configured tick bound.
type ErrTickLimit int

func (err ErrTickLimit) Error() string {
	return f("no result after %d ticks", int(err))
}

// runBounded runs the scheduler to completion, or until limit ticks have
// been spent. A zero limit is unbounded.
func runBounded(d *duet.Duet, limit int) (result int64, err error) {
	if limit == 0 {
		return d.Run()
	}

	d.Reset()
	for done := false; !done; {
		if d.Ticks >= limit {
			err = ErrTickLimit(limit)
			return
		}
		done, err = d.Tick()
		if err != nil {
			return
		}
	}

	return d.Result()
}

// load assembles a program from a file, or stdin if the name is "-".
func load(asm *cpu.Assembler, name string) (prog *cpu.Program, err error) {
	var inf io.Reader = os.Stdin
	if name != "-" {
		var file *os.File
		file, err = os.Open(name)
		if err != nil {
			return
		}
		defer file.Close()
		inf = file
	}

	return asm.Parse(inf)
}

func main() {
	var configPath string
	var mode string
	var verbose bool
	var expand bool
	var limit int
	var defines []string

	flag.StringVar(&configPath, "c", "", "configuration .toml file")
	flag.StringVar(&mode, "m", "", "mode: single, dual or both")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&expand, "x", false, "Evaluate $(...) expressions")
	flag.IntVar(&limit, "limit", 0, "Tick limit per run, 0 for none")
	flag.Func("D", "NAME=VALUE predefine for $(...) expressions", func(s string) error {
		defines = append(defines, s)
		return nil
	})

	flag.Parse()

	if flag.NArg() > 1 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args()[1:])
	}

	name := "-"
	if flag.NArg() == 1 {
		name = flag.Arg(0)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("%v: %v", configPath, err)
	}

	// Explicit flags override the configuration.
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "m":
			cfg.Mode = mode
		case "v":
			cfg.Verbose = verbose
		case "x":
			cfg.Expand = expand
		case "limit":
			cfg.MaxTicks = limit
		}
	})

	err = cfg.Validate()
	if err != nil {
		log.Fatal(err)
	}

	modes, _ := cfg.Modes()
	identity, _ := cfg.Register()

	asm := &cpu.Assembler{
		Verbose: cfg.Verbose,
		Expand:  cfg.Expand || len(defines) > 0,
	}
	for key, value := range cfg.Defines {
		asm.Predefine(key, value)
	}
	for _, define := range defines {
		err = asm.ParseDefine(define)
		if err != nil {
			log.Fatalf("-D %v: %v", define, err)
		}
	}

	prog, err := load(asm, name)
	if err != nil {
		log.Fatalf("%v: %v", name, err)
	}

	for _, m := range modes {
		d := duet.NewDuet(m, prog)
		d.Verbose = cfg.Verbose
		d.Identity = identity

		result, err := runBounded(d, cfg.MaxTicks)
		if err != nil {
			log.Fatalf("%v: %v: %v", name, m, err)
		}

		if cfg.Verbose {
			translate.Fprintln(os.Stderr, "%v: %d ticks, %v sent", m, d.Ticks, d.Sent)
			for reg, value := range d.Registers() {
				if value != 0 {
					translate.Fprintln(os.Stderr, "%v: %5s: %v", m, reg, value)
				}
			}
		}

		fmt.Printf("%v: %d\n", m, result)
	}
}
