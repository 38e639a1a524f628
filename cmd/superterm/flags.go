// ABOUTME: Flag definitions for the superterm CLI
// ABOUTME: Flags override env vars which override config files

package main

import "flag"

type cliFlags struct {
	prompt    string
	workspace string
	patterns  string
	noNLP     bool
	noColor   bool
	verbose   bool
	version   bool
}

func parseFlags(args []string) (*cliFlags, error) {
	f := &cliFlags{}
	fs := flag.NewFlagSet("superterm", flag.ContinueOnError)
	fs.StringVar(&f.prompt, "p", "", "process a single utterance and exit")
	fs.StringVar(&f.workspace, "workspace", "", "script workspace root (default: current directory)")
	fs.StringVar(&f.patterns, "patterns", "", "extra intent patterns YAML file")
	fs.BoolVar(&f.noNLP, "no-nlp", false, "disable NLP annotation; text-only matching")
	fs.BoolVar(&f.noColor, "no-color", false, "disable colored output")
	fs.BoolVar(&f.verbose, "verbose", false, "debug logging to stderr")
	fs.BoolVar(&f.version, "version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	// A bare positional argument also works as the one-shot prompt.
	if f.prompt == "" && fs.NArg() > 0 {
		f.prompt = fs.Arg(0)
	}
	return f, nil
}
