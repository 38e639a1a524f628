// ABOUTME: CLI entry point: loads config, builds the pipeline, dispatches to a mode
// ABOUTME: Interactive REPL on a TTY, one-shot print mode otherwise

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"superterm/internal/annotate"
	"superterm/internal/config"
	"superterm/internal/dispatch"
	"superterm/internal/engine"
	"superterm/internal/handlers"
	"superterm/internal/intent"
	"superterm/internal/log"
	"superterm/internal/mode/print"
	"superterm/internal/mode/repl"
	"superterm/internal/session"
)

var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	// .env is optional; missing files are fine.
	_ = godotenv.Load()

	flags, err := parseFlags(args)
	if err != nil {
		return err
	}
	if flags.version {
		fmt.Println("superterm " + version)
		return nil
	}
	if flags.verbose {
		log.SetLevel(log.LevelDebug)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return err
	}
	if flags.workspace != "" {
		cfg.WorkspaceDir = flags.workspace
	}
	if flags.patterns != "" {
		cfg.PatternsFile = flags.patterns
	}
	if flags.noNLP {
		cfg.NoAnnotation = true
	}
	if flags.noColor {
		cfg.NoColor = true
	}

	eng, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	interactive := flags.prompt == "" && term.IsTerminal(int(os.Stdin.Fd()))
	if !interactive {
		outcome, err := print.Run(context.Background(), eng, flags.prompt, os.Stdin, os.Stdout)
		if err != nil {
			return err
		}
		if outcome == dispatch.Failure {
			os.Exit(1)
		}
		return nil
	}

	return repl.Run(eng, session.New(), cfg.NoAnnotation)
}

// buildEngine assembles the pipeline from settings. The pattern library and
// dispatch table are built once and read-only afterwards.
func buildEngine(cfg *config.Settings) (*engine.Engine, error) {
	lib := intent.DefaultLibrary()
	if cfg.PatternsFile != "" {
		extended, err := lib.LoadFile(cfg.PatternsFile)
		if err != nil {
			return nil, err
		}
		lib = extended
	}

	ws := handlers.NewWorkspace(cfg.WorkspaceDir)
	if err := ws.EnsureLayout(); err != nil {
		return nil, err
	}
	table, err := handlers.NewTable(ws, handlers.Options{NoColor: cfg.NoColor})
	if err != nil {
		return nil, err
	}

	var primary annotate.Annotator
	if !cfg.NoAnnotation {
		primary = annotate.NewProse()
	} else {
		log.Warn("NLP annotation disabled; matching is text-only")
	}

	return &engine.Engine{
		Annotator: primary,
		Fallback:  annotate.NewFallback(),
		Library:   lib,
		Weights: intent.Weights{
			Specificity:  cfg.Scoring.Specificity,
			Coverage:     cfg.Scoring.Coverage,
			Completeness: cfg.Scoring.Completeness,
		},
		Extractor: intent.ExtractorConfig{Window: cfg.Window},
		Resolver: intent.NewResolver(intent.ResolverConfig{
			Threshold:       cfg.Threshold,
			Margin:          cfg.Margin,
			MaxClarifyTurns: cfg.MaxClarifyTurns,
		}),
		Table: table,
	}, nil
}
