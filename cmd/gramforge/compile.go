package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gramforge/gramforge/customizations"
	"github.com/gramforge/gramforge/diag"
	"github.com/gramforge/gramforge/grammar"
	"github.com/gramforge/gramforge/sink"
)

var compileFlags = struct {
	grammarName    *string
	customizations *string
	srcdir         *string
	outdir         *string
	dotout         *string
	verbose        *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "compile",
		Short:   "Analyze a grammar file and emit generated artifacts",
		Example: `  gramforge compile grammar.gf --grammar_name expr --outdir gen`,
		Args:    cobra.ExactArgs(1),
		RunE:    runCompile,
	}
	compileFlags.grammarName = cmd.Flags().String("grammar_name", "", "subpackage/prefix key for generated artifacts")
	compileFlags.customizations = cmd.Flags().String("grammar_customizations", "", "path to a customizations TOML file")
	compileFlags.srcdir = cmd.Flags().String("srcdir", "", "hand-written source root checked before overwriting an artifact")
	compileFlags.outdir = cmd.Flags().String("outdir", ".", "artifact-sink target root")
	compileFlags.dotout = cmd.Flags().String("dotout", "", "optional path to receive a DOT graph of nonterminals")
	compileFlags.verbose = cmd.Flags().BoolP("verbose", "v", false, "print a diagnostic dump of every analysis stage")
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	grmPath := args[0]

	src, err := os.ReadFile(grmPath)
	if err != nil {
		return fmt.Errorf("cannot open grammar file %s: %w", grmPath, err)
	}

	var custom *customizations.Customizations
	if *compileFlags.customizations != "" {
		custom, err = customizations.Load(*compileFlags.customizations)
		if err != nil {
			return err
		}
	}

	res, err := grammar.Compile(string(src), custom)
	if err != nil {
		return err
	}

	if *compileFlags.verbose {
		diag.Dump(res)
	}

	if res.Diagnostics.ParseWarnings.HasErrors() {
		fmt.Fprintln(os.Stderr, res.Diagnostics.ParseWarnings.Error())
	}

	name := *compileFlags.grammarName
	if name == "" {
		name = "grammar"
	}

	s := sink.New(*compileFlags.outdir, *compileFlags.srcdir)
	if err := grammar.EmitAll(s, name, res.Artifacts); err != nil {
		return fmt.Errorf("cannot write artifacts: %w", err)
	}

	if *compileFlags.dotout != "" {
		if err := os.WriteFile(*compileFlags.dotout, []byte(grammar.WriteDOT(res.Model, res.LeftCalls)), 0o644); err != nil {
			return fmt.Errorf("cannot write dot graph: %w", err)
		}
	}

	return nil
}
