package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gramforge",
	Short: "Compile a grammar DSL file into analyzed artifacts",
	Long: `gramforge tokenizes and analyzes a grammar written in its DSL,
computing nullability, left recursion, FIRST-set lookahead, and delegate
("intermediate") variant inference, then hands the result to an artifact
sink that writes generated sources.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
