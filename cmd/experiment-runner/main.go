// cmd/experiment-runner/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "experiment-runner",
		Short: "Run LLM negotiation experiments",
		Long: `experiment-runner expands a parameter grid into prompt variants, runs each
prompt against an OpenAI-compatible chat completion service, extracts the
negotiation quantities from the responses and records every trial as a flat
result row.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		buildRunCmd(),
		buildPlanCmd(),
		buildVariantsCmd(),
		buildParamsCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
