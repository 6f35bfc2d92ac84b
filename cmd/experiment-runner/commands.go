// cmd/experiment-runner/commands.go
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"negotiation-experiments/internal/experiment"
	"negotiation-experiments/internal/prompts"
)

// runFlags carries everything the run command accepts.
type runFlags struct {
	mode     string
	params   []string
	variants []string
	model    string
	output   string
	catalog  string
	strict   bool
	yes      bool
}

func buildRunCmd() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute a batch of experiments",
		Long: `Execute a batch of experiments against the configured completion service.

Modes:
  quick   vary one parameter under one variant (defaults: client_name, on_behalf_human)
  custom  variants and varied parameters chosen via --variant and --param;
          --variant alone runs the chosen variants on pure defaults, nothing varied
  full    the entire parameter grid across all variants`,
		Example: `  # Quick sweep over client names
  experiment-runner run --mode quick --param client_name

  # Vary client volume and vendor identity over two variants
  experiment-runner run --mode custom \
    --param clients_per_month --param vendor_name \
    --variant self_no_law --variant on_behalf_human

  # The whole grid (prints the trial count and asks for confirmation)
  experiment-runner run --mode full`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.mode, "mode", "m", "quick", "Run mode: quick, custom or full")
	cmd.Flags().StringArrayVar(&flags.params, "param", nil, "Parameter to vary (repeatable; quick mode uses the first)")
	cmd.Flags().StringArrayVar(&flags.variants, "variant", nil, "Prompt variant to run (repeatable; quick mode uses the first)")
	cmd.Flags().StringVar(&flags.model, "model", "", "Model ID, e.g. openai/gpt-4o (defaults to configuration)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "CSV output path (defaults to a timestamped file)")
	cmd.Flags().StringVar(&flags.catalog, "catalog", "", "JSON parameter catalog (defaults to configuration)")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "Only accept responses that are exactly two numbers")
	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "Skip the full-mode confirmation prompt")
	return cmd
}

func buildPlanCmd() *cobra.Command {
	var flags runFlags
	var limit int

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Preview the experiment plan without running anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := buildPlan(flags)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Plan: %d experiments\n", len(plan))
			perVariant := make(map[string]int, len(plan))
			var order []string
			for _, spec := range plan {
				if perVariant[spec.Variant] == 0 {
					order = append(order, spec.Variant)
				}
				perVariant[spec.Variant]++
			}
			for _, variant := range order {
				fmt.Fprintf(cmd.OutOrStdout(), "  %-36s %d\n", variant, perVariant[variant])
			}
			for i, spec := range plan {
				if i >= limit {
					fmt.Fprintf(cmd.OutOrStdout(), "... and %d more\n", len(plan)-limit)
					break
				}
				fmt.Fprintln(cmd.OutOrStdout(), " ", spec.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.mode, "mode", "m", "quick", "Run mode: quick, custom or full")
	cmd.Flags().StringArrayVar(&flags.params, "param", nil, "Parameter to vary (repeatable; quick mode uses the first)")
	cmd.Flags().StringArrayVar(&flags.variants, "variant", nil, "Prompt variant to run (repeatable; quick mode uses the first)")
	cmd.Flags().StringVar(&flags.catalog, "catalog", "", "JSON parameter catalog")
	cmd.Flags().IntVar(&limit, "limit", 10, "How many experiment IDs to print")
	return cmd
}

func buildVariantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "variants",
		Short: "List the registered prompt variants",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range prompts.NewCatalog().Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func buildParamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "params",
		Short: "List the tunable parameters and their values",
		RunE: func(cmd *cobra.Command, args []string) error {
			space := experiment.DefaultSpace()
			for _, name := range space.Names() {
				spec, _ := space.Get(name)
				values := make([]string, len(spec.Values))
				for i, v := range spec.Values {
					values[i] = fmt.Sprintf("%v", v)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", name, strings.Join(values, ", "))
			}
			return nil
		},
	}
}

// selections resolves the run mode into planner arguments. A nil slice means
// "everything"; an empty slice means "nothing varied".
func (f runFlags) selections() (params []string, variants []string, err error) {
	switch f.mode {
	case "quick":
		param, variant := "client_name", "on_behalf_human"
		if len(f.params) > 0 {
			param = f.params[0]
		}
		if len(f.variants) > 0 {
			variant = f.variants[0]
		}
		return []string{param}, []string{variant}, nil
	case "custom":
		if len(f.params) == 0 && len(f.variants) == 0 {
			return nil, nil, fmt.Errorf("custom mode needs at least one --param or --variant")
		}
		params = f.params
		if params == nil {
			params = []string{}
		}
		variants = f.variants
		return params, variants, nil
	case "full":
		return nil, nil, nil
	}
	return nil, nil, fmt.Errorf("unknown mode %q (want quick, custom or full)", f.mode)
}
