// cmd/tools/catalog-export/main.go
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"negotiation-experiments/internal/experiment"
	"negotiation-experiments/internal/prompts"
	"negotiation-experiments/pkg/registry"
)

func main() {
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	validatePath := validateCmd.String("path", "configs/parameter-catalog.json", "Path to catalog file")

	renderCmd := flag.NewFlagSet("render", flag.ExitOnError)
	renderPath := renderCmd.String("path", "", "Path to catalog file (empty uses the built-in grid)")
	renderVariant := renderCmd.String("variant", "", "Render only this variant")
	renderLimit := renderCmd.Int("limit", 1, "How many configurations to render per variant")

	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	exportOut := exportCmd.String("out", "configs/parameter-catalog.json", "Where to write the catalog")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "validate":
		validateCmd.Parse(os.Args[2:])
		catalog, err := registry.Load(*validatePath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Invalid catalog:", err)
			os.Exit(1)
		}
		fmt.Printf("Catalog %s is valid: %d parameters, %d variants\n",
			*validatePath, len(catalog.Parameters), len(catalog.Variants))

	case "render":
		renderCmd.Parse(os.Args[2:])
		if err := render(*renderPath, *renderVariant, *renderLimit); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}

	case "export":
		exportCmd.Parse(os.Args[2:])
		if err := exportBuiltin(*exportOut); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		fmt.Println("Wrote", *exportOut)

	default:
		help()
		os.Exit(1)
	}
}

// render prints the prompts a catalog would produce, for eyeballing wording
// before spending API budget.
func render(path, variant string, limit int) error {
	space := experiment.DefaultSpace()
	planner := experiment.NewPlanner(space, prompts.NewCatalog())

	if path != "" {
		catalog, err := registry.Load(path)
		if err != nil {
			return err
		}
		if space, err = catalog.Space(); err != nil {
			return err
		}
		base, err := catalog.BaseConfig()
		if err != nil {
			return err
		}
		planner = experiment.NewPlanner(space, prompts.NewCatalog()).WithBase(base)
	}

	var variants []string
	if variant != "" {
		variants = []string{variant}
	}

	plan, err := planner.Plan([]string{}, variants)
	if err != nil {
		return err
	}

	seen := make(map[string]int)
	for _, spec := range plan {
		if seen[spec.Variant] >= limit {
			continue
		}
		seen[spec.Variant]++
		fmt.Printf("=== %s ===\n%s\n\n", spec.ID, spec.Prompt)
	}
	return nil
}

// exportBuiltin writes the built-in grid as a catalog file, the starting
// point for a custom study.
func exportBuiltin(out string) error {
	space := experiment.DefaultSpace()
	catalog := registry.ParameterCatalog{
		Version:     "1",
		Description: "Built-in negotiation study parameter grid",
		Variants:    prompts.NewCatalog().Names(),
	}
	for _, name := range space.Names() {
		spec, _ := space.Get(name)
		catalog.Parameters = append(catalog.Parameters, registry.Parameter{
			Name:   name,
			Values: spec.Values,
		})
	}

	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(out, append(data, '\n'), 0o644)
}

func help() {
	fmt.Println(`Usage: catalog-export <command> [flags]

Commands:
  validate  Check a parameter catalog against the schema
  render    Print the prompts a catalog would produce
  export    Write the built-in parameter grid as a catalog file`)
}
