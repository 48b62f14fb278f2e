package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/blueprint/internal/config"
	"github.com/mvp-joe/blueprint/internal/generator"
)

// depsCmd represents the deps command
var depsCmd = &cobra.Command{
	Use:   "deps <boilerplate.md>",
	Short: "Print the dependency manifest of a boilerplate document",
	Long: `Deps runs the pipeline without writing any files and prints the
aggregated dependency manifest, split into runtime and development
dependencies. Entity-kind files imply the target family's ORM packages.`,
	Args: cobra.ExactArgs(1),
	RunE: runDeps,
}

func init() {
	rootCmd.AddCommand(depsCmd)
	depsCmd.Flags().StringVar(&frameworkFlag, "framework", "", "Target framework: nestjs or django")
}

func runDeps(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	doc, err := generator.ParseDocument(string(raw))
	if err != nil {
		return fmt.Errorf("failed to parse document: %w", err)
	}

	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	cfg, err := config.LoadConfigFromDir(rootDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	family := generator.NormalizeFamily(pickFramework(doc, cfg))
	gen, err := generator.New(family, generator.WithMaxResolveSteps(cfg.Generator.MaxResolveSteps))
	if err != nil {
		return err
	}

	result, err := gen.Generate(context.Background(), doc)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	runtime, dev := generator.SplitManifest(result.Dependencies)
	fmt.Printf("Runtime dependencies (%d):\n", len(runtime))
	for _, name := range runtime {
		fmt.Printf("  %s\n", name)
	}
	fmt.Printf("Development dependencies (%d):\n", len(dev))
	for _, name := range dev {
		fmt.Printf("  %s\n", name)
	}
	return nil
}
