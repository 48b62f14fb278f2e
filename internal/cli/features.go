package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/blueprint/internal/generator"
)

// featuresCmd represents the features command
var featuresCmd = &cobra.Command{
	Use:   "features <boilerplate.md>",
	Short: "List the feature sections of a boilerplate document",
	Args:  cobra.ExactArgs(1),
	RunE:  runFeatures,
}

func init() {
	rootCmd.AddCommand(featuresCmd)
}

func runFeatures(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	doc, err := generator.ParseDocument(string(raw))
	if err != nil {
		return fmt.Errorf("failed to parse document: %w", err)
	}

	if doc.Meta.Name != "" || doc.Meta.Framework != "" {
		fmt.Printf("%s (%s)\n\n", doc.Meta.Name, doc.Meta.Framework)
	}
	for _, s := range doc.Sections {
		fmt.Printf("  %-40s %d fragment(s)\n", s.Name, len(s.Fragments))
	}
	return nil
}
