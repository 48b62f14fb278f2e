package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "blueprint",
	Short: "Blueprint - generate runnable projects from boilerplate documents",
	Long: `Blueprint materializes a runnable source tree from a markdown boilerplate
document. It classifies every fenced code fragment into its output path,
pulls in fragments referenced by relative imports, rewrites import paths
against final file locations and aggregates the dependency manifest.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
