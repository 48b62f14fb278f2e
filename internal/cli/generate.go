package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/blueprint/internal/config"
	"github.com/mvp-joe/blueprint/internal/generator"
	"github.com/mvp-joe/blueprint/internal/scaffold"
	"github.com/mvp-joe/blueprint/internal/watcher"
)

var (
	outputFlag    string
	frameworkFlag string
	nameFlag      string
	featuresFlag  []string
	dryRunFlag    bool
	quietFlag     bool
	watchFlag     bool
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate [boilerplate.md]",
	Short: "Generate a project from a boilerplate document",
	Long: `Generate parses a boilerplate markdown document, classifies its code
fragments into canonical file paths, resolves transitively referenced
fragments, rewrites relative imports and writes the resulting tree plus a
dependency manifest.

When no document is given, the working directory is searched for
*_BOILERPLATE.md files and the first match is used.

Examples:
  # Generate from a specific document into ./my-app
  blueprint generate NESTJS_BOILERPLATE.md --output my-app

  # Only selected features (other sections still resolve by reference)
  blueprint generate NESTJS_BOILERPLATE.md --features "RBAC System,Logging"

  # Preview the file plan without writing anything
  blueprint generate NESTJS_BOILERPLATE.md --dry-run

  # Regenerate whenever the document changes
  blueprint generate NESTJS_BOILERPLATE.md --watch
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output directory (default: project name from config)")
	generateCmd.Flags().StringVar(&frameworkFlag, "framework", "", "Target framework: nestjs or django (default: document frontmatter, then config)")
	generateCmd.Flags().StringVar(&nameFlag, "project-name", "", "Generated project name")
	generateCmd.Flags().StringSliceVar(&featuresFlag, "features", nil, "Feature sections to generate (default: all)")
	generateCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Print the file plan and manifest without writing")
	generateCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress output")
	generateCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch the document and regenerate on change")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted! Cancelling generation...")
		cancel()
	}()

	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := config.LoadConfigFromDir(rootDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	docPath, err := resolveDocumentPath(args, rootDir, cfg)
	if err != nil {
		return err
	}

	run := func(ctx context.Context) error {
		return generateOnce(ctx, docPath, cfg)
	}

	if err := run(ctx); err != nil {
		return err
	}

	if watchFlag {
		if dryRunFlag {
			return fmt.Errorf("--watch and --dry-run cannot be combined")
		}
		dw, err := watcher.New(docPath, run)
		if err != nil {
			return fmt.Errorf("failed to start document watcher: %w", err)
		}
		if !quietFlag {
			log.Printf("Watching %s for changes...", docPath)
		}
		dw.Start(ctx)
		dw.Stop()
	}

	return nil
}

// generateOnce runs the pipeline and, unless --dry-run, writes the tree.
func generateOnce(ctx context.Context, docPath string, cfg *config.Config) error {
	raw, err := os.ReadFile(docPath)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	doc, err := generator.ParseDocument(string(raw))
	if err != nil {
		return fmt.Errorf("failed to parse document: %w", err)
	}

	family := generator.NormalizeFamily(pickFramework(doc, cfg))
	projectName := pickProjectName(doc, cfg)

	opts := []generator.Option{
		generator.WithMaxResolveSteps(cfg.Generator.MaxResolveSteps),
		generator.WithProgress(NewCLIProgressReporter(quietFlag)),
	}
	if len(featuresFlag) > 0 {
		opts = append(opts, generator.WithFeatures(featuresFlag...))
	}

	gen, err := generator.New(family, opts...)
	if err != nil {
		return err
	}

	result, err := gen.Generate(ctx, doc)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("generation cancelled")
		}
		return fmt.Errorf("generation failed: %w", err)
	}

	printWarnings(result.Warnings)

	if dryRunFlag {
		printPlan(result, family)
		return nil
	}

	outputDir := outputFlag
	if outputDir == "" {
		outputDir = cfg.Paths.OutputDir
		if outputDir == "." {
			outputDir = projectName
		}
	}

	writer, err := scaffold.NewWriter(outputDir)
	if err != nil {
		return fmt.Errorf("failed to create writer: %w", err)
	}
	defer writer.Close()

	sourceRoot := cfg.Paths.SourceRoot
	if family == "django" {
		// Django trees live at the project root (apps/, core/, services/).
		sourceRoot = ""
	}

	if err := writer.WriteFiles(result.Files, sourceRoot); err != nil {
		return err
	}

	rules, err := generator.RuleSetFor(family)
	if err != nil {
		return err
	}
	if err := writer.WriteManifest(family, projectName, rules, result.Dependencies); err != nil {
		return err
	}
	if err := writer.WriteBaseFiles(family, sourceRoot, result.Files); err != nil {
		return err
	}
	if err := writer.WriteEnvExample(doc); err != nil {
		return err
	}
	if err := writer.WriteReadme(family, projectName, doc.SectionNames()); err != nil {
		return err
	}
	if err := writer.WriteReport(scaffold.NewReport(family, projectName, result)); err != nil {
		return err
	}

	if cfg.Generator.FailOnWarnings && len(result.Warnings) > 0 {
		return fmt.Errorf("generation finished with %d warning(s)", len(result.Warnings))
	}

	return nil
}

// resolveDocumentPath picks the document from the CLI argument or discovers
// one under the working directory.
func resolveDocumentPath(args []string, rootDir string, cfg *config.Config) (string, error) {
	if len(args) == 1 {
		if _, err := os.Stat(args[0]); err != nil {
			return "", fmt.Errorf("boilerplate document not found: %w", err)
		}
		return args[0], nil
	}

	discovery, err := generator.NewDocumentDiscovery(rootDir, cfg.Paths.Boilerplates, cfg.Paths.Ignore)
	if err != nil {
		return "", fmt.Errorf("invalid boilerplate patterns: %w", err)
	}
	docs, err := discovery.Discover()
	if err != nil {
		return "", fmt.Errorf("document discovery failed: %w", err)
	}
	if len(docs) == 0 {
		return "", fmt.Errorf("no boilerplate documents found (patterns: %v)", cfg.Paths.Boilerplates)
	}
	if len(docs) > 1 && !quietFlag {
		log.Printf("Multiple boilerplate documents found, using %s", docs[0])
	}
	return docs[0], nil
}

// pickFramework applies precedence: flag > document frontmatter > config.
func pickFramework(doc *generator.Document, cfg *config.Config) string {
	if frameworkFlag != "" {
		return frameworkFlag
	}
	if doc.Meta.Framework != "" {
		return doc.Meta.Framework
	}
	return cfg.Project.Framework
}

// pickProjectName applies precedence: flag > document frontmatter > config.
func pickProjectName(doc *generator.Document, cfg *config.Config) string {
	if nameFlag != "" {
		return nameFlag
	}
	if doc.Meta.Name != "" {
		return doc.Meta.Name
	}
	return cfg.Project.Name
}

func printWarnings(warnings []generator.Warning) {
	if quietFlag {
		return
	}
	for _, w := range warnings {
		fmt.Printf("  warning [%s] %s: %s\n", w.Kind, w.Subject, w.Detail)
	}
}

func printPlan(result *generator.Result, family string) {
	fmt.Printf("Plan (%s):\n", family)
	for _, f := range result.Files {
		fmt.Printf("  %-50s %s\n", f.Path, f.Kind)
	}
	runtime, dev := generator.SplitManifest(result.Dependencies)
	if len(runtime) > 0 {
		fmt.Printf("Dependencies: %v\n", runtime)
	}
	if len(dev) > 0 {
		fmt.Printf("Dev dependencies: %v\n", dev)
	}
	fmt.Printf("%d files, %d resolved by reference, %d imports rewritten\n",
		result.Stats.FilesEmitted, result.Stats.FilesResolved, result.Stats.ImportsRewritten)
}
