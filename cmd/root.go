package cmd

import (
	"fmt"
	"os"

	"github.com/RooCodeInc/convo-viewer/internal"
	"github.com/spf13/cobra"
)

var (
	verbose       bool
	primaryRoot   string
	secondaryRoot string
	sourceName    string
	noCache       bool
	version       string = "dev"
	commit        string = "unknown"
	date          string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "convo-viewer",
	Short: "Browse agent conversation logs while they are being written",
	Long: `A viewer for append-only agent conversation logs.

The viewer reads task corpora written by the agent extension, reconciles
polled snapshots without losing locally known tasks, hides messages that a
later condensation or truncation marker superseded, and flags tool calls
whose results never arrived.

Quick Start:
  convo-viewer list                      # List tasks in the active corpus
  convo-viewer show <task-id>            # View one conversation
  convo-viewer export <task-id> -f md    # Export as Markdown
  convo-viewer serve                     # Poll continuously behind a local API`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&primaryRoot, "primary", "", "Primary corpus root (default: auto-detected)")
	rootCmd.PersistentFlags().StringVar(&secondaryRoot, "secondary", "", "Secondary corpus root (default: auto-detected)")
	rootCmd.PersistentFlags().StringVarP(&sourceName, "source", "s", string(internal.SourcePrimary), "Active corpus: primary or secondary")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "Disable the task preview cache")

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// newRepository builds the filesystem repository from flags, falling back to
// OS-specific detection for roots that were not given explicitly.
func newRepository() (*internal.FSRepository, error) {
	primary, secondary := primaryRoot, secondaryRoot
	if primary == "" || secondary == "" {
		roots, err := internal.DetectCorpusRoots()
		if err != nil && primary == "" && secondary == "" {
			return nil, fmt.Errorf("failed to detect corpus roots: %w", err)
		}
		if primary == "" {
			primary = roots.Primary
		}
		if secondary == "" {
			secondary = roots.Secondary
		}
	}

	repo := internal.NewFSRepository(primary, secondary)
	if !noCache {
		if cacheDir, err := internal.DefaultCacheDir(); err == nil {
			repo = repo.WithPreviewCache(internal.NewPreviewCache(cacheDir))
		} else {
			internal.LogWarn("Preview cache disabled: %v", err)
		}
	}
	return repo, nil
}

// activeSource parses the --source flag.
func activeSource() (internal.Source, error) {
	return internal.ParseSource(sourceName)
}
