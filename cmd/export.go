package cmd

import (
	"fmt"
	"os"

	"github.com/RooCodeInc/convo-viewer/internal"
	"github.com/RooCodeInc/convo-viewer/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
	exportAll    bool
	exportLocal  string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <task-id>",
	Short: "Export one conversation",
	Long:  `Export a task's conversation in JSON, JSONL, Markdown or YAML, after applying the condensation filter and tool-pairing annotations.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter, err := export.NewExporter(exportFormat)
		if err != nil {
			return err
		}

		var messages []internal.Message
		taskID := ""

		if exportLocal != "" {
			messages, err = internal.LoadLocalConversation(exportLocal)
			if err != nil {
				return err
			}
		} else {
			if len(args) != 1 {
				return fmt.Errorf("requires a task id (or --file)")
			}
			taskID = args[0]

			source, err := activeSource()
			if err != nil {
				return err
			}
			repo, err := newRepository()
			if err != nil {
				return err
			}
			messages, err = repo.GetConversation(source, taskID)
			if err != nil {
				return err
			}
		}

		view := internal.BuildView(taskID, messages, !exportAll)

		out := os.Stdout
		if exportOutput != "" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		if err := exporter.Export(&view, out); err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		if exportOutput != "" {
			internal.LogInfo("Exported to %s", exportOutput)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Export format: json, jsonl, md, yaml")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
	exportCmd.Flags().BoolVar(&exportAll, "all", false, "Include messages superseded by condensation markers")
	exportCmd.Flags().StringVar(&exportLocal, "file", "", "Export a conversation from a local JSON file instead of a task")
}
