package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/RooCodeInc/convo-viewer/internal"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	previewStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks in the active corpus",
	Long:  `List all tasks of the active corpus with their last activity and a short preview.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := activeSource()
		if err != nil {
			return err
		}

		repo, err := newRepository()
		if err != nil {
			return err
		}

		tasks, err := repo.ListTasks(source)
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}
		// One-shot listing starts from an empty held list; the merge still
		// gives us the descending time order.
		tasks = internal.MergeTaskLists(nil, tasks)

		displayTasks(source, tasks)
		return nil
	},
}

func displayTasks(source internal.Source, tasks []internal.Task) {
	if len(tasks) == 0 {
		fmt.Println(headerStyle.Render(fmt.Sprintf("📋 No tasks found in %s corpus", source)))
		return
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("📋 Found %d task(s) in %s corpus", len(tasks), source)))
	fmt.Println()

	w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', 0)

	_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("Updated")+"\t"+titleStyle.Render("Preview")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 100))

	for _, task := range tasks {
		shortID := task.ID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}

		preview := task.FirstMessage
		preview = strings.ReplaceAll(preview, "\n", " ")
		if len(preview) > 60 {
			preview = preview[:57] + "..."
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t\n",
			idStyle.Render(shortID),
			dateStyle.Render(relativeTime(task.GetTimestamp())),
			previewStyle.Render(preview))
	}

	_ = w.Flush()
	fmt.Println()
	fmt.Println(idStyle.Render("💡 Tip: Use the full ID (e.g., ") +
		lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Render(tasks[0].ID) +
		idStyle.Render(") with `convo-viewer show <id>`"))
}

func relativeTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	diff := time.Since(t)
	switch {
	case diff < 24*time.Hour:
		return t.Format("Today 15:04")
	case diff < 7*24*time.Hour:
		return t.Format("Mon 15:04")
	case diff < 365*24*time.Hour:
		return t.Format("Jan 02 15:04")
	default:
		return t.Format("2006-01-02")
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
