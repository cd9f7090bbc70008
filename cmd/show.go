package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/RooCodeInc/convo-viewer/internal"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	showAll   bool
	localPath string
)

var (
	// Styles for show command
	userMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true).
				Padding(0, 1)

	assistantMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("135")).
				Bold(true).
				Padding(0, 1)

	markerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true).
			Padding(0, 1)

	contentStyle = lipgloss.NewStyle().
			Padding(0, 2).
			MarginBottom(1)

	toolStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Bold(true)

	timestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <task-id>",
	Short: "Show one conversation",
	Long: `Display the conversation of a task, hiding messages superseded by
condensation or truncation markers and flagging tool calls whose results
never arrived. Use --all to include superseded messages, or --file to view
a conversation exported to a local JSON file instead of a task.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var messages []internal.Message
		taskID := ""

		if localPath != "" {
			var err error
			messages, err = internal.LoadLocalConversation(localPath)
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

		view := internal.BuildView(taskID, messages, !showAll)
		displayConversation(view)
		return nil
	},
}

func displayConversation(view internal.View) {
	if view.TaskID != "" {
		fmt.Println(headerStyle.Render("💬 Task " + view.TaskID))
	} else {
		fmt.Println(headerStyle.Render("💬 Local conversation"))
	}

	if view.HiddenCount > 0 {
		note := fmt.Sprintf("%d message(s) superseded by condensation", view.HiddenCount)
		if view.CondensedHidden {
			note += " (hidden, use --all to include)"
		}
		fmt.Println(timestampStyle.Render(note))
	}
	fmt.Println()

	for _, msg := range view.Messages {
		fmt.Println(roleHeader(msg))
		for _, block := range msg.Blocks() {
			displayBlock(block, view.MissingToolResults)
		}
	}

	if len(view.MissingToolResults) > 0 {
		fmt.Println(warnStyle.Render(fmt.Sprintf("⚠ %d tool call(s) never received a result", len(view.MissingToolResults))))
	}
}

func roleHeader(msg internal.Message) string {
	label := msg.Role
	style := assistantMessageStyle
	switch {
	case msg.IsSummary:
		label = "summary"
		style = markerStyle
	case msg.IsTruncationMarker:
		label = "truncation"
		style = markerStyle
	case msg.Role == "user":
		style = userMessageStyle
	}

	header := style.Render("● " + label)
	if msg.Ts > 0 {
		t := time.Unix(0, msg.Ts*int64(time.Millisecond))
		header += " " + timestampStyle.Render(t.Format(time.RFC3339))
	}
	return header
}

func displayBlock(block internal.ContentBlock, missing map[string]bool) {
	switch block.Type {
	case internal.BlockText:
		if block.Text != "" {
			fmt.Println(contentStyle.Render(block.Text))
		}
	case internal.BlockReasoning:
		fmt.Println(contentStyle.Render(timestampStyle.Render(block.Text)))
	case internal.BlockToolUse:
		line := toolStyle.Render(fmt.Sprintf("🔧 %s [%s]", block.Name, block.ID))
		if missing[block.ID] {
			line += " " + warnStyle.Render("⚠ no result")
		}
		fmt.Println(contentStyle.Render(line))
	case internal.BlockToolResult:
		label := "✓ result"
		if block.IsError {
			label = "✗ result (error)"
		}
		fmt.Println(contentStyle.Render(toolStyle.Render(fmt.Sprintf("%s [%s] %s", label, block.ToolUseID, compactRaw(block.Content, 120)))))
	case internal.BlockImage:
		fmt.Println(contentStyle.Render("(image)"))
	default:
		fmt.Println(contentStyle.Render(fmt.Sprintf("(%s)", block.Type)))
	}
}

// compactRaw renders a raw JSON value on one line, truncated for display.
func compactRaw(raw json.RawMessage, limit int) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		// keep plain strings unquoted
	} else {
		s = string(raw)
	}
	runes := []rune(s)
	for i, r := range runes {
		if r == '\n' || r == '\t' {
			runes[i] = ' '
		}
	}
	if len(runes) > limit {
		return string(runes[:limit-3]) + "..."
	}
	return string(runes)
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showAll, "all", false, "Include messages superseded by condensation markers")
	showCmd.Flags().StringVar(&localPath, "file", "", "Show a conversation from a local JSON file instead of a task")
}
