package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/RooCodeInc/convo-viewer/internal"
)

// MarkdownExporter exports conversations in Markdown format
type MarkdownExporter struct{}

// Export exports a conversation view to Markdown format
func (e *MarkdownExporter) Export(view *internal.View, w io.Writer) error {
	doc := BuildDoc(view)

	// Header
	if doc.TaskID != "" {
		_, _ = fmt.Fprintf(w, "# Task %s\n\n", doc.TaskID)
	} else if doc.Local {
		_, _ = fmt.Fprintf(w, "# Local conversation\n\n")
	} else {
		_, _ = fmt.Fprintf(w, "# Conversation\n\n")
	}
	_, _ = fmt.Fprintf(w, "**Messages:** %d\n", len(doc.Messages))
	if doc.HiddenCount > 0 {
		_, _ = fmt.Fprintf(w, "**Hidden (condensed):** %d\n", doc.HiddenCount)
	}
	if missing := MissingIDs(view); len(missing) > 0 {
		_, _ = fmt.Fprintf(w, "**Tool calls without results:** %s\n", strings.Join(missing, ", "))
	}
	_, _ = fmt.Fprintf(w, "\n---\n\n")

	for i, msg := range doc.Messages {
		role := msg.Role
		switch {
		case msg.Summary:
			role += " (summary)"
		case msg.Truncation:
			role += " (truncation)"
		}

		timestamp := ""
		if msg.Ts > 0 {
			t := time.Unix(0, msg.Ts*int64(time.Millisecond))
			timestamp = fmt.Sprintf(" (%s)", t.Format(time.RFC3339))
		}
		_, _ = fmt.Fprintf(w, "**%s:**%s\n\n", role, timestamp)

		for _, block := range msg.Blocks {
			writeBlock(w, block)
		}

		if i < len(doc.Messages)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

func writeBlock(w io.Writer, block BlockDoc) {
	switch block.Type {
	case internal.BlockText:
		_, _ = fmt.Fprintf(w, "%s\n\n", block.Text)
	case internal.BlockReasoning:
		_, _ = fmt.Fprintf(w, "> %s\n\n", strings.ReplaceAll(block.Text, "\n", "\n> "))
	case internal.BlockToolUse:
		flag := ""
		if block.MissingResult {
			flag = " ⚠ no result"
		}
		_, _ = fmt.Fprintf(w, "🔧 **%s** `%s`%s\n\n", block.Name, block.ID, flag)
		if block.Input != "" {
			_, _ = fmt.Fprintf(w, "```json\n%s\n```\n\n", block.Input)
		}
	case internal.BlockToolResult:
		label := "Result"
		if block.IsError {
			label = "Result (error)"
		}
		_, _ = fmt.Fprintf(w, "**%s** `%s`\n\n", label, block.ToolUseID)
		if block.Content != "" {
			_, _ = fmt.Fprintf(w, "```\n%s\n```\n\n", block.Content)
		}
	case internal.BlockImage:
		_, _ = fmt.Fprintf(w, "*(image)*\n\n")
	default:
		if block.Text != "" {
			_, _ = fmt.Fprintf(w, "%s\n\n", block.Text)
		} else {
			_, _ = fmt.Fprintf(w, "*(%s)*\n\n", block.Type)
		}
	}
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
