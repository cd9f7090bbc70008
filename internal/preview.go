package internal

import "strings"

const (
	previewPlaceholder = "(no preview available)"
	previewLimit       = 200
)

// TaskPreview extracts the short preview shown next to a task in the list.
// It returns the first meaningful text block: text inside a <task>…</task>
// wrapper is preferred, otherwise the first text block that does not carry an
// <environment_details> marker, truncated to 200 characters. Fails open to a
// placeholder when no such block exists.
func TaskPreview(messages []Message) string {
	for _, msg := range messages {
		for _, block := range msg.Blocks() {
			if block.Type != BlockText {
				continue
			}
			text := strings.TrimSpace(block.Text)
			if text == "" {
				continue
			}
			if inner := taskTagContent(text); inner != "" {
				return truncatePreview(inner)
			}
			if !strings.Contains(text, "<environment_details>") {
				return truncatePreview(text)
			}
		}
	}
	return previewPlaceholder
}

// taskTagContent returns the text wrapped in <task>…</task>, or "".
func taskTagContent(text string) string {
	start := strings.Index(text, "<task>")
	if start < 0 {
		return ""
	}
	rest := text[start+len("<task>"):]
	end := strings.Index(rest, "</task>")
	if end < 0 {
		return ""
	}
	return strings.TrimSpace(rest[:end])
}

func truncatePreview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLimit {
		return text
	}
	return string(runes[:previewLimit])
}
