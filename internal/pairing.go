package internal

// MissingToolResults reports the tool_use ids that never received a matching
// tool_result anywhere in the conversation. Invocations in the final message
// are presumed still in flight and are not reported. The result is an advisory
// signal for rendering, not an error condition.
func MissingToolResults(messages []Message) map[string]bool {
	answered := make(map[string]bool)
	position := make(map[string]int)

	for i, msg := range messages {
		for _, block := range msg.Blocks() {
			switch block.Type {
			case BlockToolResult:
				if block.ToolUseID != "" {
					answered[block.ToolUseID] = true
				}
			case BlockToolUse:
				if block.ID != "" {
					// Duplicate ids are tolerated: last occurrence wins.
					position[block.ID] = i
				}
			}
		}
	}

	missing := make(map[string]bool)
	for id, idx := range position {
		if !answered[id] && idx != len(messages)-1 {
			missing[id] = true
		}
	}

	return missing
}
