package internal

import "encoding/json"

// NormalizeContent coerces a message's content field into an ordered block
// sequence. A plain string becomes a single text block, an array of blocks is
// returned in its original order (order is significant for tool-use/tool-result
// adjacency), and any other shape is stringified into a single text block.
// The function is total: it never fails, whatever the agent wrote.
func NormalizeContent(raw json.RawMessage) []ContentBlock {
	if len(raw) == 0 {
		return []ContentBlock{{Type: BlockText}}
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return []ContentBlock{{Type: BlockText, Text: text}}
	}

	var blocks []ContentBlock
	if err := json.Unmarshal(raw, &blocks); err == nil {
		return blocks
	}

	return []ContentBlock{{Type: BlockText, Text: string(raw)}}
}
