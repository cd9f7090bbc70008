package export

import (
	"encoding/json"
	"sort"

	"github.com/RooCodeInc/convo-viewer/internal"
)

// ConversationDoc is the format-independent export shape. Raw JSON fields are
// flattened into strings so every format (including YAML) renders them
// legibly.
type ConversationDoc struct {
	TaskID      string       `json:"task_id,omitempty" yaml:"task_id,omitempty"`
	Local       bool         `json:"local,omitempty" yaml:"local,omitempty"`
	HiddenCount int          `json:"hidden_count" yaml:"hidden_count"`
	Messages    []MessageDoc `json:"messages" yaml:"messages"`
}

// MessageDoc is one exported message with normalized content blocks.
type MessageDoc struct {
	Role       string     `json:"role" yaml:"role"`
	Ts         int64      `json:"ts,omitempty" yaml:"ts,omitempty"`
	Summary    bool       `json:"summary,omitempty" yaml:"summary,omitempty"`
	Truncation bool       `json:"truncation,omitempty" yaml:"truncation,omitempty"`
	Blocks     []BlockDoc `json:"blocks" yaml:"blocks"`
}

// BlockDoc is one exported content block.
type BlockDoc struct {
	Type          string `json:"type" yaml:"type"`
	Text          string `json:"text,omitempty" yaml:"text,omitempty"`
	ID            string `json:"id,omitempty" yaml:"id,omitempty"`
	Name          string `json:"name,omitempty" yaml:"name,omitempty"`
	Input         string `json:"input,omitempty" yaml:"input,omitempty"`
	ToolUseID     string `json:"tool_use_id,omitempty" yaml:"tool_use_id,omitempty"`
	Content       string `json:"content,omitempty" yaml:"content,omitempty"`
	IsError       bool   `json:"is_error,omitempty" yaml:"is_error,omitempty"`
	MissingResult bool   `json:"missing_result,omitempty" yaml:"missing_result,omitempty"`
}

// BuildDoc converts a conversation view into the export shape, annotating
// tool_use blocks whose result never arrived.
func BuildDoc(view *internal.View) ConversationDoc {
	doc := ConversationDoc{
		TaskID:      view.TaskID,
		Local:       view.Local,
		HiddenCount: view.HiddenCount,
		Messages:    make([]MessageDoc, 0, len(view.Messages)),
	}

	for _, msg := range view.Messages {
		md := MessageDoc{
			Role:       msg.Role,
			Ts:         msg.Ts,
			Summary:    msg.IsSummary,
			Truncation: msg.IsTruncationMarker,
		}
		for _, block := range msg.Blocks() {
			bd := BlockDoc{
				Type:      block.Type,
				Text:      block.Text,
				ID:        block.ID,
				Name:      block.Name,
				Input:     rawString(block.Input),
				ToolUseID: block.ToolUseID,
				Content:   rawString(block.Content),
				IsError:   block.IsError,
			}
			if block.Type == internal.BlockToolUse && view.MissingToolResults[block.ID] {
				bd.MissingResult = true
			}
			md.Blocks = append(md.Blocks, bd)
		}
		doc.Messages = append(doc.Messages, md)
	}

	return doc
}

// MissingIDs returns the missing-tool-result ids in stable order.
func MissingIDs(view *internal.View) []string {
	ids := make([]string, 0, len(view.MissingToolResults))
	for id := range view.MissingToolResults {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// rawString renders a raw JSON value as a plain string. String values lose
// their quotes; everything else stays compact JSON.
func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
