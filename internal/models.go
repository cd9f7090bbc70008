package internal

import (
	"encoding/json"
	"fmt"
	"time"
)

// Source selects which on-disk task corpus is active.
type Source string

const (
	SourcePrimary   Source = "primary"
	SourceSecondary Source = "secondary"
)

// ParseSource parses a user-supplied source name.
func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case SourcePrimary, SourceSecondary:
		return Source(s), nil
	default:
		return "", fmt.Errorf("unknown source: %q (supported: primary, secondary)", s)
	}
}

// Task represents one recorded agent session in a corpus.
type Task struct {
	ID           string `json:"id"`
	Timestamp    int64  `json:"timestamp"` // ms epoch, advances as the log is appended to
	FirstMessage string `json:"firstMessage"`
}

// GetTimestamp returns a time.Time from the task timestamp.
func (t Task) GetTimestamp() time.Time {
	return time.Unix(0, t.Timestamp*int64(time.Millisecond))
}

// Message represents one entry in a task's conversation log. The schema is
// dictated by the external agent process; Content is kept raw because it may
// be a plain string or an array of content blocks.
type Message struct {
	Role               string          `json:"role"`
	Content            json.RawMessage `json:"content,omitempty"`
	Ts                 int64           `json:"ts,omitempty"`
	IsSummary          bool            `json:"isSummary,omitempty"`
	CondenseID         string          `json:"condenseId,omitempty"`
	CondenseParent     string          `json:"condenseParent,omitempty"`
	IsTruncationMarker bool            `json:"isTruncationMarker,omitempty"`
	TruncationID       string          `json:"truncationId,omitempty"`
	TruncationParent   string          `json:"truncationParent,omitempty"`
}

// Blocks returns the message content as a normalized block sequence.
func (m Message) Blocks() []ContentBlock {
	return NormalizeContent(m.Content)
}

// IsMarker reports whether the message is a summary or truncation marker.
func (m Message) IsMarker() bool {
	return m.IsSummary || m.IsTruncationMarker
}

// Content block types produced by the external agent. Anything else is
// treated as an opaque "other" block by rendering.
const (
	BlockText       = "text"
	BlockReasoning  = "reasoning"
	BlockToolUse    = "tool_use"
	BlockToolResult = "tool_result"
	BlockImage      = "image"
)

// ContentBlock represents one typed unit of message content. Fields are
// type-specific and optional; a tool_use block's ID is the join key matched by
// a later tool_result block's ToolUseID, not necessarily in the same message.
type ContentBlock struct {
	Type      string          `json:"type"`
	Text      string          `json:"text,omitempty"`
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name,omitempty"`
	Input     json.RawMessage `json:"input,omitempty"`
	ToolUseID string          `json:"tool_use_id,omitempty"`
	Content   json.RawMessage `json:"content,omitempty"`
	IsError   bool            `json:"is_error,omitempty"`
	Summary   json.RawMessage `json:"summary,omitempty"`
	Source    json.RawMessage `json:"source,omitempty"`
}
