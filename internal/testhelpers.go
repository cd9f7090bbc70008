package internal

import "encoding/json"

// Test fixture helpers shared by the package tests and by consumers' tests.

// CreateTextMessage creates a message whose content is a plain string.
func CreateTextMessage(role, text string) Message {
	raw, _ := json.Marshal(text)
	return Message{Role: role, Content: raw}
}

// CreateBlockMessage creates a message whose content is a block array.
func CreateBlockMessage(role string, blocks ...ContentBlock) Message {
	raw, _ := json.Marshal(blocks)
	return Message{Role: role, Content: raw}
}

// CreateSummaryMarker creates a summary marker message with the given id.
func CreateSummaryMarker(id string) Message {
	m := CreateTextMessage("assistant", "Condensed earlier conversation")
	m.IsSummary = true
	m.CondenseID = id
	return m
}

// CreateTruncationMarker creates a truncation marker message with the given id.
func CreateTruncationMarker(id string) Message {
	m := CreateTextMessage("assistant", "Truncated earlier conversation")
	m.IsTruncationMarker = true
	m.TruncationID = id
	return m
}

// CreateTestTask creates a task fixture.
func CreateTestTask(id string, timestamp int64, preview string) Task {
	return Task{ID: id, Timestamp: timestamp, FirstMessage: preview}
}
