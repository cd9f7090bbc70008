package internal

// FilteredConversation is the result of applying the condensation filter.
// HiddenCount is always computed against the unfiltered sequence so the
// toggle's effect can be previewed before it is enabled.
type FilteredConversation struct {
	Messages    []Message
	HiddenCount int
}

// FilterCondensed computes which messages are superseded by summary or
// truncation markers and, when hideSuperseded is set, drops them from the
// returned sequence. A message is superseded iff its condenseParent names the
// condenseId of a summary message present in the conversation, or its
// truncationParent names the truncationId of a truncation marker present in
// the conversation. The check is a single-hop reference: a message pointing
// at a marker that is itself superseded by a later marker is not additionally
// collapsed. Markers are never dropped, even when superseded themselves.
func FilterCondensed(messages []Message, hideSuperseded bool) FilteredConversation {
	summaries := make(map[string]bool)
	truncations := make(map[string]bool)
	for _, m := range messages {
		if m.IsSummary && m.CondenseID != "" {
			summaries[m.CondenseID] = true
		}
		if m.IsTruncationMarker && m.TruncationID != "" {
			truncations[m.TruncationID] = true
		}
	}

	superseded := func(m Message) bool {
		if m.IsMarker() {
			return false
		}
		if m.CondenseParent != "" && summaries[m.CondenseParent] {
			return true
		}
		return m.TruncationParent != "" && truncations[m.TruncationParent]
	}

	hidden := 0
	for _, m := range messages {
		if superseded(m) {
			hidden++
		}
	}

	if !hideSuperseded {
		return FilteredConversation{Messages: messages, HiddenCount: hidden}
	}

	kept := make([]Message, 0, len(messages)-hidden)
	for _, m := range messages {
		if !superseded(m) {
			kept = append(kept, m)
		}
	}

	return FilteredConversation{Messages: kept, HiddenCount: hidden}
}
