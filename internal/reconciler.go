package internal

import "sort"

// MergeTaskLists folds a freshly polled task list into the currently held
// list. Tasks the client already knows about never disappear merely because
// one poll response omitted them (transient filesystem races look identical
// to deletion), while genuinely new tasks surface immediately. The returned
// list is stable-sorted descending by timestamp.
func MergeTaskLists(current, incoming []Task) []Task {
	incomingByID := make(map[string]Task, len(incoming))
	for _, t := range incoming {
		incomingByID[t.ID] = t
	}

	knownIDs := make(map[string]bool, len(current))
	for _, t := range current {
		knownIDs[t.ID] = true
	}

	merged := make([]Task, 0, len(incoming)+len(current))
	for _, t := range incoming {
		if !knownIDs[t.ID] {
			merged = append(merged, t)
		}
	}
	// Known tasks keep their held entry (id, preview) and take the polled
	// timestamp; a task absent from the poll stays untouched. Refreshing here
	// in every case keeps the merge idempotent: a second application of the
	// same poll finds nothing new and nothing left to update.
	for _, t := range current {
		if in, ok := incomingByID[t.ID]; ok {
			t.Timestamp = in.Timestamp
		}
		merged = append(merged, t)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp > merged[j].Timestamp
	})

	return merged
}
