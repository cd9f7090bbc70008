package internal

import "sync"

// View is the filtered, annotated conversation snapshot handed to a
// presentation layer.
type View struct {
	TaskID             string          `json:"taskId,omitempty"`
	Local              bool            `json:"local,omitempty"`
	Messages           []Message       `json:"messages"`
	HiddenCount        int             `json:"hiddenCount"`
	MissingToolResults map[string]bool `json:"missingToolResults,omitempty"`
	CondensedHidden    bool            `json:"condensedHidden"`
	ExpandAll          bool            `json:"expandAll"`
}

// BuildView applies the condensation filter and the tool-pairing scan to a
// raw conversation. The missing-result scan always runs over the unfiltered
// sequence; filtering is a display concern and must not mask anomalies.
func BuildView(taskID string, messages []Message, hideSuperseded bool) View {
	filtered := FilterCondensed(messages, hideSuperseded)
	return View{
		TaskID:             taskID,
		Messages:           filtered.Messages,
		HiddenCount:        filtered.HiddenCount,
		MissingToolResults: MissingToolResults(messages),
		CondensedHidden:    hideSuperseded,
	}
}

// State is the explicit container for all client-held viewer state: the
// reconciled task list, the selected conversation, the active source and the
// display toggles. Every mutation is a whole-value replace or merge under one
// lock; poll results carry the generation captured when their fetch started
// and are dropped if the source or selection has moved on since.
type State struct {
	mu sync.Mutex

	source    Source
	sourceGen uint64
	tasks     []Task

	selectedID   string
	selectionGen uint64
	conversation []Message
	local        bool

	hideCondensed bool
	expandAll     bool
}

// NewState creates a State for the given source. Condensed messages are
// hidden by default.
func NewState(source Source) *State {
	return &State{source: source, hideCondensed: true}
}

// Source returns the active source and its generation. Fetches started for
// this generation may be applied until the source changes.
func (s *State) Source() (Source, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source, s.sourceGen
}

// SwitchSource replaces the active source, clearing the held task list and
// any selection. Returns the new source generation; in-flight responses for
// the previous source fail their generation check and are discarded.
func (s *State) SwitchSource(source Source) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.source = source
	s.sourceGen++
	s.tasks = nil
	s.clearSelectionLocked()
	return s.sourceGen
}

// ApplyTaskList merges a polled task list into the held list. Returns false
// without mutating anything when gen no longer matches the active source.
func (s *State) ApplyTaskList(gen uint64, incoming []Task) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.sourceGen {
		return false
	}
	s.tasks = MergeTaskLists(s.tasks, incoming)
	return true
}

// Tasks returns a copy of the held task list.
func (s *State) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Select records a new task selection and clears the held conversation.
// Returns the selection generation guarding conversation fetches for it.
func (s *State) Select(id string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedID = id
	s.selectionGen++
	s.conversation = nil
	s.local = false
	return s.selectionGen
}

// ClearSelection drops the selection and the held conversation.
func (s *State) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearSelectionLocked()
}

func (s *State) clearSelectionLocked() {
	s.selectedID = ""
	s.selectionGen++
	s.conversation = nil
	s.local = false
}

// Selection returns the selected task id and the current selection generation.
func (s *State) Selection() (string, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedID, s.selectionGen
}

// ApplyConversation replaces the held conversation wholesale. Returns false
// without mutating anything when gen is stale, so a response for an abandoned
// selection can never overwrite the newly selected task's conversation.
func (s *State) ApplyConversation(gen uint64, messages []Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.selectionGen {
		return false
	}
	s.conversation = messages
	return true
}

// SetLocalConversation installs a conversation loaded from a local file.
// Local conversations have no backing task and are never polled; bumping the
// selection generation makes any in-flight poll response stale.
func (s *State) SetLocalConversation(messages []Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedID = ""
	s.selectionGen++
	s.conversation = messages
	s.local = true
}

// Local reports whether the held conversation came from a local file.
func (s *State) Local() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.local
}

// ToggleCondensed flips the condensation filter and returns the new value.
func (s *State) ToggleCondensed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hideCondensed = !s.hideCondensed
	return s.hideCondensed
}

// ToggleExpandAll flips the expand-all display hint and returns the new value.
func (s *State) ToggleExpandAll() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expandAll = !s.expandAll
	return s.expandAll
}

// View returns the filtered, annotated snapshot of the held conversation.
func (s *State) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	view := BuildView(s.selectedID, s.conversation, s.hideCondensed)
	view.Local = s.local
	view.ExpandAll = s.expandAll
	return view
}
