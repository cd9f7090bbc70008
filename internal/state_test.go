package internal

import "testing"

func TestState_StaleConversationResponseIsDropped(t *testing.T) {
	s := NewState(SourcePrimary)

	genX := s.Select("X")
	genY := s.Select("Y")

	// The response for X arrives after the user switched to Y.
	if s.ApplyConversation(genX, []Message{CreateTextMessage("user", "for X")}) {
		t.Error("stale response for X was applied")
	}
	if !s.ApplyConversation(genY, []Message{CreateTextMessage("user", "for Y")}) {
		t.Fatal("current response for Y was rejected")
	}

	view := s.View()
	if view.TaskID != "Y" || len(view.Messages) != 1 || view.Messages[0].Blocks()[0].Text != "for Y" {
		t.Errorf("view = %+v, want Y's conversation", view)
	}
}

func TestState_StaleTaskListAfterSourceSwitch(t *testing.T) {
	s := NewState(SourcePrimary)
	_, oldGen := s.Source()

	s.SwitchSource(SourceSecondary)

	if s.ApplyTaskList(oldGen, []Task{CreateTestTask("old", 1, "")}) {
		t.Error("task list for the abandoned source was merged")
	}
	if got := s.Tasks(); len(got) != 0 {
		t.Errorf("tasks = %v, want empty after source switch", got)
	}

	_, newGen := s.Source()
	if !s.ApplyTaskList(newGen, []Task{CreateTestTask("new", 2, "")}) {
		t.Fatal("task list for the active source was rejected")
	}
	if got := s.Tasks(); len(got) != 1 || got[0].ID != "new" {
		t.Errorf("tasks = %v, want [new]", got)
	}
}

func TestState_SwitchSourceClearsSelection(t *testing.T) {
	s := NewState(SourcePrimary)
	gen := s.Select("X")
	s.ApplyConversation(gen, []Message{CreateTextMessage("user", "hi")})

	s.SwitchSource(SourceSecondary)

	if id, _ := s.Selection(); id != "" {
		t.Errorf("selection = %q, want cleared", id)
	}
	if view := s.View(); len(view.Messages) != 0 {
		t.Errorf("conversation not cleared: %v", view.Messages)
	}
	// The old conversation stream's responses are stale now.
	if s.ApplyConversation(gen, []Message{CreateTextMessage("user", "late")}) {
		t.Error("stale conversation applied after source switch")
	}
}

func TestState_LocalConversationInvalidatesPolling(t *testing.T) {
	s := NewState(SourcePrimary)
	gen := s.Select("X")

	s.SetLocalConversation([]Message{CreateTextMessage("user", "from file")})

	if s.ApplyConversation(gen, []Message{CreateTextMessage("user", "poll for X")}) {
		t.Error("poll response overwrote the local conversation")
	}
	if !s.Local() {
		t.Error("Local() = false, want true")
	}

	view := s.View()
	if !view.Local || view.TaskID != "" {
		t.Errorf("view = %+v, want local with no task id", view)
	}
	if len(view.Messages) != 1 || view.Messages[0].Blocks()[0].Text != "from file" {
		t.Errorf("view messages = %v, want the local file content", view.Messages)
	}
}

func TestState_Toggles(t *testing.T) {
	s := NewState(SourcePrimary)

	// Condensed messages are hidden by default.
	if view := s.View(); !view.CondensedHidden {
		t.Error("condensed filtering should default to on")
	}
	if got := s.ToggleCondensed(); got {
		t.Error("first toggle should turn filtering off")
	}
	if got := s.ToggleExpandAll(); !got {
		t.Error("first expand toggle should turn expand-all on")
	}
	if view := s.View(); view.CondensedHidden || !view.ExpandAll {
		t.Errorf("view toggles = %+v, want hidden=false expand=true", view)
	}
}

func TestState_ViewAppliesFilterAndPairing(t *testing.T) {
	s := NewState(SourcePrimary)
	gen := s.Select("X")

	messages := []Message{
		withCondenseParent(CreateTextMessage("user", "old"), "S1"),
		CreateSummaryMarker("S1"),
		CreateBlockMessage("assistant", toolUse("t1", "read_file")),
		CreateTextMessage("user", "still there?"),
	}
	s.ApplyConversation(gen, messages)

	view := s.View()
	if view.HiddenCount != 1 {
		t.Errorf("hidden count = %d, want 1", view.HiddenCount)
	}
	if len(view.Messages) != 3 {
		t.Errorf("filtered messages = %d, want 3", len(view.Messages))
	}
	if !view.MissingToolResults["t1"] {
		t.Errorf("missing tool results = %v, want t1 flagged", view.MissingToolResults)
	}
}
