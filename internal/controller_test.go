package internal

import (
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeRepo is an in-memory TaskRepository for controller and scheduler tests.
type fakeRepo struct {
	mu            sync.Mutex
	tasks         map[Source][]Task
	conversations map[string][]Message
	listErr       error
	getErr        error
	listCalls     int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		tasks:         make(map[Source][]Task),
		conversations: make(map[string][]Message),
	}
}

func (f *fakeRepo) key(source Source, id string) string {
	return string(source) + "/" + id
}

func (f *fakeRepo) setConversation(source Source, id string, messages []Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.conversations[f.key(source, id)] = messages
}

func (f *fakeRepo) ListTasks(source Source) ([]Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]Task(nil), f.tasks[source]...), nil
}

func (f *fakeRepo) GetConversation(source Source, id string) ([]Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	messages, ok := f.conversations[f.key(source, id)]
	if !ok {
		return nil, &NotFoundError{Source: source, ID: id}
	}
	return messages, nil
}

func (f *fakeRepo) listCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

// waitFor polls cond until it holds or the timeout expires.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestController_StartLoadsTaskList(t *testing.T) {
	repo := newFakeRepo()
	repo.tasks[SourcePrimary] = []Task{CreateTestTask("1", 10, "p")}

	ctrl := NewController(repo, SourcePrimary, time.Hour)
	defer ctrl.Close()

	if err := ctrl.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if got := ctrl.Tasks(); len(got) != 1 || got[0].ID != "1" {
		t.Errorf("Tasks() = %v, want [1]", got)
	}
}

func TestController_StartSurfacesInitialError(t *testing.T) {
	repo := newFakeRepo()
	repo.listErr = errors.New("disk on fire")

	ctrl := NewController(repo, SourcePrimary, time.Hour)
	defer ctrl.Close()

	if err := ctrl.Start(); err == nil {
		t.Error("Start() should surface the initial load failure")
	}
}

func TestController_SelectTask(t *testing.T) {
	repo := newFakeRepo()
	repo.setConversation(SourcePrimary, "X", []Message{CreateTextMessage("user", "hello")})

	ctrl := NewController(repo, SourcePrimary, time.Hour)
	defer ctrl.Close()

	if err := ctrl.SelectTask("X"); err != nil {
		t.Fatalf("SelectTask() error = %v", err)
	}

	view := ctrl.View()
	if view.TaskID != "X" || len(view.Messages) != 1 {
		t.Errorf("view = %+v, want X's conversation", view)
	}
}

func TestController_SelectTaskNotFound(t *testing.T) {
	repo := newFakeRepo()
	repo.tasks[SourcePrimary] = []Task{CreateTestTask("other", 10, "p")}

	ctrl := NewController(repo, SourcePrimary, time.Hour)
	defer ctrl.Close()

	before := repo.listCallCount()
	err := ctrl.SelectTask("gone")
	if !IsNotFound(err) {
		t.Fatalf("SelectTask() error = %v, want NotFound", err)
	}

	// NotFound deselects and refreshes the task list.
	if view := ctrl.View(); view.TaskID != "" {
		t.Errorf("selection = %q, want cleared", view.TaskID)
	}
	if repo.listCallCount() != before+1 {
		t.Error("NotFound should trigger a task-list refresh")
	}
	if got := ctrl.Tasks(); len(got) != 1 || got[0].ID != "other" {
		t.Errorf("Tasks() = %v, want refreshed list", got)
	}
}

func TestController_SelectTaskFetchFailureRollsBack(t *testing.T) {
	repo := newFakeRepo()
	repo.getErr = &FetchError{Source: SourcePrimary, Op: "read", Err: errors.New("io")}

	ctrl := NewController(repo, SourcePrimary, time.Hour)
	defer ctrl.Close()

	if err := ctrl.SelectTask("X"); err == nil {
		t.Fatal("SelectTask() should surface the fetch failure")
	}
	if view := ctrl.View(); view.TaskID != "" || len(view.Messages) != 0 {
		t.Errorf("view = %+v, want rolled-back selection", view)
	}
}

func TestController_SelectTaskFetchFailureKeepsPriorConversation(t *testing.T) {
	repo := newFakeRepo()
	repo.setConversation(SourcePrimary, "X", []Message{CreateTextMessage("user", "hello")})

	ctrl := NewController(repo, SourcePrimary, time.Hour)
	defer ctrl.Close()

	if err := ctrl.SelectTask("X"); err != nil {
		t.Fatalf("SelectTask() error = %v", err)
	}

	repo.mu.Lock()
	repo.getErr = &FetchError{Source: SourcePrimary, Op: "read", Err: errors.New("io")}
	repo.mu.Unlock()

	if err := ctrl.SelectTask("Y"); err == nil {
		t.Fatal("SelectTask() should surface the fetch failure")
	}

	// The failed select must not disturb the last good state: X stays
	// selected and its conversation stays on screen.
	view := ctrl.View()
	if view.TaskID != "X" || len(view.Messages) != 1 {
		t.Errorf("view = %+v, want X's conversation intact", view)
	}
}

func TestController_SwitchSource(t *testing.T) {
	repo := newFakeRepo()
	repo.tasks[SourcePrimary] = []Task{CreateTestTask("p1", 10, "")}
	repo.tasks[SourceSecondary] = []Task{CreateTestTask("s1", 20, "")}
	repo.setConversation(SourcePrimary, "p1", []Message{CreateTextMessage("user", "hi")})

	ctrl := NewController(repo, SourcePrimary, time.Hour)
	defer ctrl.Close()

	if err := ctrl.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := ctrl.SelectTask("p1"); err != nil {
		t.Fatalf("SelectTask() error = %v", err)
	}

	if err := ctrl.SwitchSource(SourceSecondary); err != nil {
		t.Fatalf("SwitchSource() error = %v", err)
	}

	if got := ctrl.Tasks(); len(got) != 1 || got[0].ID != "s1" {
		t.Errorf("Tasks() = %v, want the secondary corpus", got)
	}
	if view := ctrl.View(); view.TaskID != "" || len(view.Messages) != 0 {
		t.Errorf("view = %+v, want selection cleared by source switch", view)
	}
}

func TestController_LoadLocalConversation(t *testing.T) {
	repo := newFakeRepo()
	ctrl := NewController(repo, SourcePrimary, time.Hour)
	defer ctrl.Close()

	if err := ctrl.LoadLocalConversation([]byte(`{"role":"user"}`)); err == nil {
		t.Error("non-array payload should be rejected")
	}
	if ctrl.View().Local {
		t.Error("rejected upload must not change state")
	}

	payload := []byte(`[{"role":"user","content":"from file","ts":1}]`)
	if err := ctrl.LoadLocalConversation(payload); err != nil {
		t.Fatalf("LoadLocalConversation() error = %v", err)
	}

	view := ctrl.View()
	if !view.Local || len(view.Messages) != 1 {
		t.Errorf("view = %+v, want local conversation", view)
	}
}

func TestController_ToggleCondensedChangesView(t *testing.T) {
	repo := newFakeRepo()
	repo.setConversation(SourcePrimary, "X", []Message{
		withCondenseParent(CreateTextMessage("user", "old"), "S1"),
		CreateSummaryMarker("S1"),
	})

	ctrl := NewController(repo, SourcePrimary, time.Hour)
	defer ctrl.Close()

	if err := ctrl.SelectTask("X"); err != nil {
		t.Fatalf("SelectTask() error = %v", err)
	}

	if view := ctrl.View(); len(view.Messages) != 1 {
		t.Fatalf("filtered view = %d messages, want 1", len(view.Messages))
	}

	ctrl.ToggleCondensed()
	if view := ctrl.View(); len(view.Messages) != 2 || view.HiddenCount != 1 {
		t.Errorf("unfiltered view = %+v, want both messages with count 1", ctrl.View())
	}
}
