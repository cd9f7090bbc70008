package internal

import "time"

// Controller owns the repository, the state container and the polling
// scheduler, and exposes the actions a presentation layer drives. Only
// user-initiated actions surface errors; background refreshes degrade to
// keeping the last good state.
type Controller struct {
	repo  TaskRepository
	state *State
	sched *Scheduler
}

// NewController creates a controller for the given source.
func NewController(repo TaskRepository, source Source, interval time.Duration) *Controller {
	state := NewState(source)
	return &Controller{
		repo:  repo,
		state: state,
		sched: NewScheduler(repo, state, interval),
	}
}

// Start performs the initial task-list load and begins background polling.
// The initial load is user-initiated, so its failure is surfaced.
func (c *Controller) Start() error {
	source, gen := c.state.Source()
	tasks, err := c.repo.ListTasks(source)
	if err != nil {
		return err
	}
	c.state.ApplyTaskList(gen, tasks)
	c.sched.StartTaskList()
	return nil
}

// Close stops all background polling.
func (c *Controller) Close() {
	c.sched.Stop()
}

// Tasks returns the reconciled task list.
func (c *Controller) Tasks() []Task {
	return c.state.Tasks()
}

// View returns the filtered, annotated conversation snapshot.
func (c *Controller) View() View {
	return c.state.View()
}

// ActiveSource returns the currently selected source.
func (c *Controller) ActiveSource() Source {
	source, _ := c.state.Source()
	return source
}

// SelectTask loads a task's conversation and, on success, makes it the
// selection and starts polling it. The fetch runs before any state changes,
// so a failure keeps the previously shown conversation intact; NotFound
// additionally drops the stale selection and refreshes the task list.
func (c *Controller) SelectTask(id string) error {
	source, _ := c.state.Source()

	messages, err := c.repo.GetConversation(source, id)
	if err != nil {
		if IsNotFound(err) {
			c.sched.StopConversation()
			c.state.ClearSelection()
			c.refreshTaskList()
		}
		return err
	}

	gen := c.state.Select(id)
	c.sched.StopConversation()
	if c.state.ApplyConversation(gen, messages) {
		c.sched.StartConversation(source, id, gen)
	}
	return nil
}

// ClearSelection deselects the current task and stops conversation polling.
func (c *Controller) ClearSelection() {
	c.sched.StopConversation()
	c.state.ClearSelection()
}

// SwitchSource swaps the active corpus. The previous source's in-flight
// responses become stale via the generation bump; the initial listing of the
// new source is user-initiated and surfaces its error, though polling is
// started either way so the next tick can recover.
func (c *Controller) SwitchSource(source Source) error {
	c.sched.StopConversation()
	gen := c.state.SwitchSource(source)

	tasks, err := c.repo.ListTasks(source)
	if err == nil {
		c.state.ApplyTaskList(gen, tasks)
	}
	c.sched.StartTaskList()
	return err
}

// ToggleCondensed flips condensed-message filtering.
func (c *Controller) ToggleCondensed() bool {
	return c.state.ToggleCondensed()
}

// ToggleExpandAll flips the expand-all display hint.
func (c *Controller) ToggleExpandAll() bool {
	return c.state.ToggleExpandAll()
}

// LoadLocalConversation installs a conversation from an uploaded payload.
// Local conversations have no backing task, so conversation polling stops.
func (c *Controller) LoadLocalConversation(data []byte) error {
	messages, err := ParseLocalConversation(data)
	if err != nil {
		return err
	}
	c.sched.StopConversation()
	c.state.SetLocalConversation(messages)
	return nil
}

func (c *Controller) refreshTaskList() {
	source, gen := c.state.Source()
	tasks, err := c.repo.ListTasks(source)
	if err != nil {
		LogDebug("Task list refresh failed [%s]: %v", source, err)
		return
	}
	c.state.ApplyTaskList(gen, tasks)
}
