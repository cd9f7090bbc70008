package internal

import (
	"context"
	"sync"
	"time"
)

// Scheduler drives the two polling streams: the task list for the active
// source and the conversation for the selected task. Each stream is a ticker
// goroutine whose results are applied through the state container together
// with the generation captured at start, so a stream that outlives its source
// or selection can never overwrite newer state. Failed ticks are simply
// retried at the next tick; there is no backoff.
type Scheduler struct {
	repo     TaskRepository
	state    *State
	interval time.Duration

	mu        sync.Mutex
	stopTasks context.CancelFunc
	stopConv  context.CancelFunc
	wg        sync.WaitGroup
}

// NewScheduler creates a scheduler polling at the given interval.
func NewScheduler(repo TaskRepository, state *State, interval time.Duration) *Scheduler {
	return &Scheduler{repo: repo, state: state, interval: interval}
}

// StartTaskList begins polling the task list for the state's active source,
// replacing any previous task-list stream.
func (s *Scheduler) StartTaskList() {
	source, gen := s.state.Source()

	s.mu.Lock()
	if s.stopTasks != nil {
		s.stopTasks()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.stopTasks = cancel
	s.mu.Unlock()

	s.wg.Add(1)
	go s.runTaskList(ctx, source, gen)
}

// StopTaskList cancels the task-list stream.
func (s *Scheduler) StopTaskList() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopTasks != nil {
		s.stopTasks()
		s.stopTasks = nil
	}
}

// StartConversation begins polling one task's conversation, replacing any
// previous conversation stream. gen must be the selection generation returned
// when the task was selected.
func (s *Scheduler) StartConversation(source Source, id string, gen uint64) {
	s.mu.Lock()
	if s.stopConv != nil {
		s.stopConv()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.stopConv = cancel
	s.mu.Unlock()

	s.wg.Add(1)
	go s.runConversation(ctx, source, id, gen)
}

// StopConversation cancels the conversation stream.
func (s *Scheduler) StopConversation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopConv != nil {
		s.stopConv()
		s.stopConv = nil
	}
}

// Stop cancels both streams and waits for them to exit.
func (s *Scheduler) Stop() {
	s.StopTaskList()
	s.StopConversation()
	s.wg.Wait()
}

func (s *Scheduler) runTaskList(ctx context.Context, source Source, gen uint64) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tasks, err := s.repo.ListTasks(source)
			if err != nil {
				// Background failures keep the last good state.
				LogDebug("Task list poll failed [%s]: %v", source, err)
				continue
			}
			if !s.state.ApplyTaskList(gen, tasks) {
				// Source changed under us; this stream is done.
				return
			}
		}
	}
}

func (s *Scheduler) runConversation(ctx context.Context, source Source, id string, gen uint64) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			messages, err := s.repo.GetConversation(source, id)
			if err != nil {
				LogDebug("Conversation poll failed [%s] %s: %v", source, id, err)
				continue
			}
			if !s.state.ApplyConversation(gen, messages) {
				return
			}
		}
	}
}
