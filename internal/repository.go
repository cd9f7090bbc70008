package internal

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Conversation file names used by the external agent. The UI log carries the
// summary/truncation markers; older corpora only keep the API log.
const (
	uiConversationFile  = "ui_messages.json"
	apiConversationFile = "api_conversation_history.json"
)

// TaskRepository enumerates tasks and fetches conversations for a corpus.
type TaskRepository interface {
	ListTasks(source Source) ([]Task, error)
	GetConversation(source Source, id string) ([]Message, error)
}

// FSRepository reads task corpora from the filesystem. Each source maps to a
// root directory containing one subdirectory per task id, which holds the
// task's conversation log as written by the agent.
type FSRepository struct {
	roots map[Source]string
	cache *PreviewCache
}

// NewFSRepository creates a repository over the given corpus roots. An empty
// root disables that source.
func NewFSRepository(primary, secondary string) *FSRepository {
	return &FSRepository{
		roots: map[Source]string{
			SourcePrimary:   primary,
			SourceSecondary: secondary,
		},
	}
}

// WithPreviewCache attaches a preview cache so unchanged tasks skip re-reading
// their conversation file on every listing.
func (r *FSRepository) WithPreviewCache(cache *PreviewCache) *FSRepository {
	r.cache = cache
	return r
}

// ListTasks enumerates the tasks of one corpus with their last-modified
// timestamp and a best-effort preview string. Unreadable entries are skipped
// rather than failing the whole listing.
func (r *FSRepository) ListTasks(source Source) ([]Task, error) {
	root := r.roots[source]
	if root == "" {
		return nil, &FetchError{Source: source, Op: "list", Err: errNoRoot}
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			// A corpus that has not been written yet is empty, not broken.
			return nil, nil
		}
		return nil, &FetchError{Source: source, Op: "list", Path: root, Err: err}
	}

	var tasks []Task
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		id := entry.Name()
		path, info := r.conversationFile(root, id)
		if path == "" {
			continue
		}

		modTime := info.ModTime().UnixMilli()
		preview, ok := r.cachedPreview(source, id, modTime)
		if !ok {
			preview = r.readPreview(source, id, path)
			if r.cache != nil {
				r.cache.Store(source, id, modTime, preview)
			}
		}

		tasks = append(tasks, Task{ID: id, Timestamp: modTime, FirstMessage: preview})
	}

	if r.cache != nil {
		if err := r.cache.Flush(source); err != nil {
			LogWarn("Failed to flush preview cache for %s: %v", source, err)
		}
	}

	return tasks, nil
}

// GetConversation returns the full ordered message log for one task. An
// unknown task id yields a NotFoundError, distinct from other I/O failures.
func (r *FSRepository) GetConversation(source Source, id string) ([]Message, error) {
	root := r.roots[source]
	if root == "" {
		return nil, &FetchError{Source: source, Op: "read", Err: errNoRoot}
	}

	path, _ := r.conversationFile(root, id)
	if path == "" {
		return nil, &NotFoundError{Source: source, ID: id}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Source: source, ID: id}
		}
		return nil, &FetchError{Source: source, Op: "read", Path: path, Err: err}
	}

	var messages []Message
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, &FetchError{Source: source, Op: "parse", Path: path, Err: err}
	}

	return messages, nil
}

// conversationFile locates the task's conversation log, preferring the UI log
// over the API history.
func (r *FSRepository) conversationFile(root, id string) (string, os.FileInfo) {
	for _, name := range []string{uiConversationFile, apiConversationFile} {
		path := filepath.Join(root, id, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, info
		}
	}
	return "", nil
}

func (r *FSRepository) cachedPreview(source Source, id string, modTime int64) (string, bool) {
	if r.cache == nil {
		return "", false
	}
	return r.cache.Lookup(source, id, modTime)
}

func (r *FSRepository) readPreview(source Source, id, path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		LogDebug("Failed to read conversation for preview [%s] %s: %v", source, id, err)
		return previewPlaceholder
	}
	var messages []Message
	if err := json.Unmarshal(data, &messages); err != nil {
		LogDebug("Failed to parse conversation for preview [%s] %s: %v", source, id, err)
		return previewPlaceholder
	}
	return TaskPreview(messages)
}
