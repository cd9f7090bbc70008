package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// PreviewCache persists task previews keyed by the conversation file's
// modification time, so a poll tick only re-reads conversations that actually
// changed. It never affects merge semantics; a cold or corrupt cache just
// means previews are re-extracted.
type PreviewCache struct {
	dir string

	mu      sync.Mutex
	indexes map[Source]*previewIndex
	dirty   map[Source]bool
}

type previewIndex struct {
	Entries map[string]previewEntry `yaml:"entries"`
}

type previewEntry struct {
	ModTimeMs int64  `yaml:"mod_time_ms"`
	Preview   string `yaml:"preview"`
}

// NewPreviewCache creates a cache rooted at dir.
func NewPreviewCache(dir string) *PreviewCache {
	return &PreviewCache{
		dir:     dir,
		indexes: make(map[Source]*previewIndex),
		dirty:   make(map[Source]bool),
	}
}

// DefaultCacheDir returns the per-user cache directory.
func DefaultCacheDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".convo-viewer-cache"), nil
}

// Lookup returns the cached preview for a task if its conversation file has
// not been modified since the preview was extracted.
func (c *PreviewCache) Lookup(source Source, id string, modTimeMs int64) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	index := c.loadLocked(source)
	entry, ok := index.Entries[id]
	if !ok || entry.ModTimeMs != modTimeMs {
		return "", false
	}
	return entry.Preview, true
}

// Store records a freshly extracted preview.
func (c *PreviewCache) Store(source Source, id string, modTimeMs int64, preview string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	index := c.loadLocked(source)
	index.Entries[id] = previewEntry{ModTimeMs: modTimeMs, Preview: preview}
	c.dirty[source] = true
}

// Flush writes the index for one source back to disk if it changed.
func (c *PreviewCache) Flush(source Source) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.dirty[source] {
		return nil
	}
	index, ok := c.indexes[source]
	if !ok {
		return nil
	}

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(index)
	if err != nil {
		return fmt.Errorf("failed to marshal preview index: %w", err)
	}
	if err := os.WriteFile(c.indexPath(source), data, 0644); err != nil {
		return err
	}
	c.dirty[source] = false
	return nil
}

// Clear removes the on-disk indexes and resets in-memory state.
func (c *PreviewCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, source := range []Source{SourcePrimary, SourceSecondary} {
		if err := os.Remove(c.indexPath(source)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	c.indexes = make(map[Source]*previewIndex)
	c.dirty = make(map[Source]bool)
	return nil
}

func (c *PreviewCache) indexPath(source Source) string {
	return filepath.Join(c.dir, fmt.Sprintf("previews_%s.yaml", source))
}

// loadLocked returns the in-memory index for a source, reading it from disk
// on first access. Unreadable indexes start fresh.
func (c *PreviewCache) loadLocked(source Source) *previewIndex {
	if index, ok := c.indexes[source]; ok {
		return index
	}

	index := &previewIndex{Entries: make(map[string]previewEntry)}
	if data, err := os.ReadFile(c.indexPath(source)); err == nil {
		if err := yaml.Unmarshal(data, index); err != nil {
			LogWarn("Discarding unreadable preview index for %s: %v", source, err)
			index = &previewIndex{Entries: make(map[string]previewEntry)}
		}
		if index.Entries == nil {
			index.Entries = make(map[string]previewEntry)
		}
	}
	c.indexes[source] = index
	return index
}
