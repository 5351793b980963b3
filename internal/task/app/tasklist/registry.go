package tasklist

import (
	"log/slog"
	"sync"
	"time"

	domaintask "github.com/KasumiMercury/todo-web/internal/task/domain/task"
)

type registryEntry struct {
	view     *View
	lastSeen time.Time
}

// Registry keeps one View per session key.
type Registry struct {
	mu       sync.Mutex
	taskRepo domaintask.TaskRepository
	views    map[string]*registryEntry
	now      func() time.Time
	logger   *slog.Logger
}

func NewRegistry(taskRepo domaintask.TaskRepository) *Registry {
	return &Registry{
		taskRepo: taskRepo,
		views:    make(map[string]*registryEntry),
		now:      time.Now,
		logger:   slog.Default().WithGroup("task").WithGroup("registry"),
	}
}

// View returns the view for key, creating it on first use.
func (r *Registry) View(key string) *View {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.views[key]
	if !ok {
		entry = &registryEntry{view: NewView(r.taskRepo)}
		r.views[key] = entry
	}

	entry.lastSeen = r.now()

	return entry.view
}

func (r *Registry) Remove(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.views, key)
}

// Prune drops views not used since before and reports how many were removed.
func (r *Registry) Prune(before time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0

	for key, entry := range r.views {
		if entry.lastSeen.Before(before) {
			delete(r.views, key)

			removed++
		}
	}

	if removed > 0 {
		r.logger.Debug("pruned idle views", slog.Int("removed", removed), slog.Int("remaining", len(r.views)))
	}

	return removed
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.views)
}
