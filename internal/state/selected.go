// Package state holds the client-side core: the selected-project context,
// the generic load+filter collection, and the Kanban board with its gated
// optimistic status moves. Nothing here talks HTTP directly; resource calls
// are injected as functions so the package stays testable offline.
package state

import (
	"sync"

	"liftoff-cli/internal/model"
)

// SelectedProject is the single-writer/many-reader "current project" holder.
// The workspace view writes it; every dependent view subscribes and treats the
// cleared state as "not ready" (suppress loads). It is always passed by
// reference through the composition root, never a package global.
type SelectedProject struct {
	mu      sync.Mutex
	current *model.Project
	subs    map[int]func(*model.Project)
	nextID  int
}

func NewSelectedProject() *SelectedProject {
	return &SelectedProject{subs: map[int]func(*model.Project){}}
}

// Set replaces the current project and re-triggers every subscriber.
func (s *SelectedProject) Set(p model.Project) {
	s.publish(&p)
}

// Clear resets to "no project selected". Called when leaving a workspace.
func (s *SelectedProject) Clear() {
	s.publish(nil)
}

// Current is the synchronous getter.
func (s *SelectedProject) Current() (model.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return model.Project{}, false
	}
	return *s.current, true
}

// Subscribe registers fn and immediately invokes it with the current value
// (nil when none is selected). The returned cancel func unregisters; views
// must call it on teardown so stale scopes never receive updates.
func (s *SelectedProject) Subscribe(fn func(*model.Project)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	cur := s.current
	s.mu.Unlock()

	fn(copyProject(cur))

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *SelectedProject) publish(p *model.Project) {
	s.mu.Lock()
	s.current = p
	fns := make([]func(*model.Project), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(copyProject(p))
	}
}

func copyProject(p *model.Project) *model.Project {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}
