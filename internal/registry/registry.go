// Package registry tracks the live console endpoint of every deployed
// node. The scenario builder writes entries as nodes come up; the
// script push orchestrator resolves node names against a snapshot of
// the registry at batch start, so a batch never observes mid-flight
// topology changes.
package registry

import (
	"sort"
	"sync"
	"time"
)

// Entry maps a logical node name to its live console endpoint.
type Entry struct {
	Project     string    `json:"project_id"`
	Node        string    `json:"node"`
	NodeID      string    `json:"node_id,omitempty"`
	Host        string    `json:"host"`
	Port        int       `json:"port"`
	ConsoleType string    `json:"console_type,omitempty"`
	Alive       bool      `json:"alive"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type key struct {
	project string
	node    string
}

// Registry is an in-memory node→endpoint map, keyed by project and
// node name. Safe for concurrent use; reads dominate, the only
// sustained writer is the build phase.
type Registry struct {
	mu      sync.RWMutex
	entries map[key]Entry
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		entries: make(map[key]Entry),
	}
}

// Put adds or replaces the entry for a node.
func (r *Registry) Put(entry Entry) {
	entry.UpdatedAt = time.Now().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[key{entry.Project, entry.Node}] = entry
}

// Lookup returns the entry for a node, if present.
func (r *Registry) Lookup(project, node string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[key{project, node}]
	return entry, ok
}

// Remove drops the entry for a node.
func (r *Registry) Remove(project, node string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, key{project, node})
}

// MarkStale flags a node's entry as no longer alive, keeping the
// endpoint for inspection.
func (r *Registry) MarkStale(project, node string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := key{project, node}
	if entry, ok := r.entries[k]; ok {
		entry.Alive = false
		entry.UpdatedAt = time.Now().UTC()
		r.entries[k] = entry
	}
}

// DropProject removes every entry belonging to a project and returns
// how many were dropped. Called after a project cleanup.
func (r *Registry) DropProject(project string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	dropped := 0
	for k := range r.entries {
		if k.project == project {
			delete(r.entries, k)
			dropped++
		}
	}
	return dropped
}

// Snapshot returns a copy of the entries for one project, keyed by
// node name. Later registry changes do not affect the snapshot.
func (r *Registry) Snapshot(project string) map[string]Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make(map[string]Entry)
	for k, entry := range r.entries {
		if k.project == project {
			snapshot[k.node] = entry
		}
	}
	return snapshot
}

// List returns the entries for one project, sorted by node name.
// An empty project selects all entries.
func (r *Registry) List(project string) []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]Entry, 0, len(r.entries))
	for k, entry := range r.entries {
		if project == "" || k.project == project {
			entries = append(entries, entry)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Project != entries[j].Project {
			return entries[i].Project < entries[j].Project
		}
		return entries[i].Node < entries[j].Node
	})
	return entries
}

// Len returns the number of entries across all projects.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Projects returns the distinct project IDs present in the registry.
func (r *Registry) Projects() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	for k := range r.entries {
		seen[k.project] = true
	}

	projects := make([]string, 0, len(seen))
	for project := range seen {
		projects = append(projects, project)
	}
	sort.Strings(projects)
	return projects
}
