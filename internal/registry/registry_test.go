package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const projectA = "project-a"

func TestPutAndLookup(t *testing.T) {
	r := New()

	r.Put(Entry{Project: projectA, Node: "r1", Host: "192.168.56.101", Port: 5000, ConsoleType: "telnet", Alive: true})

	entry, ok := r.Lookup(projectA, "r1")
	require.True(t, ok)
	assert.Equal(t, "192.168.56.101", entry.Host)
	assert.Equal(t, 5000, entry.Port)
	assert.True(t, entry.Alive)
	assert.False(t, entry.UpdatedAt.IsZero())

	_, ok = r.Lookup(projectA, "r2")
	assert.False(t, ok)

	_, ok = r.Lookup("project-b", "r1")
	assert.False(t, ok)
}

func TestPutReplaces(t *testing.T) {
	r := New()

	r.Put(Entry{Project: projectA, Node: "r1", Port: 5000, Alive: true})
	r.Put(Entry{Project: projectA, Node: "r1", Port: 5009, Alive: true})

	entry, ok := r.Lookup(projectA, "r1")
	require.True(t, ok)
	assert.Equal(t, 5009, entry.Port)
	assert.Equal(t, 1, r.Len())
}

func TestRemove(t *testing.T) {
	r := New()

	r.Put(Entry{Project: projectA, Node: "r1", Port: 5000})
	r.Remove(projectA, "r1")

	_, ok := r.Lookup(projectA, "r1")
	assert.False(t, ok)

	// Removing an absent node is a no-op.
	r.Remove(projectA, "ghost")
}

func TestMarkStale(t *testing.T) {
	r := New()

	r.Put(Entry{Project: projectA, Node: "r1", Port: 5000, Alive: true})
	r.MarkStale(projectA, "r1")

	entry, ok := r.Lookup(projectA, "r1")
	require.True(t, ok)
	assert.False(t, entry.Alive)
	assert.Equal(t, 5000, entry.Port)
}

func TestDropProject(t *testing.T) {
	r := New()

	r.Put(Entry{Project: projectA, Node: "r1"})
	r.Put(Entry{Project: projectA, Node: "r2"})
	r.Put(Entry{Project: "project-b", Node: "r1"})

	dropped := r.DropProject(projectA)
	assert.Equal(t, 2, dropped)
	assert.Equal(t, 1, r.Len())

	_, ok := r.Lookup("project-b", "r1")
	assert.True(t, ok)
}

func TestSnapshotIsolation(t *testing.T) {
	r := New()

	r.Put(Entry{Project: projectA, Node: "r1", Port: 5000, Alive: true})
	r.Put(Entry{Project: projectA, Node: "r2", Port: 5001, Alive: true})
	r.Put(Entry{Project: "project-b", Node: "other", Port: 6000})

	snapshot := r.Snapshot(projectA)
	require.Len(t, snapshot, 2)
	assert.Equal(t, 5000, snapshot["r1"].Port)

	// Changes after the snapshot stay invisible to it.
	r.Remove(projectA, "r1")
	r.Put(Entry{Project: projectA, Node: "r3", Port: 5002})

	assert.Len(t, snapshot, 2)
	_, ok := snapshot["r1"]
	assert.True(t, ok)
	_, ok = snapshot["r3"]
	assert.False(t, ok)
}

func TestListSorted(t *testing.T) {
	r := New()

	r.Put(Entry{Project: projectA, Node: "sw1"})
	r.Put(Entry{Project: projectA, Node: "r2"})
	r.Put(Entry{Project: projectA, Node: "r1"})

	entries := r.List(projectA)
	require.Len(t, entries, 3)
	assert.Equal(t, "r1", entries[0].Node)
	assert.Equal(t, "r2", entries[1].Node)
	assert.Equal(t, "sw1", entries[2].Node)
}

func TestListAllProjects(t *testing.T) {
	r := New()

	r.Put(Entry{Project: "project-b", Node: "x"})
	r.Put(Entry{Project: projectA, Node: "y"})

	entries := r.List("")
	require.Len(t, entries, 2)
	assert.Equal(t, projectA, entries[0].Project)

	assert.Equal(t, []string{projectA, "project-b"}, r.Projects())
}

func TestConcurrentAccess(t *testing.T) {
	r := New()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			node := fmt.Sprintf("node-%d", n)
			r.Put(Entry{Project: projectA, Node: node, Port: 5000 + n, Alive: true})
			r.Lookup(projectA, node)
			r.Snapshot(projectA)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, r.Len())
}
