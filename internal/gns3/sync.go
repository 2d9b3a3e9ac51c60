package gns3

import (
	"context"
	"fmt"
	"time"

	"evalgo.org/emulium/internal/registry"
)

// SyncRegistry refreshes a project's console registry entries from the
// live node list. Deployments feed the registry as they build; this
// re-seeds it for projects deployed by another process (or before a
// restart) so pushes can still find their consoles. Returns the number
// of entries written.
func SyncRegistry(ctx context.Context, c *Client, reg *registry.Registry, projectID string) (int, error) {
	nodes, err := c.ListNodes(ctx, projectID)
	if err != nil {
		return 0, fmt.Errorf("failed to list nodes of project %s: %w", projectID, err)
	}

	count := 0
	for i := range nodes {
		node := &nodes[i]
		host, port := node.ConsoleEndpoint(c.Host())
		if port == 0 {
			continue
		}
		reg.Put(registry.Entry{
			Project:     projectID,
			Node:        node.Name,
			NodeID:      node.NodeID,
			Host:        host,
			Port:        port,
			ConsoleType: node.ConsoleType,
			Alive:       node.Status == "started",
			UpdatedAt:   time.Now().UTC(),
		})
		count++
	}
	return count, nil
}
