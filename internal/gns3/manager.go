package gns3

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Manager maintains a pool of GNS3 clients, one per server URL.
// Scenarios may target different servers; the manager hands out a
// shared client per server so HTTP connections are reused. The
// configured default server is used when a scenario names none.
//
// Thread-safe for concurrent access.
type Manager struct {
	defaults Config
	clients  map[string]*Client
	mu       sync.RWMutex
}

// NewManager creates a manager. Servers added without their own
// credentials or timeouts inherit them from defaults.
func NewManager(defaults Config) *Manager {
	return &Manager{
		defaults: defaults,
		clients:  make(map[string]*Client),
	}
}

// DefaultURL returns the configured default server URL.
func (m *Manager) DefaultURL() string {
	return strings.TrimRight(m.defaults.URL, "/")
}

// ClientFor returns the client for the given server URL, creating and
// caching one on first use. An empty URL selects the default server.
func (m *Manager) ClientFor(serverURL string) (*Client, error) {
	if serverURL == "" {
		serverURL = m.defaults.URL
	}
	if serverURL == "" {
		return nil, fmt.Errorf("no GNS3 server URL given and no default configured")
	}
	key := strings.TrimRight(serverURL, "/")

	m.mu.RLock()
	cli, ok := m.clients[key]
	m.mu.RUnlock()
	if ok {
		return cli, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Re-check under the write lock, another goroutine may have won.
	if cli, ok := m.clients[key]; ok {
		return cli, nil
	}

	cfg := m.defaults
	cfg.URL = key
	cli, err := NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GNS3 client for %s: %w", key, err)
	}

	m.clients[key] = cli
	return cli, nil
}

// AddServer adds or replaces the client for a server and verifies the
// connection with a version probe. The previous client, if any, is
// closed.
func (m *Manager) AddServer(ctx context.Context, cfg Config) error {
	if cfg.URL == "" {
		return fmt.Errorf("server URL is required")
	}
	key := strings.TrimRight(cfg.URL, "/")
	if cfg.Username == "" && cfg.Password == "" {
		cfg.Username = m.defaults.Username
		cfg.Password = m.defaults.Password
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = m.defaults.Timeout
	}

	cli, err := NewClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to create GNS3 client for %s: %w", key, err)
	}

	if _, err := cli.Version(ctx); err != nil {
		cli.Close()
		return fmt.Errorf("failed to connect to GNS3 server %s: %w", key, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.clients[key]; ok {
		existing.Close()
	}
	m.clients[key] = cli
	return nil
}

// RemoveServer removes a server and closes its client.
// Returns an error if the server is not registered.
func (m *Manager) RemoveServer(serverURL string) error {
	key := strings.TrimRight(serverURL, "/")

	m.mu.Lock()
	defer m.mu.Unlock()

	cli, ok := m.clients[key]
	if !ok {
		return fmt.Errorf("server %s not registered", key)
	}

	cli.Close()
	delete(m.clients, key)
	return nil
}

// HasServer checks whether a client for the server is cached.
func (m *Manager) HasServer(serverURL string) bool {
	key := strings.TrimRight(serverURL, "/")

	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.clients[key]
	return ok
}

// ListServers returns the URLs of all cached servers.
func (m *Manager) ListServers() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	servers := make([]string, 0, len(m.clients))
	for key := range m.clients {
		servers = append(servers, key)
	}
	return servers
}

// Count returns the number of cached servers.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.clients)
}

// Close closes all clients and clears the manager.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, cli := range m.clients {
		cli.Close()
	}
	m.clients = make(map[string]*Client)
}
