// Package storage persists Emulium's JSON-LD documents in CouchDB via
// kivik. One database holds every document type (scenario, script,
// deployment, scheduled action, user), discriminated by @type. Writes
// retry once on a revision conflict with the server's current revision.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-kivik/kivik/v4"
	_ "github.com/go-kivik/kivik/v4/couchdb" // registers the "couch" driver

	"evalgo.org/emulium/internal/config"
)

// ErrNotFound is returned by lookups that match no document.
var ErrNotFound = errors.New("document not found")

// Storage wraps the CouchDB connection and provides typed operations
// for Emulium entities.
type Storage struct {
	client *kivik.Client
	db     *kivik.DB
	config *config.Config
}

// debugLog logs a message only if debug mode is enabled in config.
func (s *Storage) debugLog(format string, args ...interface{}) {
	if s.config.Server.Debug {
		log.Printf(format, args...)
	}
}

// New connects to CouchDB, creates the database if it is missing and
// ensures the indexes exist.
func New(cfg *config.Config) (*Storage, error) {
	client, err := kivik.New("couch", cfg.CouchDB.BuildURL())
	if err != nil {
		return nil, fmt.Errorf("creating CouchDB client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), operationTimeout(cfg))
	defer cancel()

	if _, err := client.Ping(ctx); err != nil {
		return nil, fmt.Errorf("reaching CouchDB at %s: %w", cfg.CouchDB.URL, err)
	}

	exists, err := client.DBExists(ctx, cfg.CouchDB.Database)
	if err != nil {
		return nil, fmt.Errorf("checking database %q: %w", cfg.CouchDB.Database, err)
	}
	if !exists {
		// A concurrent start may win the race; 412 means it already exists.
		if err := client.CreateDB(ctx, cfg.CouchDB.Database); err != nil && kivik.HTTPStatus(err) != http.StatusPreconditionFailed {
			return nil, fmt.Errorf("creating database %q: %w", cfg.CouchDB.Database, err)
		}
	}

	storage := &Storage{
		client: client,
		db:     client.DB(cfg.CouchDB.Database),
		config: cfg,
	}
	if err := storage.db.Err(); err != nil {
		return nil, fmt.Errorf("opening database %q: %w", cfg.CouchDB.Database, err)
	}

	if err := storage.initializeSchema(ctx); err != nil {
		return nil, fmt.Errorf("initializing database schema: %w", err)
	}

	return storage, nil
}

func operationTimeout(cfg *config.Config) time.Duration {
	if cfg.CouchDB.Timeout > 0 {
		return time.Duration(cfg.CouchDB.Timeout) * time.Second
	}
	return 30 * time.Second
}

// initializeSchema creates the Mango indexes backing the common queries.
func (s *Storage) initializeSchema(ctx context.Context) error {
	indexes := []struct {
		name   string
		fields []string
	}{
		{"scenarios-name", []string{"@type", "name"}},
		{"scripts-name", []string{"@type", "name"}},
		{"deployments-status", []string{"@type", "status"}},
		{"deployments-scenario", []string{"@type", "scenarioId"}},
		{"deployments-project", []string{"@type", "projectId"}},
		{"users-name", []string{"@type", "name"}},
		{"actions-enabled", []string{"enabled", "actionStatus"}},
	}

	for _, index := range indexes {
		definition := map[string]interface{}{"fields": index.fields}
		if err := s.db.CreateIndex(ctx, "_design/emulium-indexes", index.name, definition); err != nil {
			// The index may already exist; queries still work without it.
			log.Printf("Warning: failed to create index %s: %v", index.name, err)
		}
	}
	return nil
}

// Close closes the storage connection.
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ping checks that CouchDB is reachable.
func (s *Storage) Ping(ctx context.Context) error {
	if _, err := s.client.Ping(ctx); err != nil {
		return fmt.Errorf("pinging CouchDB: %w", err)
	}
	return nil
}

// Info returns database statistics (document count, disk size).
func (s *Storage) Info(ctx context.Context) (*kivik.DBStats, error) {
	return s.db.Stats(ctx)
}

// IsNotFound reports whether err is a missing-document error, wrapped
// or not.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrNotFound) || kivik.HTTPStatus(err) == http.StatusNotFound
}

// IsConflict reports whether err is a CouchDB revision conflict.
func IsConflict(err error) bool {
	return err != nil && kivik.HTTPStatus(err) == http.StatusConflict
}

// putDocument writes doc under id and returns the new revision. On a
// revision conflict the current revision is fetched and the write is
// retried once, so the last writer wins.
func (s *Storage) putDocument(ctx context.Context, id string, doc interface{}) (string, error) {
	body, err := couchBody(id, doc)
	if err != nil {
		return "", err
	}

	rev, err := s.db.Put(ctx, id, body)
	if err == nil {
		return rev, nil
	}
	if !IsConflict(err) {
		return "", err
	}

	current, revErr := s.documentRev(ctx, id)
	if revErr != nil {
		return "", err
	}
	body["_rev"] = current
	return s.db.Put(ctx, id, body)
}

// getDocument reads id into dst.
func (s *Storage) getDocument(ctx context.Context, id string, dst interface{}) error {
	return s.db.Get(ctx, id).ScanDoc(dst)
}

// documentRev returns the current revision of id.
func (s *Storage) documentRev(ctx context.Context, id string) (string, error) {
	var probe struct {
		Rev string `json:"_rev"`
	}
	if err := s.db.Get(ctx, id).ScanDoc(&probe); err != nil {
		return "", err
	}
	return probe.Rev, nil
}

// deleteDocument removes id. An empty rev (or a stale one) is refreshed
// from the server, retrying the delete once.
func (s *Storage) deleteDocument(ctx context.Context, id, rev string) error {
	if rev == "" {
		current, err := s.documentRev(ctx, id)
		if err != nil {
			return err
		}
		rev = current
	}

	_, err := s.db.Delete(ctx, id, rev)
	if err != nil && IsConflict(err) {
		current, revErr := s.documentRev(ctx, id)
		if revErr != nil {
			return err
		}
		_, err = s.db.Delete(ctx, id, current)
	}
	return err
}

// couchBody marshals doc into a plain map with the CouchDB identity
// fields set: _id is injected from id, an empty _rev is dropped so
// first writes do not carry one.
func couchBody(id string, doc interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshaling document %s: %w", id, err)
	}
	body := make(map[string]interface{})
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("remarshaling document %s: %w", id, err)
	}
	body["_id"] = id
	if rev, ok := body["_rev"].(string); !ok || rev == "" {
		delete(body, "_rev")
	}
	return body, nil
}

// findTyped runs a Mango query and decodes every row into T. Rows that
// fail to decode are skipped.
func findTyped[T any](ctx context.Context, s *Storage, query map[string]interface{}) ([]T, error) {
	rows := s.db.Find(ctx, query)
	defer rows.Close()

	var out []T
	for rows.Next() {
		var doc T
		if err := rows.ScanDoc(&doc); err != nil {
			continue
		}
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
