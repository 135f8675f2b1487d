package cache

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/nao1215/geoready/internal/model"
)

// ErrNotFound is returned when no live report exists for a token.
// A report that expired or was already delivered looks identical to one
// that never existed.
var ErrNotFound = errors.New("report not found")

// Store holds completed reports for a retention window so a follow-up
// command can reference them by token.
//
// Design decision: We keep handles in memory and optionally spill each
// one to a JSON file because:
//  1. The send command runs in a fresh process and must find the token
//  2. Reports are small and disposable; losing one only costs a re-run
//  3. TTL-based eviction keeps the spill directory self-cleaning
type Store struct {
	// mu guards handles.
	mu sync.RWMutex

	// handles maps report tokens to live handles.
	handles map[string]*model.ReportHandle

	// dir is the spill directory. Empty keeps the store memory-only.
	dir string

	// ttl is the retention window for a handle.
	ttl time.Duration

	// sweepInterval is how often expired handles are collected.
	sweepInterval time.Duration

	// logger for structured logging.
	logger *slog.Logger

	// done stops the sweep goroutine.
	done chan struct{}

	// closeOnce makes Close idempotent.
	closeOnce sync.Once
}

// Option configures a Store.
type Option func(*Store)

// WithTTL sets the retention window for cached reports.
// Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithSweepInterval sets how often the expiry sweep runs.
// Non-positive values are ignored.
func WithSweepInterval(interval time.Duration) Option {
	return func(s *Store) {
		if interval > 0 {
			s.sweepInterval = interval
		}
	}
}

// WithDirectory spills every handle to a JSON file under dir so tokens
// survive process exit. The directory is created on first Put.
func WithDirectory(dir string) Option {
	return func(s *Store) {
		s.dir = dir
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// Default retention: reports live for an hour, swept every ten minutes.
const (
	defaultTTL           = time.Hour
	defaultSweepInterval = 10 * time.Minute
)

// NewStore creates a Store and starts its background expiry sweep.
// Call Close when done to stop the sweep goroutine.
func NewStore(opts ...Option) *Store {
	s := &Store{
		handles:       make(map[string]*model.ReportHandle),
		ttl:           defaultTTL,
		sweepInterval: defaultSweepInterval,
		done:          make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	go s.sweepLoop()

	return s
}

// Put caches the report under a fresh token and returns the handle.
func (s *Store) Put(targetURL string, report *model.AggregateReport) *model.ReportHandle {
	handle := model.NewReportHandle(targetURL, report)

	s.mu.Lock()
	s.handles[handle.ID] = handle
	s.mu.Unlock()

	if s.dir != "" {
		if err := s.spill(handle); err != nil {
			s.logger.Warn("report not spilled to disk; token dies with this process",
				"report_id", handle.ID, "error", err)
		}
	}

	s.logger.Debug("report cached", "report_id", handle.ID, "url", targetURL)

	return handle
}

// Get returns the live handle for the token, or ErrNotFound if the
// token is unknown or the handle has expired. Expired handles are
// treated as absent even before the sweep collects them.
func (s *Store) Get(id string) (*model.ReportHandle, error) {
	s.mu.RLock()
	handle, ok := s.handles[id]
	s.mu.RUnlock()

	if !ok && s.dir != "" {
		handle, ok = s.load(id)
		if ok {
			s.mu.Lock()
			s.handles[id] = handle
			s.mu.Unlock()
		}
	}

	if !ok || time.Since(handle.CreatedAt) > s.ttl {
		return nil, ErrNotFound
	}
	return handle, nil
}

// Delete removes the handle for the token. Deleting an unknown token
// is a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.handles, id)
	s.mu.Unlock()

	if s.dir != "" {
		if err := os.Remove(s.spillPath(id)); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("spilled report not removed", "report_id", id, "error", err)
		}
	}
}

// Len returns the number of handles held in memory, expired or not.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.handles)
}

// Close stops the background sweep. Safe to call more than once.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

// spillPath returns the spill file for a token. The token is generated
// by us (a UUID), but it also arrives on the command line, so reject
// anything that could escape the spill directory.
func (s *Store) spillPath(id string) string {
	clean := filepath.Base(id)
	if clean != id || strings.ContainsAny(id, `/\`) {
		clean = "invalid"
	}
	return filepath.Join(s.dir, clean+".json")
}

// spill writes the handle to its JSON file.
func (s *Store) spill(handle *model.ReportHandle) error {
	if err := os.MkdirAll(s.dir, 0750); err != nil {
		return err
	}

	data, err := json.Marshal(handle)
	if err != nil {
		return err
	}

	return os.WriteFile(s.spillPath(handle.ID), data, 0600)
}

// load reads a spilled handle back from disk.
func (s *Store) load(id string) (*model.ReportHandle, bool) {
	data, err := os.ReadFile(s.spillPath(id))
	if err != nil {
		return nil, false
	}

	var handle model.ReportHandle
	if err := json.Unmarshal(data, &handle); err != nil {
		s.logger.Warn("spilled report unreadable", "report_id", id, "error", err)
		return nil, false
	}
	if handle.ID != id {
		return nil, false
	}

	return &handle, true
}

// sweepLoop collects expired handles until Close is called.
func (s *Store) sweepLoop() {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

// sweep removes every handle past its retention window, in memory and
// on disk.
func (s *Store) sweep() {
	now := time.Now()

	s.mu.Lock()
	for id, handle := range s.handles {
		if now.Sub(handle.CreatedAt) > s.ttl {
			delete(s.handles, id)
			s.logger.Debug("report expired", "report_id", id, "url", handle.URL)
		}
	}
	s.mu.Unlock()

	if s.dir != "" {
		s.sweepSpill(now)
	}
}

// sweepSpill removes spill files older than the retention window.
func (s *Store) sweepSpill(now time.Time) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) > s.ttl {
			if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
				s.logger.Warn("expired spill file not removed", "file", entry.Name(), "error", err)
			}
		}
	}
}
