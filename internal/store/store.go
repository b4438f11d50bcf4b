// Package store keeps the dashboard's pages, bookmarks and finders in a
// JSON data file. Comments and trailing commas are accepted on read.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/tidwall/jsonc"

	"keydash/internal/apperr"
	"keydash/internal/domain"
	"keydash/internal/eventbus"
)

// Store is a file-backed implementation of the bookmark and finder
// repositories. All reads return copies.
type Store struct {
	mu      sync.RWMutex
	path    string
	data    domain.Data
	current string
	bus     eventbus.EventBus
}

// Open loads the data file at path, seeding it with a starter page when it
// does not exist yet.
func Open(path string, bus eventbus.EventBus) (*Store, error) {
	s := &Store{path: path, bus: bus}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		s.data = seedData()
		if err := s.save(); err != nil {
			return nil, err
		}
		slog.Info("store: created data file", slog.String("path", path))
	} else if err := s.load(); err != nil {
		return nil, err
	}

	if len(s.data.Pages) > 0 {
		s.current = s.data.Pages[0].ID
	}
	return s, nil
}

// Path returns the data file location
func (s *Store) Path() string {
	return s.path
}

// Reload re-reads the data file, keeping the current page when it still exists
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return err
	}
	if s.pageIndex(s.current) < 0 {
		s.current = ""
		if len(s.data.Pages) > 0 {
			s.current = s.data.Pages[0].ID
		}
	}
	return nil
}

// Pages returns every page in file order
func (s *Store) Pages() []domain.Page {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pages := make([]domain.Page, len(s.data.Pages))
	for i, p := range s.data.Pages {
		pages[i] = domain.Page{ID: p.ID, Name: p.Name, Bookmarks: withPage(p)}
	}
	return pages
}

// CurrentPage returns the id of the active page
func (s *Store) CurrentPage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// SetCurrentPage switches the active page
func (s *Store) SetCurrentPage(id string) error {
	s.mu.Lock()
	if s.pageIndex(id) < 0 {
		s.mu.Unlock()
		return fmt.Errorf("page %q: %w", id, apperr.ErrNotFound)
	}
	from := s.current
	s.current = id
	s.mu.Unlock()

	if from != id && s.bus != nil {
		s.bus.Publish(eventbus.PageChangedEvent{From: from, To: id})
	}
	return nil
}

// CyclePage moves the active page by delta positions with wraparound and
// returns the new page id.
func (s *Store) CyclePage(delta int) string {
	s.mu.RLock()
	n := len(s.data.Pages)
	idx := s.pageIndex(s.current)
	s.mu.RUnlock()

	if n == 0 {
		return ""
	}
	next := ((idx+delta)%n + n) % n

	s.mu.RLock()
	id := s.data.Pages[next].ID
	s.mu.RUnlock()

	if err := s.SetCurrentPage(id); err != nil {
		slog.Warn("store: cycle page failed", slog.String("error", err.Error()))
	}
	return id
}

// ListCurrentPage returns the bookmarks of the active page
func (s *Store) ListCurrentPage() []domain.Bookmark {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.pageIndex(s.current)
	if idx < 0 {
		return nil
	}
	return withPage(s.data.Pages[idx])
}

// ListAll returns the bookmarks of every page, page by page
func (s *Store) ListAll() []domain.Bookmark {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var all []domain.Bookmark
	for _, p := range s.data.Pages {
		all = append(all, withPage(p)...)
	}
	return all
}

// ListFinders returns the configured search templates
func (s *Store) ListFinders() []domain.Finder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Finder(nil), s.data.Finders...)
}

// Create appends a bookmark to a page and persists the file
func (s *Store) Create(ctx context.Context, pageID string, b domain.Bookmark) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ValidateBookmark(b); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrInvalid, err)
	}

	s.mu.Lock()
	idx := s.pageIndex(pageID)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("page %q: %w", pageID, apperr.ErrNotFound)
	}
	b.Page = ""
	page := &s.data.Pages[idx]
	page.Bookmarks = append(page.Bookmarks, b)
	if err := s.save(); err != nil {
		page.Bookmarks = page.Bookmarks[:len(page.Bookmarks)-1]
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	slog.Info("store: bookmark created", slog.String("page", pageID), slog.String("name", b.Name))
	s.publish(eventbus.BookmarksChangedEvent{Page: pageID})
	return nil
}

// Delete removes the first bookmark on the page matching b
func (s *Store) Delete(ctx context.Context, pageID string, b domain.Bookmark) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	idx := s.pageIndex(pageID)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("page %q: %w", pageID, apperr.ErrNotFound)
	}
	page := &s.data.Pages[idx]
	pos := -1
	for i, existing := range page.Bookmarks {
		if existing.SameAs(b) {
			pos = i
			break
		}
	}
	if pos < 0 {
		s.mu.Unlock()
		return fmt.Errorf("bookmark %q on page %q: %w", b.Name, pageID, apperr.ErrNotFound)
	}

	before := page.Bookmarks
	page.Bookmarks = append(append([]domain.Bookmark{}, before[:pos]...), before[pos+1:]...)
	if err := s.save(); err != nil {
		page.Bookmarks = before
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	slog.Info("store: bookmark deleted", slog.String("page", pageID), slog.String("name", b.Name))
	s.publish(eventbus.BookmarksChangedEvent{Page: pageID})
	return nil
}

func (s *Store) publish(e eventbus.DomainEvent) {
	if s.bus != nil {
		s.bus.Publish(e)
	}
}

// load reads and validates the data file. Caller holds the lock or owns s.
func (s *Store) load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("read data file: %w", err)
	}

	var data domain.Data
	if err := json.Unmarshal(jsonc.ToJSON(raw), &data); err != nil {
		return fmt.Errorf("parse data file %s: %w", s.path, err)
	}

	s.data = sanitize(data)
	return nil
}

// save writes the data file atomically. Caller holds the lock or owns s.
func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	out, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal data: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, out, 0o644); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace data file: %w", err)
	}
	return nil
}

func (s *Store) pageIndex(id string) int {
	for i, p := range s.data.Pages {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func withPage(p domain.Page) []domain.Bookmark {
	out := make([]domain.Bookmark, len(p.Bookmarks))
	for i, b := range p.Bookmarks {
		b.Page = p.ID
		out[i] = b
	}
	return out
}

func seedData() domain.Data {
	return domain.Data{
		Pages: []domain.Page{
			{
				ID:   "home",
				Name: "Home",
				Bookmarks: []domain.Bookmark{
					{Name: "GitHub", URL: "https://github.com", Shortcut: "g"},
					{Name: "Go Documentation", URL: "https://go.dev/doc", Shortcut: "gd"},
					{Name: "Hacker News", URL: "https://news.ycombinator.com", Shortcut: "hn"},
				},
			},
		},
		Finders: []domain.Finder{
			{Name: "Web", SearchURL: "https://duckduckgo.com/?q=%s", Shortcut: "w"},
			{Name: "Go packages", SearchURL: "https://pkg.go.dev/search?q=%s", Shortcut: "pkg"},
		},
	}
}
