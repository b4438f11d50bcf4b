package query

import (
	"context"
	"sync"
	"time"

	"keydash/internal/domain"
)

type fakeRepo struct {
	mu      sync.Mutex
	page    string
	pages   map[string][]domain.Bookmark
	order   []string
	deleted []domain.Bookmark
	created []domain.Bookmark
}

func newFakeRepo(page string) *fakeRepo {
	return &fakeRepo{page: page, pages: make(map[string][]domain.Bookmark)}
}

func (r *fakeRepo) add(page string, bookmarks ...domain.Bookmark) *fakeRepo {
	if _, ok := r.pages[page]; !ok {
		r.order = append(r.order, page)
	}
	for _, b := range bookmarks {
		b.Page = page
		r.pages[page] = append(r.pages[page], b)
	}
	return r
}

func (r *fakeRepo) CurrentPage() string { return r.page }

func (r *fakeRepo) ListCurrentPage() []domain.Bookmark {
	return append([]domain.Bookmark(nil), r.pages[r.page]...)
}

func (r *fakeRepo) ListAll() []domain.Bookmark {
	var all []domain.Bookmark
	for _, p := range r.order {
		all = append(all, r.pages[p]...)
	}
	return all
}

func (r *fakeRepo) Create(_ context.Context, pageID string, b domain.Bookmark) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, b)
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, pageID string, b domain.Bookmark) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.Page = pageID
	r.deleted = append(r.deleted, b)
	return nil
}

type fakeFinders []domain.Finder

func (f fakeFinders) ListFinders() []domain.Finder { return f }

type navigation struct {
	URL    string
	NewTab bool
}

type fakeSink struct {
	navigations []navigation
	applied     map[string]string
	persisted   map[string]string
	forms       []CreationContext
}

func newFakeSink() *fakeSink {
	return &fakeSink{applied: map[string]string{}, persisted: map[string]string{}}
}

func (s *fakeSink) Navigate(url string, newTab bool) {
	s.navigations = append(s.navigations, navigation{URL: url, NewTab: newTab})
}

func (s *fakeSink) SetSetting(_ context.Context, key, value string) error {
	s.persisted[key] = value
	return nil
}

func (s *fakeSink) ApplySetting(key, value string) { s.applied[key] = value }

func (s *fakeSink) OpenCreationForm(c CreationContext) { s.forms = append(s.forms, c) }

// syncRunner runs jobs inline so tests can observe their effects
type syncRunner struct {
	jobs []string
	errs []error
}

func (r *syncRunner) Go(name string, fn func(ctx context.Context) error) {
	r.jobs = append(r.jobs, name)
	if err := fn(context.Background()); err != nil {
		r.errs = append(r.errs, err)
	}
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type harness struct {
	repo   *fakeRepo
	sink   *fakeSink
	runner *syncRunner
	clock  *fakeClock
	in     *Interpreter
}

func newHarness(repo *fakeRepo, finders []domain.Finder, tweak func(*Options)) *harness {
	h := &harness{
		repo:   repo,
		sink:   newFakeSink(),
		runner: &syncRunner{},
		clock:  &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)},
	}
	opts := Options{
		Bookmarks:    repo,
		Finders:      fakeFinders(finders),
		Sink:         h.sink,
		Runner:       h.runner,
		Themes:       func() []domain.Theme { return domain.Themes(nil) },
		OpenInNewTab: true,
		FuzzyLimit:   10,
		Now:          h.clock.Now,
	}
	if tweak != nil {
		tweak(&opts)
	}
	h.in = New(opts)
	return h
}

// typeText feeds each rune with the clock advanced well past the
// completion guard between keys.
func (h *harness) typeText(s string) {
	for _, r := range s {
		h.clock.Advance(time.Second)
		h.in.HandleKey(Rune(r))
	}
}

func (h *harness) press(t KeyType) bool {
	h.clock.Advance(time.Second)
	return h.in.HandleKey(Special(t))
}

func names(cs []Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.DisplayName
	}
	return out
}

func githubRepo() *fakeRepo {
	return newFakeRepo("work").
		add("work",
			domain.Bookmark{Name: "GitHub", URL: "https://github.com", Shortcut: "G"},
			domain.Bookmark{Name: "GitHub Issues", URL: "https://github.com/issues", Shortcut: "GI"},
		).
		add("fun",
			domain.Bookmark{Name: "Reddit", URL: "https://reddit.com", Shortcut: "r"},
		)
}
