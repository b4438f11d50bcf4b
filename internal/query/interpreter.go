// Package query implements the incremental keystroke interpreter: it
// classifies the typed buffer, resolves it into candidates and dispatches
// the committed one.
package query

import (
	"context"
	"strings"
	"time"
	"unicode"

	"keydash/internal/domain"
)

// Mode is how the current buffer is interpreted
type Mode int

const (
	ModeShortcut Mode = iota
	ModeFuzzy
	ModeCommand
	ModeFinder
)

func (m Mode) String() string {
	switch m {
	case ModeShortcut:
		return "shortcut"
	case ModeFuzzy:
		return "fuzzy"
	case ModeCommand:
		return "command"
	case ModeFinder:
		return "finder"
	default:
		return "unknown"
	}
}

// DefaultCompletionGuard is how long after a completion an Enter is
// treated as part of the same keypress.
const DefaultCompletionGuard = 80 * time.Millisecond

// Catalog is the bookmark snapshot the resolvers work against. It is
// replaced wholesale on every refresh.
type Catalog struct {
	Page    string
	Current []domain.Bookmark
	All     []domain.Bookmark
}

// Labels are the preformatted strings of the confirmation prompt
type Labels struct {
	Yes string
	No  string
}

// Links are the built-in navigation targets offered in shortcut mode
type Links struct {
	ConfigURL string
	ColorsURL string
}

// Options configures an Interpreter
type Options struct {
	Bookmarks BookmarkRepository
	Finders   FinderRepository
	Sink      ActionSink
	Runner    Runner
	Themes    func() []domain.Theme

	// Interleave makes bare typing search names and shortcuts together
	Interleave        bool
	KeepOpenWhenEmpty bool
	OpenInNewTab      bool
	FuzzyLimit        int
	CompletionGuard   time.Duration

	Labels Labels
	Links  Links

	// Commands replaces the built-in command set when non-nil
	Commands func(env *Env) []Handler
	// Now is the clock used for the completion guard
	Now func() time.Time
}

// State is a read-only snapshot of the interpreter for rendering
type State struct {
	Open       bool
	Buffer     string
	Mode       Mode
	Candidates []Candidate
	// Selected is -1 when there are no candidates
	Selected int
	Pending  *Confirmation
	// NoMatches is set when a non-empty buffer resolved to nothing
	NoMatches bool
}

// resolution is either an immediate action or a candidate list
type resolution struct {
	immediate  *Candidate
	candidates []Candidate
}

// Interpreter is the keystroke state machine. It is driven from a single
// goroutine; side effects of committed actions run through the Runner.
type Interpreter struct {
	opts Options
	env  *Env

	shortcuts *ShortcutIndex
	finders   *FinderIndex
	commands  *CommandRegistry
	matcher   FuzzyMatcher
	catalog   Catalog

	open       bool
	buffer     []rune
	mode       Mode
	candidates []Candidate
	selected   int
	pending    *Confirmation

	justCompleted bool
	completedAt   time.Time
}

// New creates an interpreter and loads the initial data
func New(opts Options) *Interpreter {
	if opts.CompletionGuard <= 0 {
		opts.CompletionGuard = DefaultCompletionGuard
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Runner == nil {
		opts.Runner = NewAsyncRunner(context.Background(), nil)
	}
	if opts.Labels.Yes == "" {
		opts.Labels.Yes = "yes"
	}
	if opts.Labels.No == "" {
		opts.Labels.No = "no"
	}

	in := &Interpreter{
		opts:      opts,
		shortcuts: NewShortcutIndex(nil),
		finders:   NewFinderIndex(nil),
		selected:  -1,
	}
	in.mode = in.defaultMode()
	in.env = &Env{
		Repo:    opts.Bookmarks,
		Sink:    opts.Sink,
		Runner:  opts.Runner,
		Matcher: in.matcher,
		Catalog: func() Catalog { return in.catalog },
		Themes:  opts.Themes,
	}

	commands := DefaultCommands
	if opts.Commands != nil {
		commands = opts.Commands
	}
	in.commands = NewCommandRegistry(commands(in.env)...)

	in.Refresh()
	return in
}

// Commands exposes the registry, mainly for help rendering
func (in *Interpreter) Commands() *CommandRegistry {
	return in.commands
}

// IsOpen reports whether the overlay is showing
func (in *Interpreter) IsOpen() bool {
	return in.open
}

// State returns a snapshot of the interpreter
func (in *Interpreter) State() State {
	s := State{
		Open:       in.open,
		Buffer:     string(in.buffer),
		Mode:       in.mode,
		Candidates: append([]Candidate(nil), in.candidates...),
		Selected:   in.selected,
	}
	if in.pending != nil {
		p := *in.pending
		s.Pending = &p
	}
	s.NoMatches = in.open && len(in.buffer) > 0 && len(in.candidates) == 0
	return s
}

// Refresh rebuilds every index from the repositories. Any pending
// confirmation is dropped because it may refer to stale data.
func (in *Interpreter) Refresh() {
	if in.opts.Bookmarks != nil {
		in.catalog = Catalog{
			Page:    in.opts.Bookmarks.CurrentPage(),
			Current: in.opts.Bookmarks.ListCurrentPage(),
			All:     in.opts.Bookmarks.ListAll(),
		}
	} else {
		in.catalog = Catalog{}
	}
	in.shortcuts.Rebuild(in.catalog.Current)

	var finders []domain.Finder
	if in.opts.Finders != nil {
		finders = in.opts.Finders.ListFinders()
	}
	in.finders.Rebuild(finders)

	in.pending = nil
	if in.open {
		in.apply(in.resolve(false))
	}
}

// Dismiss closes the overlay, e.g. on activation outside of it
func (in *Interpreter) Dismiss() {
	in.close()
}

// HandleKey feeds one keystroke and reports whether it was consumed.
// Keys arriving while closed are consumed only when they open the overlay.
func (in *Interpreter) HandleKey(k Key) bool {
	at := k.At
	if at.IsZero() {
		at = in.opts.Now()
	}

	if k.Type != KeyEnter {
		in.justCompleted = false
	}

	switch k.Type {
	case KeyRune:
		return in.typeRune(k.Rune, at)
	case KeyBackspace:
		return in.backspace()
	case KeyEnter:
		return in.enter(at)
	case KeyUp:
		return in.move(-1)
	case KeyDown:
		return in.move(1)
	case KeyEscape:
		if !in.open {
			return false
		}
		in.close()
		return true
	}
	return false
}

func (in *Interpreter) typeRune(r rune, at time.Time) bool {
	if !in.open {
		if !unicode.IsPrint(r) || unicode.IsSpace(r) {
			return false
		}
		in.open = true
	}

	if r == ' ' && in.autoComplete(at) {
		return true
	}

	in.buffer = append(in.buffer, r)
	res := in.resolve(true)
	if res.immediate != nil {
		in.commit(*res.immediate, at)
		return true
	}
	in.apply(res)
	return true
}

// autoComplete expands a partial command or finder name that uniquely
// identifies one entry when a space is typed after it.
func (in *Interpreter) autoComplete(at time.Time) bool {
	buf := string(in.buffer)
	if len(buf) < 2 || strings.ContainsRune(buf, ' ') {
		return false
	}

	var completion string
	switch rune(buf[0]) {
	case MarkerCommand:
		partial := buf[1:]
		if _, exact := in.commands.Lookup(partial); exact {
			return false
		}
		name, ok := in.commands.Complete(partial)
		if !ok {
			return false
		}
		completion = string(MarkerCommand) + name + " "
	case MarkerFinder:
		partial := buf[1:]
		if _, exact := in.finders.Exact(partial); exact {
			return false
		}
		shortcut, ok := in.finders.Complete(partial)
		if !ok {
			return false
		}
		completion = string(MarkerFinder) + shortcut + " "
	default:
		return false
	}

	in.complete(completion, at)
	return true
}

func (in *Interpreter) backspace() bool {
	if !in.open {
		return false
	}
	if len(in.buffer) > 0 {
		in.buffer = in.buffer[:len(in.buffer)-1]
	}
	if len(in.buffer) == 0 && !in.opts.KeepOpenWhenEmpty {
		in.close()
		return true
	}
	in.apply(in.resolve(false))
	return true
}

func (in *Interpreter) enter(at time.Time) bool {
	if !in.open {
		return false
	}

	guarded := in.justCompleted && at.Sub(in.completedAt) < in.opts.CompletionGuard
	in.justCompleted = false
	if guarded {
		return true
	}

	if in.selected < 0 || in.selected >= len(in.candidates) {
		return true
	}
	in.commit(in.candidates[in.selected], at)
	return true
}

func (in *Interpreter) move(delta int) bool {
	if !in.open {
		return false
	}
	n := len(in.candidates)
	if n == 0 {
		return true
	}
	in.selected = ((in.selected+delta)%n + n) % n
	return true
}

// commit runs a candidate: completions rewrite the buffer, everything else
// runs its action and follows the returned outcome.
func (in *Interpreter) commit(c Candidate, at time.Time) {
	if c.Kind.IsCompletion() {
		in.complete(c.Completion, at)
		return
	}
	if c.Action == nil {
		in.close()
		return
	}

	out := c.Action()
	switch {
	case out.confirm != nil:
		in.pending = out.confirm
		in.apply(in.resolve(false))
	case out.stay:
		in.apply(in.resolve(false))
	default:
		in.close()
	}
}

func (in *Interpreter) complete(buffer string, at time.Time) {
	in.buffer = []rune(buffer)
	in.apply(in.resolve(false))
	in.justCompleted = true
	in.completedAt = at
}

func (in *Interpreter) apply(res resolution) {
	in.candidates = res.candidates
	if len(in.candidates) > 0 {
		in.selected = 0
	} else {
		in.selected = -1
	}
}

func (in *Interpreter) close() {
	in.open = false
	in.buffer = nil
	in.mode = in.defaultMode()
	in.candidates = nil
	in.selected = -1
	in.pending = nil
	in.justCompleted = false
}

func (in *Interpreter) defaultMode() Mode {
	if in.opts.Interleave {
		return ModeFuzzy
	}
	return ModeShortcut
}

// classify picks the mode from the leading marker and returns the buffer
// without it. toggled is set when the fuzzy toggle marker was used.
func (in *Interpreter) classify(buf string) (mode Mode, rest string, toggled bool) {
	if buf == "" {
		return in.defaultMode(), "", false
	}
	switch rune(buf[0]) {
	case MarkerCommand:
		return ModeCommand, buf[1:], false
	case MarkerFinder:
		return ModeFinder, buf[1:], false
	case MarkerToggle:
		if in.defaultMode() == ModeFuzzy {
			return ModeShortcut, buf[1:], true
		}
		return ModeFuzzy, buf[1:], true
	}
	return in.defaultMode(), buf, false
}

// resolve classifies the buffer and produces either candidates or, in
// shortcut mode after a typed character, an immediate fast-path action.
func (in *Interpreter) resolve(fastPath bool) resolution {
	mode, rest, toggled := in.classify(string(in.buffer))
	in.mode = mode

	if in.pending != nil {
		name, _, _ := splitCommand(rest)
		if mode != ModeCommand || name != in.pending.Command {
			in.pending = nil
		}
	}

	switch mode {
	case ModeCommand:
		if in.pending != nil {
			return resolution{candidates: in.confirmationCandidates()}
		}
		return resolution{candidates: in.commands.Resolve(rest)}

	case ModeFinder:
		return resolution{candidates: in.resolveFinder(rest)}

	case ModeFuzzy:
		var listed []domain.Bookmark
		if in.opts.Interleave && !toggled && rest != "" {
			listed = in.shortcuts.Lookup(rest)
			SortByShortcutLength(listed)
		}
		return resolution{candidates: in.fuzzyCandidates(listed, rest)}

	default:
		if rest == "" {
			return resolution{}
		}
		if fastPath {
			if b, ok := in.shortcuts.Exact(rest); ok && !in.shortcuts.HasLongerMatch(rest) {
				c := in.bookmarkCandidate(b)
				return resolution{immediate: &c}
			}
		}
		matches := in.shortcuts.Lookup(rest)
		SortByShortcutLength(matches)
		return resolution{candidates: append(in.bookmarkCandidates(matches), in.linkCandidates(rest)...)}
	}
}

func (in *Interpreter) confirmationCandidates() []Candidate {
	p := in.pending
	return []Candidate{
		{
			DisplayName: in.opts.Labels.Yes,
			Detail:      p.Subject,
			Kind:        KindCommand,
			Action: func() Outcome {
				in.pending = nil
				if p.Apply != nil {
					p.Apply()
				}
				return Done()
			},
		},
		{
			DisplayName: in.opts.Labels.No,
			Detail:      p.Subject,
			Kind:        KindCommand,
			Action: func() Outcome {
				in.pending = nil
				return Stay()
			},
		},
	}
}

func (in *Interpreter) bookmarkCandidates(bookmarks []domain.Bookmark) []Candidate {
	out := make([]Candidate, 0, len(bookmarks))
	for _, b := range bookmarks {
		out = append(out, in.bookmarkCandidate(b))
	}
	return out
}

// fuzzyCandidates lists the shortcut matches first, then name matches for
// query that are not already listed.
func (in *Interpreter) fuzzyCandidates(listed []domain.Bookmark, query string) []Candidate {
	out := in.bookmarkCandidates(listed)

	for _, m := range in.matcher.Search(query, in.catalog.Current, in.opts.FuzzyLimit) {
		if containsBookmark(listed, m.Bookmark) {
			continue
		}
		out = append(out, Candidate{
			DisplayName:   m.Bookmark.Name,
			ShortcutLabel: m.Bookmark.Shortcut,
			Detail:        m.Bookmark.URL,
			Kind:          KindFuzzy,
			Match:         m.Span,
			Action:        in.navigate(m.Bookmark.URL),
		})
	}
	return out
}

func (in *Interpreter) linkCandidates(prefix string) []Candidate {
	prefix = strings.ToLower(prefix)

	var out []Candidate
	if in.opts.Links.ConfigURL != "" && strings.HasPrefix("config", prefix) {
		out = append(out, Candidate{
			DisplayName:   "Config",
			ShortcutLabel: "config",
			Detail:        in.opts.Links.ConfigURL,
			Kind:          KindConfigLink,
			Action:        in.navigate(in.opts.Links.ConfigURL),
		})
	}
	if in.opts.Links.ColorsURL != "" && strings.HasPrefix("colors", prefix) {
		out = append(out, Candidate{
			DisplayName:   "Colors",
			ShortcutLabel: "colors",
			Detail:        in.opts.Links.ColorsURL,
			Kind:          KindColorsLink,
			Action:        in.navigate(in.opts.Links.ColorsURL),
		})
	}
	return out
}

func (in *Interpreter) bookmarkCandidate(b domain.Bookmark) Candidate {
	return Candidate{
		DisplayName:   b.Name,
		ShortcutLabel: b.Shortcut,
		Detail:        b.URL,
		Kind:          KindBookmark,
		Action:        in.navigate(b.URL),
	}
}

func containsBookmark(list []domain.Bookmark, b domain.Bookmark) bool {
	for _, l := range list {
		if l.SameAs(b) {
			return true
		}
	}
	return false
}

func (in *Interpreter) navigate(url string) func() Outcome {
	return func() Outcome {
		if in.opts.Sink != nil {
			in.opts.Sink.Navigate(url, in.opts.OpenInNewTab)
		}
		return Done()
	}
}
