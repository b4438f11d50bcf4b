package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"keydash/internal/apperr"
	"keydash/internal/config"
	"keydash/internal/domain"
	"keydash/internal/eventbus"
	"keydash/internal/query"
	"keydash/internal/ui/input"
	inputtypes "keydash/internal/ui/input/types"
	"keydash/internal/ui/views"
)

// statusTTL is how long a status message stays visible
const statusTTL = 3 * time.Second

// PageSource is the bookmark store as seen by the host
type PageSource interface {
	query.BookmarkRepository
	query.FinderRepository
	Pages() []domain.Page
	CyclePage(delta int) string
}

// SettingsStore is the runtime settings store
type SettingsStore interface {
	SettingsWriter
	Snapshot() config.Config
	Themes() []domain.Theme
}

// Options wires a Model to its collaborators
type Options struct {
	Pages    PageSource
	Settings SettingsStore
	Bus      eventbus.EventBus
	Runner   query.Runner
	Logger   *slog.Logger
	// Opener replaces the system browser, mainly for tests
	Opener func(url string) error
	// Now is the interpreter clock
	Now func() time.Time
}

// Model represents the UI state
type Model struct {
	pages    PageSource
	settings SettingsStore
	bus      eventbus.EventBus
	logger   *slog.Logger

	interp       *query.Interpreter
	sink         *Sink
	inputHandler *input.Handler
	renderer     *views.Renderer
	helpOps      *HelpOps

	width  int
	height int

	theme     string
	fontSize  string
	columns   int
	noMatches string

	status      string
	statusIsErr bool
	inPagerMode bool

	// cmds queued by sink callbacks during a keystroke
	queued []tea.Cmd

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := opts.Settings.Snapshot()

	m := &Model{
		pages:        opts.Pages,
		settings:     opts.Settings,
		bus:          opts.Bus,
		logger:       logger,
		inputHandler: input.New(),
		helpOps:      NewHelpOps(nil),
		theme:        cfg.UI.Theme,
		fontSize:     cfg.UI.FontSize,
		columns:      cfg.UI.Columns,
		noMatches:    cfg.Labels.NoMatches,
	}
	m.renderer = views.NewRenderer(views.NewStyles(m.lookupTheme(m.theme), m.fontSize))

	m.sink = NewSink(opts.Settings, opts.Bus, logger)
	if opts.Opener != nil {
		m.sink.SetOpener(opts.Opener)
	}
	m.sink.onApply = m.applySetting
	m.sink.onCreate = m.openCreationForm

	m.interp = query.New(query.Options{
		Bookmarks:         opts.Pages,
		Finders:           opts.Pages,
		Sink:              m.sink,
		Runner:            opts.Runner,
		Themes:            opts.Settings.Themes,
		Interleave:        cfg.Query.Interleave,
		KeepOpenWhenEmpty: cfg.Query.KeepOpenWhenEmpty,
		OpenInNewTab:      cfg.UI.OpenInNewTab,
		FuzzyLimit:        cfg.Query.FuzzyLimit,
		CompletionGuard:   time.Duration(cfg.Query.CompletionGuardMS) * time.Millisecond,
		Labels:            query.Labels{Yes: cfg.Labels.Yes, No: cfg.Labels.No},
		Links:             query.Links{ConfigURL: cfg.Links.ConfigURL, ColorsURL: cfg.Links.ColorsURL},
		Now:               opts.Now,
	})

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// Interpreter exposes the query interpreter
func (m *Model) Interpreter() *query.Interpreter {
	return m.interp
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.inPagerMode {
			return m, nil
		}

		actions, cmd := m.inputHandler.HandleKey(msg, m)

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		return m, tea.Batch(cmds...)

	default:
		return m.handleNonKeyboardMsg(msg)
	}
}

// View renders the dashboard
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}

	state := views.ViewState{
		Width:          m.width,
		Height:         m.height,
		Pages:          m.pages.Pages(),
		CurrentPage:    m.pages.CurrentPage(),
		Bookmarks:      m.pages.ListCurrentPage(),
		Columns:        m.columns,
		Query:          m.interp.State(),
		NoMatchesLabel: m.noMatches,
		ConfirmQuit:    m.inputHandler.CurrentMode() == inputtypes.ModeConfirmQuit,
		StatusMessage:  m.status,
		StatusIsError:  m.statusIsErr,
	}
	if m.inputHandler.CurrentMode() == inputtypes.ModeForm {
		form := m.inputHandler.Form()
		state.FormFields = form.Fields()
		state.FormPage = m.pageName(form.PageID())
	}
	return m.renderer.Render(state)
}

// QueryOpen reports whether the query overlay is showing
func (m *Model) QueryOpen() bool {
	return m.interp.IsOpen()
}

// CurrentPage returns the active page id
func (m *Model) CurrentPage() string {
	return m.pages.CurrentPage()
}

// PageCount returns the number of pages
func (m *Model) PageCount() int {
	return len(m.pages.Pages())
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.QueryKeyAction:
		m.interp.HandleKey(a.Key)
		return m.drainQueued()

	case inputtypes.CyclePageAction:
		page := m.pages.CyclePage(a.Delta)
		m.interp.Refresh()
		m.logger.Debug("ui: page switched", slog.String("page", page))
		return nil

	case inputtypes.SubmitBookmarkAction:
		return m.createBookmark(a.PageID, a.Bookmark)

	case inputtypes.CancelFormAction:
		return nil

	case inputtypes.ShowHelpAction:
		return m.fetchHelpPager(NewHelpRenderer().RenderHelpContent(m.interp.Commands()))

	case inputtypes.QuitAction:
		return tea.Quit
	}
	return nil
}

func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case bookmarkCreatedMsg:
		if msg.err != nil {
			text := fmt.Sprintf("Could not add %q: %v", msg.name, msg.err)
			if errors.Is(msg.err, apperr.ErrInvalid) {
				text = fmt.Sprintf("Invalid bookmark: %v", msg.err)
			}
			return m, m.setStatus(text, true)
		}
		m.interp.Refresh()
		return m, m.setStatus(fmt.Sprintf("Added %q", msg.name), false)

	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed: log only; do not surface in status bar
			m.logger.Warn("ui: help pager failed", slog.String("error", msg.err.Error()))
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case clearStatusMsg:
		m.status = ""
		m.statusIsErr = false
		return m, nil

	default:
		// Cursor blinks and the like belong to the form inputs
		return m, m.inputHandler.Update(msg)
	}
}

func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.BookmarksChangedEvent, eventbus.FindersChangedEvent,
		eventbus.PageChangedEvent, eventbus.DataReloadedEvent:
		// Our own saves come back as reloads too, so no status here
		m.interp.Refresh()
	case eventbus.SettingChangedEvent:
		m.applySetting(e.Key, e.Value)
	case eventbus.ErrorEvent:
		text := e.Message
		if e.Err != nil {
			text = fmt.Sprintf("%s: %v", e.Message, e.Err)
		}
		return m.setStatus(text, true)
	}
	return nil
}

// applySetting updates presentation without touching the config file
func (m *Model) applySetting(key, value string) {
	switch key {
	case config.KeyTheme:
		m.theme = value
	case config.KeyFontSize:
		m.fontSize = value
	case config.KeyColumns:
		n, err := strconv.Atoi(value)
		if err != nil || n < domain.MinColumns || n > domain.MaxColumns {
			m.logger.Warn("ui: ignoring column count", slog.String("value", value))
			return
		}
		m.columns = n
		return
	default:
		return
	}
	m.renderer.SetStyles(views.NewStyles(m.lookupTheme(m.theme), m.fontSize))
}

// openCreationForm is called by the sink while the interpreter commits
func (m *Model) openCreationForm(c query.CreationContext) {
	_, cmd := m.inputHandler.ChangeMode(inputtypes.ModeForm, c, m)
	if cmd != nil {
		m.queued = append(m.queued, cmd)
	}
}

func (m *Model) drainQueued() tea.Cmd {
	if len(m.queued) == 0 {
		return nil
	}
	cmds := m.queued
	m.queued = nil
	return tea.Batch(cmds...)
}

// createBookmark returns a command that stores b off the UI goroutine
func (m *Model) createBookmark(pageID string, b domain.Bookmark) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), query.DefaultTimeout)
		defer cancel()

		err := m.pages.Create(ctx, pageID, b)
		if err != nil {
			m.logger.Error("ui: create bookmark failed",
				slog.String("page", pageID),
				slog.String("name", b.Name),
				slog.String("error", err.Error()))
		}
		return bookmarkCreatedMsg{name: b.Name, err: err}
	}
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	if m.program == nil {
		return nil
	}
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.helpOps.ShowHelpInPager(helpContent)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return helpPagerMsg{err: err}
	}
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.status = text
	m.statusIsErr = isErr
	return tea.Tick(statusTTL, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m *Model) lookupTheme(id string) domain.Theme {
	themes := m.settings.Themes()
	for _, t := range themes {
		if t.ID == id {
			return t
		}
	}
	return themes[0]
}

func (m *Model) pageName(id string) string {
	for _, p := range m.pages.Pages() {
		if p.ID == id {
			if p.Name != "" {
				return p.Name
			}
			break
		}
	}
	return id
}
