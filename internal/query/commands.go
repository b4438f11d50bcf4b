package query

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"keydash/internal/domain"
)

// Env is what command handlers read from and act through
type Env struct {
	Repo    BookmarkRepository
	Sink    ActionSink
	Runner  Runner
	Matcher FuzzyMatcher
	// Catalog returns the bookmark snapshot taken at the last refresh
	Catalog func() Catalog
	Themes  func() []domain.Theme
}

// DefaultCommands returns the built-in handlers in listing order
func DefaultCommands(env *Env) []Handler {
	return []Handler{
		&removeCommand{env: env},
		&newCommand{env: env},
		&choiceCommand{
			env:         env,
			name:        "theme",
			description: "Switch the color theme",
			key:         SettingTheme,
			choices:     func() []domain.Choice { return themeChoices(env.Themes) },
		},
		&choiceCommand{
			env:         env,
			name:        "fontsize",
			description: "Change the font size",
			key:         SettingFontSize,
			choices:     func() []domain.Choice { return domain.FontSizes },
		},
		&choiceCommand{
			env:         env,
			name:        "columns",
			description: "Set the number of grid columns",
			key:         SettingColumns,
			choices:     columnChoices,
		},
	}
}

// removeCommand lists bookmarks to delete. Committing one asks for
// confirmation; the delete itself happens on "yes".
type removeCommand struct {
	env *Env
}

func (c *removeCommand) Name() string        { return "remove" }
func (c *removeCommand) Description() string { return "Delete a bookmark" }

func (c *removeCommand) Candidates(args []string) []Candidate {
	catalog := c.env.Catalog()

	filter := strings.Join(args, " ")
	scope := catalog.All
	if strings.Contains(filter, "#") {
		scope = catalog.Current
		filter = strings.ReplaceAll(filter, "#", "")
	}
	filter = strings.TrimSpace(filter)

	var out []Candidate
	if filter == "" {
		for _, b := range scope {
			out = append(out, c.candidate(b, Span{}, catalog.Page))
		}
		return out
	}
	for _, m := range c.env.Matcher.Search(filter, scope, 0) {
		out = append(out, c.candidate(m.Bookmark, m.Span, catalog.Page))
	}
	return out
}

func (c *removeCommand) candidate(b domain.Bookmark, span Span, fallbackPage string) Candidate {
	page := b.Page
	if page == "" {
		page = fallbackPage
	}
	return Candidate{
		DisplayName:   b.Name,
		ShortcutLabel: b.Shortcut,
		Detail:        b.URL,
		Kind:          KindCommand,
		Match:         span,
		Action: func() Outcome {
			return AwaitConfirmation(Confirmation{
				Command: c.Name(),
				Subject: b.Name,
				Apply: func() {
					c.env.Runner.Go("remove bookmark", func(ctx context.Context) error {
						return c.env.Repo.Delete(ctx, page, b)
					})
				},
			})
		},
	}
}

// newCommand hands off to the host's creation form
type newCommand struct {
	env *Env
}

func (c *newCommand) Name() string        { return "new" }
func (c *newCommand) Description() string { return "Add a bookmark to this page" }

func (c *newCommand) Candidates(args []string) []Candidate {
	name := strings.Join(args, " ")
	display := "Create bookmark"
	if name != "" {
		display = fmt.Sprintf("Create bookmark %q", name)
	}

	return []Candidate{{
		DisplayName: display,
		Detail:      c.Description(),
		Kind:        KindCommand,
		Action: func() Outcome {
			c.env.Sink.OpenCreationForm(CreationContext{
				PageID: c.env.Catalog().Page,
				Name:   name,
			})
			return Done()
		},
	}}
}

// choiceCommand picks one value of an enumerated setting
type choiceCommand struct {
	env         *Env
	name        string
	description string
	key         string
	choices     func() []domain.Choice
}

func (c *choiceCommand) Name() string        { return c.name }
func (c *choiceCommand) Description() string { return c.description }

func (c *choiceCommand) Candidates(args []string) []Candidate {
	filter := strings.ToLower(strings.Join(args, " "))
	width := len([]rune(filter))

	var out []Candidate
	for _, choice := range c.choices() {
		var span Span
		switch {
		case filter == "":
		case strings.HasPrefix(strings.ToLower(choice.Name), filter):
			span = Span{Start: 0, Length: width}
		case strings.HasPrefix(strings.ToLower(choice.ID), filter):
		default:
			continue
		}

		value := choice.ID
		out = append(out, Candidate{
			DisplayName:   choice.Name,
			ShortcutLabel: choice.ID,
			Kind:          KindCommand,
			Match:         span,
			Action: func() Outcome {
				c.env.Sink.ApplySetting(c.key, value)
				c.env.Runner.Go("set "+c.key, func(ctx context.Context) error {
					return c.env.Sink.SetSetting(ctx, c.key, value)
				})
				return Done()
			},
		})
	}
	return out
}

func themeChoices(themes func() []domain.Theme) []domain.Choice {
	if themes == nil {
		return nil
	}

	seen := make(map[string]bool)
	var out []domain.Choice
	for _, t := range themes() {
		if t.ID == "" || seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		out = append(out, domain.Choice{ID: t.ID, Name: t.Name})
	}
	return out
}

func columnChoices() []domain.Choice {
	out := make([]domain.Choice, 0, domain.MaxColumns-domain.MinColumns+1)
	for n := domain.MinColumns; n <= domain.MaxColumns; n++ {
		name := fmt.Sprintf("%d columns", n)
		if n == 1 {
			name = "1 column"
		}
		out = append(out, domain.Choice{ID: strconv.Itoa(n), Name: name})
	}
	return out
}
