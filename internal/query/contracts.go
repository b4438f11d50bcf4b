package query

import (
	"context"

	"keydash/internal/domain"
)

// BookmarkRepository is the interpreter's view of stored bookmarks
type BookmarkRepository interface {
	CurrentPage() string
	ListCurrentPage() []domain.Bookmark
	ListAll() []domain.Bookmark
	Create(ctx context.Context, pageID string, b domain.Bookmark) error
	Delete(ctx context.Context, pageID string, b domain.Bookmark) error
}

// FinderRepository lists the configured search templates
type FinderRepository interface {
	ListFinders() []domain.Finder
}

// CreationContext seeds the bookmark creation form
type CreationContext struct {
	PageID string
	Name   string
}

// ActionSink receives every side effect a committed candidate produces
type ActionSink interface {
	Navigate(url string, newTab bool)
	// SetSetting persists one settings field
	SetSetting(ctx context.Context, key, value string) error
	// ApplySetting updates live presentation without persisting
	ApplySetting(key, value string)
	OpenCreationForm(c CreationContext)
}

// Runner executes fire-and-forget work off the keystroke path
type Runner interface {
	Go(name string, fn func(ctx context.Context) error)
}

// Setting keys the command handlers write
const (
	SettingTheme    = "theme"
	SettingFontSize = "font_size"
	SettingColumns  = "columns"
)
