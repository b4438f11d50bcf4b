package store

import (
	"errors"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"keydash/internal/domain"
)

// Placeholder is the substitution marker inside a finder's search URL
const Placeholder = "%s"

var errTooManyPlaceholders = errors.New("must contain at most one " + Placeholder + " placeholder")

// ValidateBookmark checks the fields a bookmark needs to be navigable
func ValidateBookmark(b domain.Bookmark) error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Name, validation.Required),
		validation.Field(&b.URL, validation.Required, is.URL),
		validation.Field(&b.Shortcut, validation.Length(0, 32)),
	)
}

// ValidateFinder checks a finder's template. A template without a
// placeholder is accepted; the search text is appended to it.
func ValidateFinder(f domain.Finder) error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required),
		validation.Field(&f.Shortcut, validation.Required),
		validation.Field(&f.SearchURL, validation.Required, validation.By(func(value interface{}) error {
			if strings.Count(value.(string), Placeholder) > 1 {
				return errTooManyPlaceholders
			}
			return nil
		})),
	)
}

// sanitize drops entries that fail validation so that one bad line in a
// hand-edited file does not take the whole dashboard down.
func sanitize(data domain.Data) domain.Data {
	out := domain.Data{}
	seen := make(map[string]bool)

	for _, p := range data.Pages {
		if p.ID == "" || seen[p.ID] {
			slog.Warn("store: skipping page with empty or duplicate id", slog.String("id", p.ID))
			continue
		}
		seen[p.ID] = true

		page := domain.Page{ID: p.ID, Name: p.Name}
		for _, b := range p.Bookmarks {
			if err := ValidateBookmark(b); err != nil {
				slog.Warn("store: skipping invalid bookmark",
					slog.String("page", p.ID),
					slog.String("name", b.Name),
					slog.String("error", err.Error()))
				continue
			}
			page.Bookmarks = append(page.Bookmarks, b)
		}
		out.Pages = append(out.Pages, page)
	}

	for _, f := range data.Finders {
		if err := ValidateFinder(f); err != nil {
			slog.Warn("store: skipping invalid finder",
				slog.String("name", f.Name),
				slog.String("error", err.Error()))
			continue
		}
		out.Finders = append(out.Finders, f)
	}
	return out
}
