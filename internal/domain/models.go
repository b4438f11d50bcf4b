package domain

// Bookmark is a single link on a dashboard page
type Bookmark struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Shortcut    string `json:"shortcut,omitempty"`
	Category    string `json:"category,omitempty"`
	CheckStatus bool   `json:"checkStatus,omitempty"`

	// Page is the id of the page the bookmark was read from. It is filled
	// in by the store and never written back inside the page.
	Page string `json:"-"`
}

// SameAs reports whether two bookmarks refer to the same stored entry
func (b Bookmark) SameAs(other Bookmark) bool {
	return b.Name == other.Name && b.URL == other.URL && b.Shortcut == other.Shortcut
}

// Finder is a search-engine template reachable through the finder marker
type Finder struct {
	Name      string `json:"name"`
	SearchURL string `json:"searchUrl"`
	Shortcut  string `json:"shortcut"`
}

// Page groups bookmarks under one dashboard tab
type Page struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Bookmarks []Bookmark `json:"bookmarks"`
}

// Data is the document persisted in the data file
type Data struct {
	Pages   []Page   `json:"pages"`
	Finders []Finder `json:"finders"`
}

// Theme is a named color scheme for the dashboard
type Theme struct {
	ID     string `json:"id" toml:"id"`
	Name   string `json:"name" toml:"name"`
	Accent string `json:"accent" toml:"accent"`
	Muted  string `json:"muted" toml:"muted"`
}

// BuiltinThemes are always available regardless of configuration
var BuiltinThemes = []Theme{
	{ID: "dark", Name: "Dark", Accent: "99", Muted: "241"},
	{ID: "light", Name: "Light", Accent: "26", Muted: "246"},
	{ID: "nord", Name: "Nord", Accent: "110", Muted: "60"},
	{ID: "solarized", Name: "Solarized", Accent: "136", Muted: "66"},
	{ID: "gruvbox", Name: "Gruvbox", Accent: "214", Muted: "243"},
}

// Themes returns the built-in themes followed by custom ones, without
// duplicate ids. A custom theme reusing a built-in id replaces it in place.
func Themes(custom []Theme) []Theme {
	result := make([]Theme, 0, len(BuiltinThemes)+len(custom))
	index := make(map[string]int)
	for _, t := range append(append([]Theme{}, BuiltinThemes...), custom...) {
		if t.ID == "" {
			continue
		}
		if i, exists := index[t.ID]; exists {
			result[i] = t
			continue
		}
		index[t.ID] = len(result)
		result = append(result, t)
	}
	return result
}

// Choice is one selectable value of an enumerated setting
type Choice struct {
	ID   string
	Name string
}

// FontSizes enumerates the supported font size settings
var FontSizes = []Choice{
	{ID: "xs", Name: "Extra small"},
	{ID: "s", Name: "Small"},
	{ID: "m", Name: "Medium"},
	{ID: "l", Name: "Large"},
	{ID: "xl", Name: "Extra large"},
}

// Column bounds for the bookmark grid
const (
	MinColumns = 1
	MaxColumns = 8
)
